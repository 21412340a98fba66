package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tawba/internal/athan"
	"github.com/Nixie-Tech-LLC/tawba/internal/db"
	"github.com/Nixie-Tech-LLC/tawba/internal/redis"
	"github.com/Nixie-Tech-LLC/tawba/internal/reminders"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	env := LoadEnvironment()

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	store := db.NewStore(db.DB)

	// Redis backs the athan timetable cache; without it lookups just go
	// straight to the upstream API.
	useCache := env.RedisAddress != ""
	if useCache {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}
	athanClient := athan.NewClient(useCache)

	var publisher *reminders.Publisher
	if env.MQTTBrokerURL != "" {
		var err error
		publisher, err = reminders.NewPublisher(env.MQTTBrokerURL, "tawba-server", nil)
		if err != nil {
			log.Error().Err(err).Msg("mqtt unavailable, reminder prompts disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	r := gin.Default()
	RegisterRoutes(r, env, store, athanClient, publisher)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
