package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/tawba/internal/athan"
	"github.com/Nixie-Tech-LLC/tawba/internal/db"
	"github.com/Nixie-Tech-LLC/tawba/internal/http/api"
	athanapi "github.com/Nixie-Tech-LLC/tawba/internal/http/api/athan/endpoints"
	authapi "github.com/Nixie-Tech-LLC/tawba/internal/http/api/auth/endpoints"
	trackerapi "github.com/Nixie-Tech-LLC/tawba/internal/http/api/tracker/endpoints"
	"github.com/Nixie-Tech-LLC/tawba/internal/reminders"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, athanClient *athan.Client, publisher *reminders.Publisher) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
		Auth:   false,
	},
		authapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/tracker",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		trackerapi.LogModule(store, nil),
		trackerapi.EstimateModule(store, nil),
		trackerapi.ProgressModule(store, nil),
		trackerapi.SettingsModule(store, nil),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		// session endpoints that require auth
		authapi.AuthSessionModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/athan",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		athanapi.AthanModule(store, athanClient, publisher, nil),
	)
}
