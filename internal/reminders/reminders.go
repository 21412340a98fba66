// Package reminders pushes "did you pray X?" prompts over MQTT. Clients
// subscribe to their own topic and answer a prompt by posting a log entry;
// delivery beyond the broker is the device's concern.
package reminders

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/tawba/internal/dates"
	"github.com/Nixie-Tech-LLC/tawba/internal/model"
)

// prompts fire this long after the prayer time
const promptDelay = 10 * time.Minute

// Prompt is the message published for one prayer.
type Prompt struct {
	Prayer model.Prayer `json:"prayer"`
	Date   string       `json:"date"`
	Time   string       `json:"time"`
}

type Publisher struct {
	client mqtt.Client
	clock  dates.Clock

	mu      sync.Mutex
	nextKey int
	timers  map[int]*time.Timer
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("mqtt connection lost")
}

// NewPublisher connects to the broker. brokerURL is e.g. "tcp://host:1883".
func NewPublisher(brokerURL, clientID string, clock dates.Clock) (*Publisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnectionLost = connectLostHandler
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to mqtt broker")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	if clock == nil {
		clock = dates.SystemClock{}
	}
	return &Publisher{client: client, clock: clock, timers: map[int]*time.Timer{}}, nil
}

func topicFor(userID int) string {
	return fmt.Sprintf("tawba/%d/prompts", userID)
}

// SchedulePrompts queues one prompt per prayer at its time plus ten minutes,
// skipping times already past. Returns how many prompts were scheduled.
func (p *Publisher) SchedulePrompts(userID int, table model.Timetable) int {
	day, err := dates.ParseISO(table.Date)
	if err != nil {
		log.Error().Err(err).Str("date", table.Date).Msg("cannot schedule prompts for malformed date")
		return 0
	}

	now := p.clock.Now()
	scheduled := 0
	for _, entry := range table.Times {
		at, err := time.Parse("15:04", entry.Time)
		if err != nil {
			log.Warn().Str("time", entry.Time).Str("prayer", string(entry.Prayer)).Msg("skipping unparseable prayer time")
			continue
		}
		trigger := day.Add(time.Duration(at.Hour())*time.Hour + time.Duration(at.Minute())*time.Minute + promptDelay)
		if !trigger.After(now) {
			continue
		}

		prompt := Prompt{Prayer: entry.Prayer, Date: table.Date, Time: entry.Time}

		p.mu.Lock()
		key := p.nextKey
		p.nextKey++
		// fired timers drop themselves so the map cannot grow without bound
		p.timers[key] = time.AfterFunc(trigger.Sub(now), func() {
			p.publish(userID, prompt)
			p.mu.Lock()
			delete(p.timers, key)
			p.mu.Unlock()
		})
		p.mu.Unlock()
		scheduled++
	}
	return scheduled
}

func (p *Publisher) publish(userID int, prompt Prompt) {
	payload, err := json.Marshal(prompt)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode prompt")
		return
	}

	token := p.client.Publish(topicFor(userID), 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Int("user_id", userID).Msg("failed to publish prompt")
		return
	}
	log.Info().Int("user_id", userID).Str("prayer", string(prompt.Prayer)).Msg("prompt published")
}

// Close stops pending prompts and disconnects from the broker.
func (p *Publisher) Close() {
	p.mu.Lock()
	for _, t := range p.timers {
		t.Stop()
	}
	p.timers = map[int]*time.Timer{}
	p.mu.Unlock()

	p.client.Disconnect(250)
}
