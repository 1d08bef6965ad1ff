// internal/writer/builder.go
package writer

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/tamzrod/syl2381/internal/config"
	wmqtt "github.com/tamzrod/syl2381/internal/writer/mqtt"
)

// BuildPlan converts the config into a publish Plan.
// Assumes config has already passed Validate and Normalize.
func BuildPlan(cfg *config.Config) (Plan, error) {
	if cfg.Device.Name == "" {
		return Plan{}, errors.New("writer: device.name required")
	}
	if cfg.MQTT.TopicPrefix == "" {
		return Plan{}, errors.New("writer: mqtt.topic_prefix required")
	}
	return Plan{
		Device:      cfg.Device.Name,
		TopicPrefix: cfg.MQTT.TopicPrefix,
	}, nil
}

// BuildEndpointClient connects the broker session used by both writers.
func BuildEndpointClient(cfg *config.Config, plan Plan, log zerolog.Logger) (*wmqtt.EndpointClient, func() error, error) {
	c, err := wmqtt.NewEndpointClient(wmqtt.Config{
		Broker:            cfg.MQTT.Broker,
		ClientID:          cfg.MQTT.ClientID,
		Username:          cfg.MQTT.Username,
		Password:          cfg.MQTT.Password,
		QoS:               cfg.MQTT.QoS,
		Retain:            cfg.MQTT.Retain,
		AvailabilityTopic: plan.Topic(TopicAvailability),
	}, log)
	if err != nil {
		return nil, nil, err
	}
	return c, c.Close, nil
}
