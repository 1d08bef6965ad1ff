// internal/writer/mqtt/client.go
package mqtt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
)

// Availability payloads published on the availability topic.
const (
	Online  = "online"
	Offline = "offline"
)

// EndpointClient is a single broker session.
// It serializes publishes so delivery order matches call order.
type EndpointClient struct {
	mu     sync.Mutex
	client paho.Client
	cfg    Config
}

type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string
	QoS      byte
	Retain   bool
	Timeout  time.Duration

	// AvailabilityTopic receives Online on connect and Offline as the will.
	// Empty disables both.
	AvailabilityTopic string
}

// Options maps Config onto paho client options.
func Options(cfg Config, log zerolog.Logger) *paho.ClientOptions {
	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(cfg.Timeout)

	if cfg.AvailabilityTopic != "" {
		opts.SetWill(cfg.AvailabilityTopic, Offline, cfg.QoS, true)
	}

	opts.SetOnConnectHandler(func(c paho.Client) {
		log.Info().Str("broker", cfg.Broker).Msg("mqtt connected")
		if cfg.AvailabilityTopic == "" {
			return
		}
		t := c.Publish(cfg.AvailabilityTopic, cfg.QoS, true, Online)
		if t.WaitTimeout(cfg.Timeout) && t.Error() != nil {
			log.Warn().Err(t.Error()).Msg("mqtt availability publish failed")
		}
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.Warn().Err(err).Str("broker", cfg.Broker).Msg("mqtt connection lost")
	})

	return opts
}

// NewEndpointClient connects to the broker. ONE attempt; paho reconnects afterwards.
func NewEndpointClient(cfg Config, log zerolog.Logger) (*EndpointClient, error) {
	if cfg.Broker == "" {
		return nil, errors.New("writer mqtt: broker required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	c := paho.NewClient(Options(cfg, log))

	t := c.Connect()
	if !t.WaitTimeout(cfg.Timeout) {
		return nil, fmt.Errorf("writer mqtt: connect %s: timeout after %v", cfg.Broker, cfg.Timeout)
	}
	if err := t.Error(); err != nil {
		return nil, fmt.Errorf("writer mqtt: connect %s: %w", cfg.Broker, err)
	}

	return &EndpointClient{client: c, cfg: cfg}, nil
}

// Close publishes Offline (if configured) and disconnects.
func (c *EndpointClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.cfg.AvailabilityTopic != "" && c.client.IsConnected() {
		err = c.publishLocked(c.cfg.AvailabilityTopic, true, []byte(Offline))
	}
	c.client.Disconnect(250)
	return err
}

// Publish delivers one message with the configured QoS and retain flag.
func (c *EndpointClient) Publish(topic string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.publishLocked(topic, c.cfg.Retain, payload)
}

func (c *EndpointClient) publishLocked(topic string, retain bool, payload []byte) error {
	t := c.client.Publish(topic, c.cfg.QoS, retain, payload)
	if !t.WaitTimeout(c.cfg.Timeout) {
		return fmt.Errorf("writer mqtt: publish %s: timeout", topic)
	}
	return t.Error()
}
