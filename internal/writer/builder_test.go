// internal/writer/builder_test.go
package writer

import (
	"testing"

	"github.com/tamzrod/syl2381/internal/config"
)

func TestBuildPlan(t *testing.T) {
	cfg := &config.Config{
		Device: config.DeviceConfig{Name: "oven-1"},
		MQTT:   config.MQTTConfig{Broker: "tcp://b:1883", TopicPrefix: "plant/oven-1"},
	}

	plan, err := BuildPlan(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Device != "oven-1" || plan.TopicPrefix != "plant/oven-1" {
		t.Fatalf("plan: %+v", plan)
	}

	cfg.MQTT.TopicPrefix = ""
	if _, err := BuildPlan(cfg); err == nil {
		t.Fatal("expected error without topic prefix")
	}
}
