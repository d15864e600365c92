// Package mqtt publishes acquisition records to an MQTT broker as JSON.
package mqtt

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/kimlab/thermolog/pkg/acquire"
	"github.com/kimlab/thermolog/pkg/config"
	"github.com/kimlab/thermolog/pkg/output"
)

type MQTTOutput struct {
	client mqtt.Client
	topic  string
	unit   string
}

// New connects to the broker in cfg and returns a sink publishing one JSON
// payload per record to cfg.Topic.
func New(cfg config.MQTTConfig, unit string) (output.Output, error) {
	opts := mqtt.NewClientOptions().AddBroker(cfg.Server).SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	return &MQTTOutput{client: client, topic: cfg.Topic, unit: unit}, nil
}

func (m *MQTTOutput) Publish(rec acquire.Record) error {
	payload := struct {
		acquire.Record
		Unit string `json:"unit"`
	}{Record: rec, Unit: m.unit}

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	token := m.client.Publish(m.topic, 0, false, b)
	token.Wait()
	return token.Error()
}

func (m *MQTTOutput) Close() error {
	if m.client != nil {
		m.client.Disconnect(250)
	}
	return nil
}
