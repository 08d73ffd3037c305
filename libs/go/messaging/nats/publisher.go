package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Publisher sends JSON encoded notifications over a NATS connection.
type Publisher struct {
	nc *nats.Conn
}

func NewPublisher(nc *nats.Conn) *Publisher {
	return &Publisher{nc: nc}
}

// Publish marshals payload and publishes it on subject.
func (p *Publisher) Publish(subject string, payload any) error {
	if p == nil || p.nc == nil || !p.nc.IsConnected() {
		return nats.ErrConnectionClosed
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", subject, err)
	}

	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}
