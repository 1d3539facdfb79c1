// Package events publishes run outcomes to NATS for any downstream
// consumers (dashboards, aggregators). Publishing is fire-and-forget:
// the pipeline never fails a run over a lost event.
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectRunCompleted carries one RunCompleted event per finished run.
const SubjectRunCompleted = "mira.run.completed"

type RunCompleted struct {
	RunID         string `json:"run_id"`
	Persona       string `json:"persona"`
	URL           string `json:"url"`
	FrictionScore int    `json:"friction_score"`
	Timestamp     string `json:"timestamp"`
}

type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewPublisher(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return &Publisher{conn: nc, logger: logger}, nil
}

func (p *Publisher) RunCompleted(evt RunCompleted) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.conn.Publish(SubjectRunCompleted, payload)
}

func (p *Publisher) Close() {
	p.conn.Close()
}
