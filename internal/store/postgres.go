package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS chat_logs (
	id BIGSERIAL PRIMARY KEY,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT now(),
	persona TEXT NOT NULL,
	url TEXT NOT NULL,
	utterance TEXT NOT NULL,
	next_action TEXT NOT NULL,
	friction_score INT NOT NULL
)`

// Postgres is the shared-server backend, selected when DATABASE_URL
// is configured.
type Postgres struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Append(ctx context.Context, e Entry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	_, err := p.pool.Exec(ctx, `
		INSERT INTO chat_logs (timestamp, persona, url, utterance, next_action, friction_score)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.Timestamp, e.Persona, e.URL, e.Utterance, e.NextAction, e.FrictionScore,
	)
	if err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}

func (p *Postgres) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := p.pool.Query(ctx, `
		SELECT id, timestamp, persona, url, utterance, next_action, friction_score
		FROM chat_logs ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Persona, &e.URL, &e.Utterance, &e.NextAction, &e.FrictionScore); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
