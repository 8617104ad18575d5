package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// Env spins up throwaway Postgres and Kafka containers and applies the
// repo's migrations. Tests using it must be guarded so the suite still
// passes where Docker is unavailable.
type Env struct {
	PG    *postgres.PostgresContainer
	Kafka *kafka.KafkaContainer
	Pool  *pgxpool.Pool
	PGURL string
	KAddr []string
}

func Setup(ctx context.Context) (*Env, error) {
	pgC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	m, err := migrate.New("file://../../migrations", pgURL)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Up(); err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	_, _ = m.Close()

	pool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		return nil, err
	}

	kafkaC, err := kafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		kafka.WithClusterID("storefront-test"),
	)
	if err != nil {
		return nil, fmt.Errorf("start kafka: %w", err)
	}
	brokers, err := kafkaC.Brokers(ctx)
	if err != nil {
		return nil, err
	}

	return &Env{
		PG:    pgC,
		Kafka: kafkaC,
		Pool:  pool,
		PGURL: pgURL,
		KAddr: brokers,
	}, nil
}

func (e *Env) Teardown(ctx context.Context) {
	if e.Pool != nil {
		e.Pool.Close()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if e.Kafka != nil {
		_ = e.Kafka.Terminate(ctx)
	}
	if e.PG != nil {
		_ = e.PG.Terminate(ctx)
	}
}
