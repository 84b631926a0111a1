package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"
)

const schemaDDL = `
	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		price DECIMAL(10,2) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS inventory (
		id UUID PRIMARY KEY,
		product_id UUID UNIQUE REFERENCES products(id),
		quantity INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
`

// initSchema cria as tabelas (idempotente) usando database/sql + lib/pq.
// O handle é descartado ao final; o pool pgx atende as requisições.
func initSchema(ctx context.Context, cfg Config) error {
	db, err := sql.Open("postgres", cfg.SQLDSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Minute)

	return retryFixed(ctx, cfg.DBInitRetries, cfg.DBInitDelay, func(ctx context.Context) error {
		_, err := db.ExecContext(ctx, schemaDDL)
		return err
	})
}

// retryFixed executa fn até attempts vezes com intervalo fixo
func retryFixed(ctx context.Context, attempts int, delay time.Duration, fn func(context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}

		log.Printf("⏳ Database initialization failed (attempt %d/%d): %v", i, attempts, err)
		if i == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("failed to initialize database after %d attempts: %w", attempts, err)
}

// startSchemaBootstrap roda initSchema em background; esgotar as tentativas não derruba o processo
func startSchemaBootstrap(ctx context.Context, cfg Config) <-chan error {
	done := make(chan error, 1)
	go func() {
		log.Println("Starting database initialization...")
		err := initSchema(ctx, cfg)
		if err != nil {
			log.Printf("❌ Max retries reached, the service keeps running without schema: %v", err)
		} else {
			log.Println("✅ Database initialized successfully")
		}
		done <- err
	}()
	return done
}
