// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"topictree/internal/database"
	"topictree/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "topictree")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "topictree")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// sampleTree builds a small classified tree for persistence tests.
func sampleTree(topic string) *models.TopicTree {
	mech := models.NewCollection("Mechanik", "Mechanik", "Bewegung", []string{"Kraft"})
	mech.AddChild(models.NewCollection("Kinematik", "Kinematik", "Beschreibung", nil))
	tree := &models.TopicTree{
		Collection: []*models.Collection{mech},
		Metadata: models.Metadata{
			Title:          topic,
			Description:    "Themenbaum für " + topic,
			TargetAudience: models.TargetAudience,
			CreatedAt:      time.Now().UTC().Truncate(time.Second),
			Version:        models.FormatVersion,
			Author:         models.Author,
			Settings:       models.Settings{NumMain: 1, NumSub: 1, NumLeaf: 1, Model: "gpt-4o-mini", Mode: "iterative"},
		},
	}
	tree.Walk(func(c *models.Collection, _ int) bool {
		c.Properties.SetClassification("http://w3id.org/openeduhub/vocabs/discipline/460", "")
		return true
	})
	return tree
}
