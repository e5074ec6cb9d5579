//go:build integration

// Package dbtest starts a throwaway Postgres container for integration tests.
// Run with: go test -tags integration ./...
package dbtest

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"movie-favorites/pkg/database"
	"movie-favorites/pkg/utils"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	DefaultPostgresImage = "postgres:16-alpine"

	dbName     = "favorites"
	dbUser     = "favorites"
	dbPassword = "favorites"
)

// SkipIfNoDocker skips the test when the Docker daemon is not reachable.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := exec.CommandContext(ctx, "docker", "info").Run(); err != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// NewPostgres starts Postgres, connects with database.InitDB and applies the
// schema. The container and pool are released when the test ends.
func NewPostgres(t *testing.T) database.PgxIface {
	t.Helper()
	SkipIfNoDocker(t)

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        DefaultPostgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       dbName,
			"POSTGRES_USER":     dbUser,
			"POSTGRES_PASSWORD": dbPassword,
		},
		// postgres restarts once after init, so wait for the second ready line
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithStartupTimeout(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}

	db, err := database.InitDB(utils.DatabaseConfig{
		Host:     host,
		Port:     port.Port(),
		Name:     dbName,
		User:     dbUser,
		Password: dbPassword,
		MaxConns: 4,
	})
	if err != nil {
		t.Fatalf("connect to postgres: %v", err)
	}
	t.Cleanup(db.Close)

	if err := database.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	return db
}
