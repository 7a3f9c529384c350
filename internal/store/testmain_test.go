package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// testStore is shared across this package's tests, grounded on
// internal/db/testhelpers_test.go's TestMain + testcontainer idiom.
var testStore *PostgresStore

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Fatalf("starting postgres container: %v", err)
	}
	defer func() {
		_ = testcontainers.TerminateContainer(container)
	}()

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("getting connection string: %v", err)
	}

	testStore, err = New(ctx, dsn)
	if err != nil {
		log.Fatalf("connecting to test db: %v", err)
	}
	defer testStore.Close()

	if err := RunMigrations(ctx, dsn); err != nil {
		log.Fatalf("running migrations: %v", err)
	}

	os.Exit(m.Run())
}

// resetTables truncates every table this package's tests touch, for
// isolation between tests sharing testStore.
func resetTables(tb testing.TB) {
	tb.Helper()
	ctx := context.Background()
	tables := []string{"rankings", "ghosts", "bloodstains", "blood_messages", "characters", "global_statistics", "player_statistics", "players"}
	for _, table := range tables {
		if _, err := testStore.Pool().Exec(ctx, fmt.Sprintf("TRUNCATE %s CASCADE", table)); err != nil {
			tb.Logf("truncating %s: %v", table, err)
		}
	}
}
