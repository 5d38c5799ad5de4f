package migrate

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := migrationsFS.ReadDir("sql")
	if err != nil {
		t.Fatalf("read embedded dir: %v", err)
	}
	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case len(name) > 7 && name[len(name)-7:] == ".up.sql":
			ups[name[:len(name)-7]] = true
		case len(name) > 9 && name[len(name)-9:] == ".down.sql":
			downs[name[:len(name)-9]] = true
		}
	}
	if len(ups) == 0 {
		t.Fatalf("no migrations embedded")
	}
	for v := range ups {
		if !downs[v] {
			t.Fatalf("migration %s has no down file", v)
		}
	}
}

func TestApply_Idempotent(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := Apply(ctx, pool); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := Apply(ctx, pool); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	v, dirty, err := Version(ctx, pool)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if v != 2 || dirty {
		t.Fatalf("expected clean version 2, got %d dirty=%v", v, dirty)
	}
}
