package database

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"bannerbot/internal/domain/entities"
)

// setupTestDB starts PostgreSQL in a container, applies migrations and
// returns a pool. Skipped unless TEST_INTEGRATION is set.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION not set")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("bannerbot_test"),
		postgres.WithUsername("bannerbot"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if err := RunMigrations(dsn, logger); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	pool, err := NewPool(ctx, dsn, logger)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestContentRepository(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewContentRepository(pool)
	ledger := NewAlertLedgerRepository(pool)
	tx := NewTransactor(pool)
	ctx := context.Background()

	t.Run("upsert keeps one row per section", func(t *testing.T) {
		first := &entities.ContentItem{Section: entities.SectionBanner, Title: "A", Name: "x", EndAsia: ts("2025-10-25 07:30:00"), Media: "a.png"}
		id1, err := repo.UpsertBySection(ctx, first)
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
		second := &entities.ContentItem{Section: entities.SectionBanner, Title: "B", EndEurope: ts("2025-10-26 07:30:00"), Media: "b.png"}
		id2, err := repo.UpsertBySection(ctx, second)
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
		if id1 != id2 {
			t.Fatalf("expected same id, got %d and %d", id1, id2)
		}
		got, err := repo.FindBySection(ctx, entities.SectionBanner)
		if err != nil || got == nil {
			t.Fatalf("find: %v %v", got, err)
		}
		if got.Title != "B" || got.Name != "" || !got.EndAsia.IsZero() || !got.EndEurope.Equal(ts("2025-10-26 07:30:00")) || got.Media != "b.png" {
			t.Fatalf("unexpected row %+v", got)
		}
	})

	t.Run("missing section", func(t *testing.T) {
		got, err := repo.FindBySection(ctx, entities.SectionTheater)
		if err != nil || got != nil {
			t.Fatalf("expected nil, nil; got %+v, %v", got, err)
		}
	})

	t.Run("events sweep and order", func(t *testing.T) {
		now := ts("2025-10-25 12:00:00")
		for _, e := range []struct {
			name string
			end  time.Time
		}{
			{"old", now.Add(-time.Minute)},
			{"first", now.Add(time.Hour)},
			{"second", now.Add(2 * time.Hour)},
		} {
			if _, err := repo.InsertEvent(ctx, e.name, e.end); err != nil {
				t.Fatalf("insert event: %v", err)
			}
		}
		n, err := repo.DeleteEventsExpiredBefore(ctx, now)
		if err != nil || n != 1 {
			t.Fatalf("sweep: n=%d err=%v", n, err)
		}
		events, err := repo.ListEvents(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(events) != 2 || events[0].Name != "first" || events[1].Name != "second" {
			t.Fatalf("unexpected events %+v", events)
		}
		alertable, err := repo.ListAlertable(ctx)
		if err != nil {
			t.Fatalf("alertable: %v", err)
		}
		for _, it := range alertable {
			if it.Section == entities.SectionEvents {
				t.Fatalf("events must not be alertable")
			}
		}
		if n, err := repo.DeleteAllEvents(ctx); err != nil || n != 2 {
			t.Fatalf("delete all: n=%d err=%v", n, err)
		}
	})

	t.Run("ledger cascades and rolls back with tx", func(t *testing.T) {
		id, err := repo.UpsertBySection(ctx, &entities.ContentItem{Section: entities.SectionAbyss, EndAsia: ts("2025-10-25 07:30:00")})
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
		entry := entities.LedgerEntry{ContentID: id, Region: entities.RegionAsia, Kind: entities.AlertExpired}

		errRollback := errors.New("rollback")
		err = tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := repo.LockByID(ctx, id); err != nil {
				return err
			}
			if err := ledger.Record(ctx, entry); err != nil {
				return err
			}
			return errRollback
		})
		if !errors.Is(err, errRollback) {
			t.Fatalf("expected rollback error, got %v", err)
		}
		if ok, _ := ledger.Exists(ctx, entry); ok {
			t.Fatalf("entry survived rollback")
		}

		if err := ledger.Record(ctx, entry); err != nil {
			t.Fatalf("record: %v", err)
		}
		if err := ledger.Record(ctx, entry); err != nil {
			t.Fatalf("record twice: %v", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if ok, _ := ledger.Exists(ctx, entry); ok {
			t.Fatalf("ledger entry not removed with its content")
		}
	})
}

func TestAdminAndRegionRepositories(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	admins := NewAdminRepository(pool)
	if err := admins.Add(ctx, "1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := admins.Add(ctx, "1"); err != nil {
		t.Fatalf("add twice: %v", err)
	}
	if ok, _ := admins.Exists(ctx, "1"); !ok {
		t.Fatalf("expected admin 1")
	}
	if err := admins.Remove(ctx, "1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ids, _ := admins.List(ctx); len(ids) != 0 {
		t.Fatalf("unexpected admins %v", ids)
	}

	regions := NewRegionOffsetRepository(pool)
	if err := regions.Seed(ctx, map[entities.Region]int{entities.RegionAsia: 8, entities.RegionAmerica: -5}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := regions.Seed(ctx, map[entities.Region]int{entities.RegionAsia: 9}); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if h, err := regions.Offset(ctx, entities.RegionAsia); err != nil || h != 8 {
		t.Fatalf("asia offset: %d %v", h, err)
	}
	if h, err := regions.Offset(ctx, entities.RegionAmerica); err != nil || h != -5 {
		t.Fatalf("america offset: %d %v", h, err)
	}
	if _, err := regions.Offset(ctx, entities.RegionEurope); err == nil {
		t.Fatalf("expected error for unseeded region")
	}
}
