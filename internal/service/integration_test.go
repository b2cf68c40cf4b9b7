package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/limbo/staircircuit/internal/devicesync"
	"github.com/limbo/staircircuit/internal/reminder"
	"github.com/limbo/staircircuit/internal/repository"
	"github.com/limbo/staircircuit/internal/service"
	"github.com/limbo/staircircuit/internal/transport"
	"github.com/pressly/goose"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type testPGConfig struct {
	connStr string
}

func (cfg *testPGConfig) ConnString() string {
	return cfg.connStr
}

func setupTestDB(t *testing.T) *testPGConfig {
	container, err := postgres.Run(context.Background(), "postgres:17",
		postgres.WithUsername("test_user"),
		postgres.WithDatabase("staircircuit"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatal("error running test container: " + err.Error())
	}
	connStr, err := container.ConnectionString(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	connStr += "sslmode=disable"
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatal(err)
	}
	err = goose.Up(conn, "../../migrations")
	if err != nil {
		t.Fatal(err)
	}
	conn.Close()
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})
	return &testPGConfig{
		connStr: connStr,
	}
}

func TestDayLogServiceIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	service.InitValidator()
	dbCfg := setupTestDB(t)
	repo := repository.NewDayLogsRepo(dbCfg)
	settingsRepo := repository.NewReminderSettingsRepo(dbCfg)
	cal := reminder.NewCalendar(time.UTC)
	primaryEnd, _ := transport.NewInMemPair(nil)
	primary := devicesync.NewPrimary(repo, settingsRepo, primaryEnd, nil, cal, nil)
	s := service.NewDayLogService(repo, primary)
	ctx := context.Background()

	t.Run("today creates the log on first read", func(t *testing.T) {
		summary, err := s.Today(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, summary.Completed)
		assert.Equal(t, 10, summary.Target)
		assert.Equal(t, 4, summary.FloorsPerCircuit)
	})

	t.Run("increments accumulate", func(t *testing.T) {
		_, err := s.Increment(ctx, &service.IncrementRequest{Count: 2})
		assert.NoError(t, err)
		summary, err := s.Increment(ctx, &service.IncrementRequest{Count: 3})
		assert.NoError(t, err)
		assert.Equal(t, 5, summary.Completed)
	})

	t.Run("target and floors update", func(t *testing.T) {
		summary, err := s.SetTarget(ctx, &service.SetTargetRequest{Target: 12})
		assert.NoError(t, err)
		assert.Equal(t, 12, summary.Target)
		summary, err = s.SetFloorsPerCircuit(ctx, &service.SetFloorsPerCircuitRequest{Floors: 6})
		assert.NoError(t, err)
		assert.Equal(t, 6, summary.FloorsPerCircuit)
	})

	t.Run("reset zeroes the day", func(t *testing.T) {
		summary, err := s.Reset(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, summary.Completed)
	})

	t.Run("reminder settings round-trip", func(t *testing.T) {
		rs := service.NewReminderService(settingsRepo, primary, nil, cal)
		settings, err := rs.GetSettings(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 540, settings.StartMinutes)

		saved, err := rs.UpdateSettings(ctx, &service.UpdateReminderSettingsRequest{
			Enabled:         true,
			StartMinutes:    480,
			EndMinutes:      1080,
			IntervalMinutes: 75,
			WeekdaysOnly:    true,
		})
		assert.NoError(t, err)
		assert.Equal(t, 60, saved.IntervalMinutes)

		settings, err = rs.GetSettings(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 480, settings.StartMinutes)
		assert.Equal(t, 60, settings.IntervalMinutes)
	})
}
