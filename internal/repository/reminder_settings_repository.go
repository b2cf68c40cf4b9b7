package repository

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/staircircuit/internal/error_values"
	"github.com/limbo/staircircuit/pkg/cleanup"
	"github.com/limbo/staircircuit/pkg/entity"
)

// Single-row table: the primary device has exactly one reminder
// configuration.
type ReminderSettingsRepository struct {
	conn PgConnection
}

func NewReminderSettingsRepo(cfg DBConfig) *ReminderSettingsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for settingsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for settingsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ReminderSettingsRepository{
		conn: pool,
	}
}

func NewReminderSettingsRepoWithConn(conn PgConnection) *ReminderSettingsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for settingsRepo: " + err.Error())
	}
	return &ReminderSettingsRepository{
		conn: conn,
	}
}

func (rsr *ReminderSettingsRepository) Get(ctx context.Context) (*entity.ReminderSettings, error) {
	var settings entity.ReminderSettings
	row := rsr.conn.QueryRow(
		ctx,
		`SELECT enabled, start_minutes, end_minutes, interval_minutes, weekdays_only FROM reminder_settings WHERE id = 1;`,
	)
	err := row.Scan(
		&settings.Enabled,
		&settings.StartMinutes,
		&settings.EndMinutes,
		&settings.IntervalMinutes,
		&settings.WeekdaysOnly,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrSettingsNotFound
		}
		return nil, errors.New("getting reminder settings error: " + err.Error())
	}
	return &settings, nil
}

func (rsr *ReminderSettingsRepository) Save(ctx context.Context, settings *entity.ReminderSettings) error {
	if settings == nil {
		return errors.New("settings is nil")
	}
	_, err := rsr.conn.Exec(
		ctx,
		`INSERT INTO reminder_settings (id, enabled, start_minutes, end_minutes, interval_minutes, weekdays_only)
		 VALUES (1, $1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET enabled = $1, start_minutes = $2, end_minutes = $3, interval_minutes = $4, weekdays_only = $5;`,
		settings.Enabled,
		settings.StartMinutes,
		settings.EndMinutes,
		settings.IntervalMinutes,
		settings.WeekdaysOnly,
	)
	if err != nil {
		return errors.New("saving reminder settings error: " + err.Error())
	}
	return nil
}
