package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/staircircuit/pkg/entity"
)

type DayLogRepositoryI interface {
	// Fetches the log for dayKey, creating a fresh one with defaults when the
	// day rolls over
	GetOrCreate(ctx context.Context, dayKey string) (*entity.DayLog, error)
	// Atomically adds count circuits to the day's completed total
	ApplyIncrement(ctx context.Context, dayKey string, count int) (*entity.DayLog, error)
	// Zeroes the day's completed total
	Reset(ctx context.Context, dayKey string) error
	// Updates the day's circuit target
	SetTarget(ctx context.Context, dayKey string, target int) error
	// Updates the day's floors-per-circuit setting
	SetFloorsPerCircuit(ctx context.Context, dayKey string, floors int) error
	// Lists logs between day keys inclusive, newest first. Day keys sort
	// lexicographically
	GetRange(ctx context.Context, fromKey, toKey string) ([]entity.DayLog, error)
}

type ReminderSettingsRepositoryI interface {
	// Reads the single reminder settings row
	Get(ctx context.Context) (*entity.ReminderSettings, error)
	// Upserts the single reminder settings row
	Save(ctx context.Context, settings *entity.ReminderSettings) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
