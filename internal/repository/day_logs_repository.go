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

const (
	defaultDayTarget        = 10
	defaultFloorsPerCircuit = 4
)

type DayLogsRepository struct {
	conn PgConnection
}

func NewDayLogsRepo(cfg DBConfig) *DayLogsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for dayLogsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for dayLogsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &DayLogsRepository{
		conn: pool,
	}
}

func NewDayLogsRepoWithConn(conn PgConnection) *DayLogsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for dayLogsRepo: " + err.Error())
	}
	return &DayLogsRepository{
		conn: conn,
	}
}

func (dlr *DayLogsRepository) GetOrCreate(ctx context.Context, dayKey string) (*entity.DayLog, error) {
	_, err := dlr.conn.Exec(
		ctx,
		`INSERT INTO day_logs (day_key, completed, target, floors_per_circuit) VALUES ($1, 0, $2, $3) ON CONFLICT (day_key) DO NOTHING;`,
		dayKey,
		defaultDayTarget,
		defaultFloorsPerCircuit,
	)
	if err != nil {
		return nil, errors.New("ensuring day log error: " + err.Error())
	}
	return dlr.getByKey(ctx, dayKey)
}

func (dlr *DayLogsRepository) ApplyIncrement(ctx context.Context, dayKey string, count int) (*entity.DayLog, error) {
	var dl entity.DayLog
	row := dlr.conn.QueryRow(
		ctx,
		`UPDATE day_logs SET completed = completed + $2, updated_at = NOW() WHERE day_key = $1 RETURNING day_key, completed, target, floors_per_circuit, updated_at;`,
		dayKey,
		count,
	)
	if err := row.Scan(&dl.DayKey, &dl.Completed, &dl.Target, &dl.FloorsPerCircuit, &dl.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrDayLogNotFound
		}
		return nil, errors.New("applying increment error: " + err.Error())
	}
	return &dl, nil
}

func (dlr *DayLogsRepository) Reset(ctx context.Context, dayKey string) error {
	ct, err := dlr.conn.Exec(
		ctx,
		`UPDATE day_logs SET completed = 0, updated_at = NOW() WHERE day_key = $1;`,
		dayKey,
	)
	if err != nil {
		return errors.New("resetting day log error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrDayLogNotFound
	}
	return nil
}

func (dlr *DayLogsRepository) SetTarget(ctx context.Context, dayKey string, target int) error {
	ct, err := dlr.conn.Exec(
		ctx,
		`UPDATE day_logs SET target = $2, updated_at = NOW() WHERE day_key = $1;`,
		dayKey,
		target,
	)
	if err != nil {
		return errors.New("updating target error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrDayLogNotFound
	}
	return nil
}

func (dlr *DayLogsRepository) SetFloorsPerCircuit(ctx context.Context, dayKey string, floors int) error {
	if floors < 1 {
		floors = 1
	}
	ct, err := dlr.conn.Exec(
		ctx,
		`UPDATE day_logs SET floors_per_circuit = $2, updated_at = NOW() WHERE day_key = $1;`,
		dayKey,
		floors,
	)
	if err != nil {
		return errors.New("updating floors per circuit error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrDayLogNotFound
	}
	return nil
}

func (dlr *DayLogsRepository) GetRange(ctx context.Context, fromKey, toKey string) ([]entity.DayLog, error) {
	rows, err := dlr.conn.Query(
		ctx,
		`SELECT day_key, completed, target, floors_per_circuit, updated_at FROM day_logs WHERE day_key >= $1 AND day_key <= $2 ORDER BY day_key DESC;`,
		fromKey,
		toKey,
	)
	if err != nil {
		return nil, errors.New("getting day logs for period error: " + err.Error())
	}
	defer rows.Close()
	result := make([]entity.DayLog, 0, 7)
	for rows.Next() {
		dl := entity.DayLog{}
		err = rows.Scan(&dl.DayKey, &dl.Completed, &dl.Target, &dl.FloorsPerCircuit, &dl.UpdatedAt)
		if err != nil {
			return nil, errors.New("day log row parsing error: " + err.Error())
		}
		result = append(result, dl)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected day log rows error: " + rows.Err().Error())
	}
	return result, nil
}

func (dlr *DayLogsRepository) getByKey(ctx context.Context, dayKey string) (*entity.DayLog, error) {
	var dl entity.DayLog
	row := dlr.conn.QueryRow(
		ctx,
		`SELECT day_key, completed, target, floors_per_circuit, updated_at FROM day_logs WHERE day_key = $1;`,
		dayKey,
	)
	if err := row.Scan(&dl.DayKey, &dl.Completed, &dl.Target, &dl.FloorsPerCircuit, &dl.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrDayLogNotFound
		}
		return nil, errors.New("searching day log error: " + err.Error())
	}
	return &dl, nil
}
