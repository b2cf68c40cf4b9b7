package repository

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/limbo/staircircuit/pkg/cleanup"
	"github.com/limbo/staircircuit/pkg/entity"
)

const companionSchema = `
CREATE TABLE IF NOT EXISTS companion_state (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	pending_increments INTEGER NOT NULL DEFAULT 0,
	day_key TEXT,
	completed INTEGER,
	target INTEGER,
	floors_per_circuit INTEGER
);
INSERT OR IGNORE INTO companion_state (id, pending_increments) VALUES (1, 0);
`

// CompanionStore persists the companion device's replica and pending counter
// in an embedded sqlite file. Writes are synchronous so a crash right after
// a tap cannot lose it.
type CompanionStore struct {
	db *sql.DB
}

func NewCompanionStore(path string) (*CompanionStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.New("creating companion store dir error: " + err.Error())
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.New("opening companion store error: " + err.Error())
	}
	if _, err := db.Exec(companionSchema); err != nil {
		db.Close()
		return nil, errors.New("initializing companion store error: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing companion store",
		F:    db.Close,
	})
	return &CompanionStore{db: db}, nil
}

func (cs *CompanionStore) PendingIncrements() (int, error) {
	var pending int
	row := cs.db.QueryRow(`SELECT pending_increments FROM companion_state WHERE id = 1;`)
	if err := row.Scan(&pending); err != nil {
		return 0, errors.New("reading pending counter error: " + err.Error())
	}
	return pending, nil
}

func (cs *CompanionStore) SetPendingIncrements(count int) error {
	_, err := cs.db.Exec(`UPDATE companion_state SET pending_increments = ? WHERE id = 1;`, count)
	if err != nil {
		return errors.New("writing pending counter error: " + err.Error())
	}
	return nil
}

func (cs *CompanionStore) CachedSummary() (*entity.DaySummary, error) {
	var (
		dayKey    sql.NullString
		completed sql.NullInt64
		target    sql.NullInt64
		floors    sql.NullInt64
	)
	row := cs.db.QueryRow(`SELECT day_key, completed, target, floors_per_circuit FROM companion_state WHERE id = 1;`)
	if err := row.Scan(&dayKey, &completed, &target, &floors); err != nil {
		return nil, errors.New("reading cached summary error: " + err.Error())
	}
	if !dayKey.Valid {
		return nil, nil
	}
	return &entity.DaySummary{
		DayKey:           dayKey.String,
		Completed:        int(completed.Int64),
		Target:           int(target.Int64),
		FloorsPerCircuit: int(floors.Int64),
	}, nil
}

func (cs *CompanionStore) SaveSummary(summary entity.DaySummary) error {
	_, err := cs.db.Exec(
		`UPDATE companion_state SET day_key = ?, completed = ?, target = ?, floors_per_circuit = ? WHERE id = 1;`,
		summary.DayKey,
		summary.Completed,
		summary.Target,
		summary.FloorsPerCircuit,
	)
	if err != nil {
		return errors.New("writing cached summary error: " + err.Error())
	}
	return nil
}
