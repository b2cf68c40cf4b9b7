package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	errorvalues "github.com/limbo/staircircuit/internal/error_values"
	"github.com/limbo/staircircuit/internal/repository"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDayKey = "2026-01-17"

var dayLogColumns = []string{"day_key", "completed", "target", "floors_per_circuit", "updated_at"}

func TestGetOrCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	dayLogsRepo := repository.NewDayLogsRepoWithConn(mock)
	insertQuery := regexp.QuoteMeta(`INSERT INTO day_logs (day_key, completed, target, floors_per_circuit) VALUES ($1, 0, $2, $3) ON CONFLICT (day_key) DO NOTHING;`)
	selectQuery := regexp.QuoteMeta(`SELECT day_key, completed, target, floors_per_circuit, updated_at FROM day_logs WHERE day_key = $1;`)
	updatedAt := time.Now()
	testCases := []struct {
		Desc         string
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc:  "successful with existing row",
			Error: nil,
			MockPrepFunc: func() {
				mock.ExpectExec(insertQuery).WithArgs(testDayKey, 10, 4).WillReturnResult(pgxmock.NewResult("INSERT", 0))
				mock.ExpectQuery(selectQuery).WithArgs(testDayKey).WillReturnRows(
					pgxmock.NewRows(dayLogColumns).AddRow(testDayKey, 5, 10, 4, updatedAt),
				)
			},
		},
		{
			Desc:  "successful creating fresh day",
			Error: nil,
			MockPrepFunc: func() {
				mock.ExpectExec(insertQuery).WithArgs(testDayKey, 10, 4).WillReturnResult(pgxmock.NewResult("INSERT", 1))
				mock.ExpectQuery(selectQuery).WithArgs(testDayKey).WillReturnRows(
					pgxmock.NewRows(dayLogColumns).AddRow(testDayKey, 0, 10, 4, updatedAt),
				)
			},
		},
		{
			Desc:  "db error",
			Error: errors.New("ensuring day log error: db error"),
			MockPrepFunc: func() {
				mock.ExpectExec(insertQuery).WithArgs(testDayKey, 10, 4).WillReturnError(errors.New("db error"))
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			dl, err := dayLogsRepo.GetOrCreate(ctx, testDayKey)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
			} else {
				require.NoError(t, err)
				assert.Equal(t, testDayKey, dl.DayKey)
				assert.Equal(t, 10, dl.Target)
			}
		})
	}
}

func TestApplyIncrement(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	dayLogsRepo := repository.NewDayLogsRepoWithConn(mock)
	query := regexp.QuoteMeta(`UPDATE day_logs SET completed = completed + $2, updated_at = NOW() WHERE day_key = $1 RETURNING day_key, completed, target, floors_per_circuit, updated_at;`)
	updatedAt := time.Now()
	testCases := []struct {
		Desc         string
		Error        error
		Count        int
		Completed    int
		MockPrepFunc func()
	}{
		{
			Desc:      "successful",
			Error:     nil,
			Count:     2,
			Completed: 7,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(testDayKey, 2).WillReturnRows(
					pgxmock.NewRows(dayLogColumns).AddRow(testDayKey, 7, 10, 4, updatedAt),
				)
			},
		},
		{
			Desc:  "missing day log",
			Error: errorvalues.ErrDayLogNotFound,
			Count: 1,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(testDayKey, 1).WillReturnRows(pgxmock.NewRows(dayLogColumns))
			},
		},
		{
			Desc:  "db error",
			Error: errors.New("applying increment error: db error"),
			Count: 1,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs(testDayKey, 1).WillReturnError(errors.New("db error"))
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			dl, err := dayLogsRepo.ApplyIncrement(ctx, testDayKey, tc.Count)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.Completed, dl.Completed)
			}
		})
	}
}

func TestReset(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	dayLogsRepo := repository.NewDayLogsRepoWithConn(mock)
	query := regexp.QuoteMeta(`UPDATE day_logs SET completed = 0, updated_at = NOW() WHERE day_key = $1;`)
	testCases := []struct {
		Desc         string
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc:  "successful",
			Error: nil,
			MockPrepFunc: func() {
				mock.ExpectExec(query).WithArgs(testDayKey).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			Desc:  "missing day log",
			Error: errorvalues.ErrDayLogNotFound,
			MockPrepFunc: func() {
				mock.ExpectExec(query).WithArgs(testDayKey).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
		},
		{
			Desc:  "db error",
			Error: errors.New("resetting day log error: db error"),
			MockPrepFunc: func() {
				mock.ExpectExec(query).WithArgs(testDayKey).WillReturnError(errors.New("db error"))
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			err := dayLogsRepo.Reset(ctx, testDayKey)
			if tc.Error != nil {
				assert.EqualError(t, err, tc.Error.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	dayLogsRepo := repository.NewDayLogsRepoWithConn(mock)
	query := regexp.QuoteMeta(`SELECT day_key, completed, target, floors_per_circuit, updated_at FROM day_logs WHERE day_key >= $1 AND day_key <= $2 ORDER BY day_key DESC;`)
	updatedAt := time.Now()
	ctx := context.Background()

	t.Run("successful", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("2026-01-11", "2026-01-17").WillReturnRows(
			pgxmock.NewRows(dayLogColumns).
				AddRow("2026-01-17", 7, 10, 4, updatedAt).
				AddRow("2026-01-16", 10, 10, 4, updatedAt),
		)
		logs, err := dayLogsRepo.GetRange(ctx, "2026-01-11", "2026-01-17")
		require.NoError(t, err)
		require.Len(t, logs, 2)
		assert.Equal(t, "2026-01-17", logs[0].DayKey)
		assert.Equal(t, "2026-01-16", logs[1].DayKey)
	})

	t.Run("empty period", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("2026-01-11", "2026-01-17").WillReturnRows(pgxmock.NewRows(dayLogColumns))
		logs, err := dayLogsRepo.GetRange(ctx, "2026-01-11", "2026-01-17")
		require.NoError(t, err)
		assert.Empty(t, logs)
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("2026-01-11", "2026-01-17").WillReturnError(errors.New("db error"))
		_, err := dayLogsRepo.GetRange(ctx, "2026-01-11", "2026-01-17")
		assert.EqualError(t, err, "getting day logs for period error: db error")
	})
}
