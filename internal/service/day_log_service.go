package service

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/staircircuit/internal/error_values"
	"github.com/limbo/staircircuit/internal/repository"
	"github.com/limbo/staircircuit/pkg/entity"
)

type DayLogService struct {
	repo      repository.DayLogRepositoryI
	publisher SummaryPublisher
}

func NewDayLogService(dayLogsRepo repository.DayLogRepositoryI, publisher SummaryPublisher) *DayLogService {
	if dayLogsRepo == nil {
		log.Fatal("provided nil dayLogsRepo")
	}
	if publisher == nil {
		log.Fatal("provided nil publisher")
	}
	return &DayLogService{
		repo:      dayLogsRepo,
		publisher: publisher,
	}
}

func (ds *DayLogService) Today(ctx context.Context) (*entity.DaySummary, error) {
	summary, err := ds.publisher.RefreshSummary(ctx)
	if err != nil {
		return nil, errors.New("day logs repository error: " + err.Error())
	}
	return &summary, nil
}

func (ds *DayLogService) Increment(ctx context.Context, req *IncrementRequest) (*entity.DaySummary, error) {
	if err := validateRequest(*req); err != nil {
		return nil, err
	}
	summary, err := ds.publisher.ApplyIncrement(ctx, req.Count)
	if err != nil {
		return nil, errors.New("day logs repository error: " + err.Error())
	}
	return &summary, nil
}

func (ds *DayLogService) Reset(ctx context.Context) (*entity.DaySummary, error) {
	dayKey := ds.publisher.TodayKey()
	if _, err := ds.repo.GetOrCreate(ctx, dayKey); err != nil {
		return nil, errors.New("day logs repository error: " + err.Error())
	}
	if err := ds.repo.Reset(ctx, dayKey); err != nil {
		if errors.Is(err, errorvalues.ErrDayLogNotFound) {
			return nil, err
		}
		return nil, errors.New("day logs repository error: " + err.Error())
	}
	return ds.Today(ctx)
}

func (ds *DayLogService) SetTarget(ctx context.Context, req *SetTargetRequest) (*entity.DaySummary, error) {
	if err := validateRequest(*req); err != nil {
		return nil, err
	}
	dayKey := ds.publisher.TodayKey()
	if _, err := ds.repo.GetOrCreate(ctx, dayKey); err != nil {
		return nil, errors.New("day logs repository error: " + err.Error())
	}
	if err := ds.repo.SetTarget(ctx, dayKey, req.Target); err != nil {
		return nil, errors.New("day logs repository error: " + err.Error())
	}
	return ds.Today(ctx)
}

func (ds *DayLogService) SetFloorsPerCircuit(ctx context.Context, req *SetFloorsPerCircuitRequest) (*entity.DaySummary, error) {
	if err := validateRequest(*req); err != nil {
		return nil, err
	}
	dayKey := ds.publisher.TodayKey()
	if _, err := ds.repo.GetOrCreate(ctx, dayKey); err != nil {
		return nil, errors.New("day logs repository error: " + err.Error())
	}
	if err := ds.repo.SetFloorsPerCircuit(ctx, dayKey, req.Floors); err != nil {
		return nil, errors.New("day logs repository error: " + err.Error())
	}
	return ds.Today(ctx)
}

func validateRequest(req any) error {
	err := validate.Struct(req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return err
		}
		return errors.New("validation unexpected error: " + err.Error())
	}
	return nil
}
