package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/staircircuit/internal/error_values"
	"github.com/limbo/staircircuit/internal/service"
	"github.com/limbo/staircircuit/pkg/httputil"
)

type PairingTokenRequest struct {
	DeviceID string `json:"device_id"`
	Role     string `json:"role"`
}

type IncrementRequest struct {
	Count int `json:"count"`
}

type SetTargetRequest struct {
	Target int `json:"target"`
}

type SetFloorsRequest struct {
	Floors int `json:"floors"`
}

type ReminderSettingsRequest struct {
	Enabled         bool `json:"enabled"`
	StartMinutes    int  `json:"start_minutes"`
	EndMinutes      int  `json:"end_minutes"`
	IntervalMinutes int  `json:"interval_minutes"`
	WeekdaysOnly    bool `json:"weekdays_only"`
}

type PreviewResponse struct {
	FireDates []time.Time `json:"fire_dates"`
}

func (s *Server) IssuePairingToken(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req PairingTokenRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("pairing error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.DeviceID == "" {
		logger.Error("pairing error: empty device id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "device_id is required", nil)
		return
	}
	token, err := s.pairingService.GenerateToken(req.DeviceID, req.Role)
	if err != nil {
		logger.Error("pairing error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "error creating pairing token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"device_id": req.DeviceID,
		"token":     token,
	})
	logger.Info("pairing token issued")
}

func (s *Server) Today(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	summary, err := s.dayLogService.Today(ctx)
	if err != nil {
		logger.Error("getting today summary error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting today summary", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
	logger.Info("today summary provided")
}

func (s *Server) Increment(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req IncrementRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("increment error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	summary, err := s.dayLogService.Increment(ctx, &service.IncrementRequest{
		Count: req.Count,
	})
	if err != nil {
		logger.Error("increment error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't apply increment", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
	logger.Info("circuits incremented")
}

func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	summary, err := s.dayLogService.Reset(ctx)
	if err != nil {
		if errors.Is(err, errorvalues.ErrDayLogNotFound) {
			logger.Error("reset error: unexist day log")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "day log doesn't exist", nil)
			return
		}
		logger.Error("reset error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while resetting day", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
	logger.Info("day reset")
}

func (s *Server) SetTarget(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req SetTargetRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("set target error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	summary, err := s.dayLogService.SetTarget(ctx, &service.SetTargetRequest{
		Target: req.Target,
	})
	if err != nil {
		logger.Error("set target error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't update target", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
	logger.Info("target updated")
}

func (s *Server) SetFloorsPerCircuit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req SetFloorsRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("set floors error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	summary, err := s.dayLogService.SetFloorsPerCircuit(ctx, &service.SetFloorsPerCircuitRequest{
		Floors: req.Floors,
	})
	if err != nil {
		logger.Error("set floors error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't update floors per circuit", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
	logger.Info("floors per circuit updated")
}

func (s *Server) GetReminderSettings(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	settings, err := s.reminderService.GetSettings(ctx)
	if err != nil {
		logger.Error("getting reminder settings error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting reminder settings", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, settings)
	logger.Info("reminder settings provided")
}

func (s *Server) UpdateReminderSettings(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req ReminderSettingsRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("updating reminder settings error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	settings, err := s.reminderService.UpdateSettings(ctx, &service.UpdateReminderSettingsRequest{
		Enabled:         req.Enabled,
		StartMinutes:    req.StartMinutes,
		EndMinutes:      req.EndMinutes,
		IntervalMinutes: req.IntervalMinutes,
		WeekdaysOnly:    req.WeekdaysOnly,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrInvalidWindow) {
			logger.Error("updating reminder settings error: inverted window")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "reminder window start must be before end", nil)
			return
		}
		logger.Error("updating reminder settings error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "couldn't update reminder settings", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, settings)
	logger.Info("reminder settings updated")
}

func (s *Server) PreviewFireDates(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	dates, err := s.reminderService.PreviewFireDates(ctx)
	if err != nil {
		logger.Error("previewing fire dates error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while previewing fire dates", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, PreviewResponse{FireDates: dates})
	logger.Info("fire dates previewed")
}

func (s *Server) WeeklyStats(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	stats, err := s.analyticsService.WeeklyStats(ctx)
	if err != nil {
		logger.Error("getting weekly stats error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting weekly stats", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
	logger.Info("weekly stats provided")
}

func (s *Server) Streaks(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	info, err := s.analyticsService.Streaks(ctx)
	if err != nil {
		logger.Error("getting streaks error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting streaks", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, info)
	logger.Info("streaks provided")
}

func (s *Server) TargetSuggestion(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	suggestion, err := s.analyticsService.TargetSuggestion(ctx)
	if err != nil {
		logger.Error("getting target suggestion error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting target suggestion", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, suggestion)
	logger.Info("target suggestion provided")
}
