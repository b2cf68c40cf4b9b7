// Companion daemon: keeps the wrist-side replica, buffers offline taps and
// reconciles with the primary over the device channel.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/limbo/staircircuit/internal/devicesync"
	"github.com/limbo/staircircuit/internal/repository"
	"github.com/limbo/staircircuit/internal/transport"
	"github.com/limbo/staircircuit/pkg/cleanup"
	"github.com/limbo/staircircuit/pkg/config"
	"github.com/limbo/staircircuit/pkg/entity"
	"github.com/limbo/staircircuit/pkg/httputil"
)

type workoutRequest struct {
	Date             time.Time `json:"date"`
	DurationSeconds  float64   `json:"duration"`
	Floors           float64   `json:"floors"`
	ActiveEnergy     float64   `json:"activeEnergy"`
	AverageHeartRate float64   `json:"averageHeartRate"`
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()

	store, err := repository.NewCompanionStore(cfg.GetString("COMPANION_DB_PATH"))
	if err != nil {
		log.Fatal("opening companion store error: " + err.Error())
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.GetString("REDIS_ADDRESS"),
		Password: cfg.GetString("REDIS_PASSWORD"),
	})
	cleanup.Register(&cleanup.Job{Name: "redis client", F: redisClient.Close})

	deviceID := cfg.GetString("DEVICE_ID")
	peerID := cfg.GetString("PEER_DEVICE_ID")
	channel := transport.NewRedisChannel(redisClient, deviceID, peerID, slog.Default())
	cleanup.Register(&cleanup.Job{Name: "device channel", F: channel.Close})

	companion, err := devicesync.NewCompanion(store, channel, slog.Default())
	if err != nil {
		log.Fatal("building companion error: " + err.Error())
	}
	channel.SetHandler(func(ctx context.Context, payload devicesync.Payload) {
		if err := companion.HandleSummaryPayload(ctx, payload); err != nil {
			slog.Error("handling summary payload failed", slog.String("error", err.Error()))
		}
	})
	if err := channel.Activate(context.Background()); err != nil {
		log.Println("device channel inactive, buffering offline: " + err.Error())
	} else {
		companion.OnActivated(context.Background())
	}

	mx := chi.NewMux()
	mx.Get("/summary", func(w http.ResponseWriter, r *http.Request) {
		summary := companion.Summary()
		if summary == nil {
			httputil.WriteErrorResponse(w, http.StatusNotFound, "no cached summary yet", nil)
			return
		}
		httputil.WriteJSONResponse(w, http.StatusOK, summary)
	})
	mx.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
			"status": companion.Status(),
		})
	})
	mx.Post("/increment", func(w http.ResponseWriter, r *http.Request) {
		if err := companion.IncrementOffline(r.Context()); err != nil {
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "couldn't record increment", nil)
			return
		}
		httputil.WriteJSONResponse(w, http.StatusOK, companion.Summary())
	})
	mx.Post("/workout", func(w http.ResponseWriter, r *http.Request) {
		var req workoutRequest
		defer r.Body.Close()
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		err := companion.RecordWorkoutSummary(r.Context(), entity.WorkoutSummary{
			Date:             req.Date,
			DurationSeconds:  req.DurationSeconds,
			Floors:           req.Floors,
			ActiveEnergy:     req.ActiveEnergy,
			AverageHeartRate: req.AverageHeartRate,
		})
		if err != nil {
			httputil.WriteErrorResponse(w, http.StatusServiceUnavailable, "couldn't relay workout", err)
			return
		}
		httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
			"workout":  companion.LastWorkout(),
			"circuits": companion.LastWorkoutCircuits(),
		})
	})

	err = http.ListenAndServe(cfg.GetString("COMPANION_ADDRESS"), mx)
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
