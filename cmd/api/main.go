// @title Stair circuit API
// @description API for the primary device of the stair-circuit tracker
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/limbo/staircircuit/internal/api"
	"github.com/limbo/staircircuit/internal/devicesync"
	"github.com/limbo/staircircuit/internal/reminder"
	"github.com/limbo/staircircuit/internal/repository"
	"github.com/limbo/staircircuit/internal/service"
	"github.com/limbo/staircircuit/internal/transport"
	"github.com/limbo/staircircuit/pkg/cleanup"
	"github.com/limbo/staircircuit/pkg/config"
	"github.com/limbo/staircircuit/pkg/pairing"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}

	loc, err := time.LoadLocation(cfg.GetString("TIMEZONE"))
	if err != nil {
		log.Println("unknown TIMEZONE, using local time: " + err.Error())
		loc = time.Local
	}
	cal := reminder.NewCalendar(loc)

	dayLogsRepo := repository.NewDayLogsRepo(&dbCfg)
	settingsRepo := repository.NewReminderSettingsRepo(&dbCfg)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.GetString("REDIS_ADDRESS"),
		Password: cfg.GetString("REDIS_PASSWORD"),
	})
	cleanup.Register(&cleanup.Job{Name: "redis client", F: redisClient.Close})

	deviceID := cfg.GetString("DEVICE_ID")
	peerID := cfg.GetString("PEER_DEVICE_ID")
	channel := transport.NewRedisChannel(redisClient, deviceID, peerID, slog.Default())
	cleanup.Register(&cleanup.Job{Name: "device channel", F: channel.Close})

	planner := reminder.NewPlanner(reminder.NewLogDispatcher(slog.Default()), cal, slog.Default())
	primary := devicesync.NewPrimary(dayLogsRepo, settingsRepo, channel, planner, cal, slog.Default())
	channel.SetHandler(func(ctx context.Context, payload devicesync.Payload) {
		if err := primary.HandleMessage(ctx, payload); err != nil {
			slog.Error("handling companion message failed", slog.String("error", err.Error()))
		}
	})
	if err := channel.Activate(context.Background()); err != nil {
		log.Println("device channel inactive, running standalone: " + err.Error())
	}

	serv := api.New(&api.ServicesList{
		DayLogService:    service.NewDayLogService(dayLogsRepo, primary),
		ReminderService:  service.NewReminderService(settingsRepo, primary, planner, cal),
		AnalyticsService: service.NewAnalyticsService(dayLogsRepo, cal),
		PairingService:   pairing.New(cfg.GetString("PAIRING_SECRET")),
	})
	err = serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
