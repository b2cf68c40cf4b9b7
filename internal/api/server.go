package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/staircircuit/internal/service"
)

type Server struct {
	mx               *chi.Mux
	dayLogService    service.DayLogServiceI
	reminderService  service.ReminderServiceI
	analyticsService service.AnalyticsServiceI
	pairingService   PairingServiceI
}

type ServicesList struct {
	DayLogService    service.DayLogServiceI
	ReminderService  service.ReminderServiceI
	AnalyticsService service.AnalyticsServiceI
	PairingService   PairingServiceI
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:               chi.NewMux(),
		dayLogService:    servicesOptions.DayLogService,
		reminderService:  servicesOptions.ReminderService,
		analyticsService: servicesOptions.AnalyticsService,
		pairingService:   servicesOptions.PairingService,
	}
	s.mountRoutes()
	return s
}

func (s *Server) mountRoutes() {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)

	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/pairing/token", s.IssuePairingToken)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Use(s.LoggerExtensionMiddleware)

			r.Get("/day/today", s.Today)
			r.Post("/day/increment", s.Increment)
			r.Post("/day/reset", s.Reset)
			r.Put("/day/target", s.SetTarget)
			r.Put("/day/floors", s.SetFloorsPerCircuit)

			r.Get("/reminders/settings", s.GetReminderSettings)
			r.Put("/reminders/settings", s.UpdateReminderSettings)
			r.Get("/reminders/preview", s.PreviewFireDates)

			r.Get("/stats/weekly", s.WeeklyStats)
			r.Get("/stats/streaks", s.Streaks)
			r.Get("/stats/suggestion", s.TargetSuggestion)
		})
	})
}

// Handler exposes the routed mux, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.mx
}

func (s *Server) Run(addr string) error {
	return http.ListenAndServe(addr, s.mx)
}
