package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/nutrisnap/nutrisnap/backend/config"
	"github.com/nutrisnap/nutrisnap/backend/internal/database"
	"github.com/nutrisnap/nutrisnap/backend/internal/router"
	"github.com/nutrisnap/nutrisnap/backend/internal/service"
)

// reminderInterval is how often the water reminder fires while the
// server runs.
const reminderInterval = 2 * time.Hour

// Server owns the HTTP listener and the background scheduler.
type Server struct {
	http      *http.Server
	reminders *service.ReminderScheduler
}

// New connects the databases and assembles the full server.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: failed to connect to Redis: %v", err)
		redisClient = nil
	}

	engine := router.SetupRouter(db, redisClient, cfg)

	reminders := service.NewReminderScheduler(reminderInterval, func() {
		log.Printf("[Reminder] time to drink water")
	})

	return &Server{
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
		reminders: reminders,
	}, nil
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	s.reminders.Start()
	log.Printf("Server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the scheduler and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.reminders.Stop()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
