package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mounacademy/ninth/internal/api"
	"github.com/mounacademy/ninth/internal/app/reminder"
	"github.com/mounacademy/ninth/internal/app/tracker"
	"github.com/mounacademy/ninth/internal/health"
	_ "github.com/mounacademy/ninth/internal/infra/metrics" // Register Prometheus metrics
	"github.com/mounacademy/ninth/internal/infra/sqlite"
)

// Daemon is the core ninth runtime. It wires together all services.
type Daemon struct {
	Config    Config
	DB        *sqlite.DB
	Tracker   *tracker.Service
	Reminders *reminder.Scheduler
	Health    *health.Checker
	Server    *api.Server
	cancel    context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dataDir := cfg.Storage.Dir
	if dataDir == "" {
		dataDir = ninthHome()
	}

	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	trk := tracker.New(db)

	sched := reminder.NewScheduler(db)
	sched.SetInterval(parseDuration(cfg.Reminders.Interval, time.Minute))

	srv := api.NewServer(trk, sched)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	hc := health.NewChecker(db, dataDir)
	srv.SetHealth(hc)

	return &Daemon{
		Config:    cfg,
		DB:        db,
		Tracker:   trk,
		Reminders: sched,
		Health:    hc,
		Server:    srv,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)

	if d.Config.Reminders.Enabled {
		go d.Reminders.Run(ctx)
	}

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("ninth serving on http://%s\n", addr)
	if d.Config.Reminders.Enabled {
		fmt.Printf("  Reminders: every %s\n", d.Config.Reminders.Interval)
	}
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
