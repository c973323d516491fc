package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lcalzada-xor/airsentry/internal/adapters/scanner"
	"github.com/lcalzada-xor/airsentry/internal/adapters/storage"
	"github.com/lcalzada-xor/airsentry/internal/adapters/web"
	"github.com/lcalzada-xor/airsentry/internal/config"
	"github.com/lcalzada-xor/airsentry/internal/core/ports"
	"github.com/lcalzada-xor/airsentry/internal/core/services/analysis"
	"github.com/lcalzada-xor/airsentry/internal/core/services/monitor"
	"github.com/lcalzada-xor/airsentry/internal/telemetry"
)

// Application wires the scanner, history store, engine, monitor and web
// server together. It is the facade the main package drives.
type Application struct {
	Config    *config.Config
	Monitor   *monitor.Monitor
	WebServer *web.Server
	Store     *storage.SQLiteHistoryStore
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{Config: cfg}

	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}

	return app, nil
}

func (app *Application) bootstrap() error {
	telemetry.InitMetrics()

	store, err := storage.NewSQLiteHistoryStore(app.Config.DBPath, app.Config.HistoryDepth)
	if err != nil {
		return err
	}
	app.Store = store

	var scan ports.Scanner
	if app.Config.MockMode {
		slog.Info("running in mock mode")
		scan = scanner.NewMockScanner(time.Now().UnixNano())
	} else {
		scan = scanner.NewIWScanner(app.Config.Interface)
	}

	engine := analysis.NewEngine()
	app.Monitor = monitor.New(scan, store, engine, app.Config.ScanInterval, app.Config.HistoryDepth)

	app.WebServer = web.NewServer(app.Config.Addr)
	app.Monitor.OnFindings(app.WebServer.Subscribe)
	app.Monitor.OnFindings(logFindings)

	return nil
}

// logFindings is the always-on sink: every finding is logged structurally.
func logFindings(result ports.CycleResult) {
	for _, f := range result.Findings {
		slog.Warn("threat finding",
			"type", f.Type,
			"severity", f.Severity.String(),
			"ssid", f.SSID,
			"bssid", f.BSSID,
			"description", f.Description)
	}
}

// Run starts the monitor loop and web server and blocks until ctx is
// cancelled.
func (app *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		errCh <- app.WebServer.Run(ctx)
	}()
	go func() {
		errCh <- app.Monitor.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}
