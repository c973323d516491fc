package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lcalzada-xor/airsentry/internal/adapters/reporting"
	"github.com/lcalzada-xor/airsentry/internal/core/domain"
	"github.com/lcalzada-xor/airsentry/internal/core/ports"
	"github.com/lcalzada-xor/airsentry/internal/core/services/export"
)

// Server exposes the latest cycle's findings over HTTP and websocket. It is
// a downstream subscriber of the monitor; it owns no analysis state beyond
// the most recent report.
type Server struct {
	Addr        string
	WSManager   *WSManager
	PDFExporter *reporting.PDFExporter

	mu         sync.RWMutex
	lastResult *ports.CycleResult

	srv *http.Server
}

// NewServer creates a web server. Register its Subscribe method with the
// monitor to keep it fed.
func NewServer(addr string) *Server {
	return &Server{
		Addr:        addr,
		WSManager:   NewWSManager(),
		PDFExporter: reporting.NewPDFExporter(),
	}
}

// Subscribe implements ports.FindingSubscriber: stores the latest result and
// fans it out to websocket clients.
func (s *Server) Subscribe(result ports.CycleResult) {
	s.mu.Lock()
	s.lastResult = &result
	s.mu.Unlock()

	s.WSManager.BroadcastFindings(result)
}

func (s *Server) latest() (ports.CycleResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastResult == nil {
		return ports.CycleResult{}, false
	}
	return *s.lastResult, true
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)
	api.HandleFunc("/findings", s.handleFindings).Methods(http.MethodGet)
	api.HandleFunc("/networks", s.handleNetworks).Methods(http.MethodGet)
	api.HandleFunc("/export/json", s.handleExportJSON).Methods(http.MethodGet)
	api.HandleFunc("/export/csv", s.handleExportCSV).Methods(http.MethodGet)
	api.HandleFunc("/export/wigle", s.handleExportWiGLE).Methods(http.MethodGet)
	api.HandleFunc("/report.pdf", s.handleReportPDF).Methods(http.MethodGet)

	r.HandleFunc("/ws", s.WSManager.HandleWebSocket)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           otelhttp.NewHandler(s.Routes(), "airsentry-server"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("web server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("web server shutdown error", "error", err)
		}
	}()

	slog.Info("web server listening", "addr", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.latest()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no cycle completed yet"})
		return
	}
	writeJSON(w, http.StatusOK, result.Report)
}

func (s *Server) handleFindings(w http.ResponseWriter, r *http.Request) {
	result, ok := s.latest()
	if !ok {
		writeJSON(w, http.StatusOK, []domain.ThreatFinding{})
		return
	}
	findings := result.Findings
	if findings == nil {
		findings = []domain.ThreatFinding{}
	}
	writeJSON(w, http.StatusOK, findings)
}

func (s *Server) handleNetworks(w http.ResponseWriter, r *http.Request) {
	result, ok := s.latest()
	if !ok {
		writeJSON(w, http.StatusOK, []domain.NetworkObservation{})
		return
	}
	networks := result.Snapshot.Observations
	if networks == nil {
		networks = []domain.NetworkObservation{}
	}
	writeJSON(w, http.StatusOK, networks)
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	result, ok := s.latest()
	if !ok {
		http.Error(w, "no cycle completed yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="findings.json"`)
	if err := export.ExportReportJSON(w, result.Report); err != nil {
		slog.Error("json export failed", "error", err)
	}
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	result, ok := s.latest()
	if !ok {
		http.Error(w, "no cycle completed yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="findings.csv"`)
	if err := export.ExportFindingsCSV(w, result.Findings); err != nil {
		slog.Error("csv export failed", "error", err)
	}
}

func (s *Server) handleExportWiGLE(w http.ResponseWriter, r *http.Request) {
	result, ok := s.latest()
	if !ok {
		http.Error(w, "no cycle completed yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="wigle.csv"`)
	if err := export.ExportWiGLE(w, result.Snapshot); err != nil {
		slog.Error("wigle export failed", "error", err)
	}
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	result, ok := s.latest()
	if !ok {
		http.Error(w, "no cycle completed yet", http.StatusNotFound)
		return
	}
	pdf, err := s.PDFExporter.ExportThreatReport(result.Report)
	if err != nil {
		http.Error(w, "failed to generate report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="threat-report.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		slog.Error("pdf export failed", "error", err)
	}
}
