// Package server is the website backend: the read API over the
// sheet-derived models and the append-only write gateway.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Gigang-ST/gigang-website/internal/gasapi"
	"github.com/Gigang-ST/gigang-website/internal/notify"
	"github.com/Gigang-ST/gigang-website/internal/sheets"
	"github.com/Gigang-ST/gigang-website/internal/utmb"
	"github.com/Gigang-ST/gigang-website/internal/webhook"
)

type Server struct {
	log          *slog.Logger
	export       *sheets.ExportClient
	gas          *gasapi.Client
	utmb         *utmb.Client
	gateway      *webhook.Gateway
	notifier     *notify.Notifier
	exportSecret string
}

// New wires the router. notifier may be nil; the write endpoints then skip
// admin notices.
func New(log *slog.Logger, export *sheets.ExportClient, gas *gasapi.Client, utmbClient *utmb.Client, gateway *webhook.Gateway, notifier *notify.Notifier, exportSecret string) *Server {
	return &Server{
		log:          log,
		export:       export,
		gas:          gas,
		utmb:         utmbClient,
		gateway:      gateway,
		notifier:     notifier,
		exportSecret: exportSecret,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/sheets/{sheet}", s.handleSheetProxy)
		r.Get("/races", s.handleRaces)
		r.Get("/records/marathon", s.handleMarathonRecords)
		r.Get("/records/pb", s.handlePBBoards)
		r.Get("/records/triathlon", s.handleTriathlonRecords)
		r.Get("/records/trail", s.handleTrailRecords)
		r.Post("/fees/lookup", s.handleFeeLookup)
		r.Get("/utmb/{slug}", s.handleUtmbProfile)
		r.Get("/member-utmb", s.handleMemberUtmbList)
		r.Post("/member-utmb", s.handleMemberUtmbRegister)

		r.Post("/join", s.handleJoin)
		r.Post("/participation", s.handleParticipation)
		r.Post("/records", s.handleRecordSubmit)
	})

	r.Get("/export/members.csv", s.handleMemberExport)

	return r
}

// requestLogger tags every request with an id and logs method, path, status
// and latency.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.Info("request",
			"id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
