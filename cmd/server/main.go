package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Gigang-ST/gigang-website/internal/config"
	"github.com/Gigang-ST/gigang-website/internal/gasapi"
	"github.com/Gigang-ST/gigang-website/internal/notify"
	"github.com/Gigang-ST/gigang-website/internal/server"
	"github.com/Gigang-ST/gigang-website/internal/sheets"
	"github.com/Gigang-ST/gigang-website/internal/utmb"
	"github.com/Gigang-ST/gigang-website/internal/webhook"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, nil)
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	log := slog.New(handler)

	export := sheets.NewExportClient(cfg.SpreadsheetID, cfg.SheetGIDs, cfg.CacheTTL)
	gas := gasapi.NewClient(nil, cfg.GASAPIURL)
	if cfg.GASAPIURL == "" {
		log.Warn("GAS_API_URL not set, personal-best and activity-log views disabled")
	}
	utmbClient := utmb.NewClient(nil, cfg.UTMBBaseURL)
	gateway := webhook.NewGateway(nil, cfg.WebhookURL)
	if !gateway.Configured() {
		log.Warn("GOOGLE_SCRIPT_URL not set, write endpoints will reject submissions")
	}

	notifier, err := notify.New(cfg.TelegramToken, cfg.TelegramChatID, log)
	if err != nil {
		log.Error("telegram", "err", err)
		os.Exit(1)
	}
	if notifier == nil {
		log.Info("telegram notifications disabled")
	}

	srv := server.New(log, export, gas, utmbClient, gateway, notifier, cfg.ExportSecret)
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP listening", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
}
