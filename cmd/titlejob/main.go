package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Gigang-ST/gigang-website/internal/config"
	"github.com/Gigang-ST/gigang-website/internal/sheets"
	"github.com/Gigang-ST/gigang-website/internal/titles"
	"github.com/Gigang-ST/gigang-website/internal/util"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.TitleJobFromEnv()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, nil)
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	log := slog.New(handler)

	ctx := context.Background()
	client, err := sheets.NewAPIClient(ctx, cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID)
	if err != nil {
		log.Error("sheets", "err", err)
		os.Exit(1)
	}

	members, err := client.ActiveMembers()
	if err != nil {
		log.Error("load members", "err", err)
		os.Exit(1)
	}
	log.Info("loaded members", "count", len(members))

	pbRows, err := client.PersonalBestRows()
	if err != nil {
		log.Error("load personal bests", "err", err)
		os.Exit(1)
	}
	recs, err := client.RaceRecords()
	if err != nil {
		log.Error("load race records", "err", err)
		os.Exit(1)
	}

	entries := make([]titles.PBEntry, 0, len(pbRows))
	for _, row := range pbRows {
		entries = append(entries, titles.PBEntry{
			MemberID:   row.MemberID,
			RecordType: row.RecordType,
			Class:      row.Class,
			Record:     row.Record,
		})
	}

	nameToID := titles.NameToID(members)
	result := titles.Calculate(
		members,
		titles.BuildPBMap(entries),
		titles.BuildTrailLevels(recs, nameToID),
		titles.BuildTriathlonLevels(recs, nameToID),
		util.NowKST(),
	)

	if err := client.ReplaceMemberTitles(result); err != nil {
		log.Error("write member titles", "err", err)
		os.Exit(1)
	}
	log.Info("title update complete", "rows", len(result))
}
