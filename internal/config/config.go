package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Gigang-ST/gigang-website/internal/sheets"
)

type Config struct {
	SpreadsheetID string
	SheetGIDs     map[string]string

	GASAPIURL    string
	WebhookURL   string
	UTMBBaseURL  string
	ExportSecret string

	GoogleServiceAccountJSON string

	TelegramToken  string
	TelegramChatID int64

	HTTPAddr string
	CacheTTL time.Duration
	LogJSON  bool
}

// FromEnv reads configuration from the environment. The spreadsheet id, its
// per-table gids and the export secret are required; the write-side and
// notification settings stay optional so the read API can run alone.
func FromEnv() (Config, error) {
	var c Config
	c.SpreadsheetID = strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	c.GoogleServiceAccountJSON = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))

	c.GASAPIURL = strings.TrimSpace(os.Getenv("GAS_API_URL"))
	c.WebhookURL = strings.TrimSpace(os.Getenv("GOOGLE_SCRIPT_URL"))
	c.UTMBBaseURL = strings.TrimSpace(os.Getenv("UTMB_BASE_URL"))
	c.ExportSecret = strings.TrimSpace(os.Getenv("EXPORT_SECRET"))

	c.TelegramToken = strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_ADMIN_CHAT_ID")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c, fmt.Errorf("TELEGRAM_ADMIN_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}

	c.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}

	c.CacheTTL = sheets.DefaultCacheTTL
	if raw := strings.TrimSpace(os.Getenv("SHEET_CACHE_TTL")); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return c, fmt.Errorf("SHEET_CACHE_TTL: %w", err)
		}
		c.CacheTTL = ttl
	}

	c.LogJSON = strings.EqualFold(strings.TrimSpace(os.Getenv("LOG_FORMAT")), "json")

	if c.SpreadsheetID == "" {
		return c, fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID is empty")
	}
	if c.ExportSecret == "" {
		return c, fmt.Errorf("EXPORT_SECRET is empty")
	}

	gids, err := sheetGIDs()
	if err != nil {
		return c, err
	}
	c.SheetGIDs = gids

	return c, nil
}

// TitleJob is the batch job's much smaller configuration.
type TitleJob struct {
	SpreadsheetID            string
	GoogleServiceAccountJSON string
	LogJSON                  bool
}

// TitleJobFromEnv reads what the title batch needs: the spreadsheet and a
// service account that can write to it.
func TitleJobFromEnv() (TitleJob, error) {
	var c TitleJob
	c.SpreadsheetID = strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"))
	c.GoogleServiceAccountJSON = strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	c.LogJSON = strings.EqualFold(strings.TrimSpace(os.Getenv("LOG_FORMAT")), "json")

	if c.SpreadsheetID == "" {
		return c, fmt.Errorf("GOOGLE_SHEETS_SPREADSHEET_ID is empty")
	}
	if c.GoogleServiceAccountJSON == "" {
		return c, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_JSON is empty")
	}
	return c, nil
}

// sheetGIDs collects the per-table gids. Every logical table must have one:
// a missing gid would only surface on first read otherwise.
func sheetGIDs() (map[string]string, error) {
	envByTable := map[string]string{
		sheets.TableRaces:        "SHEET_GID_RACES",
		sheets.TableParticipants: "SHEET_GID_PARTICIPANTS",
		sheets.TableMembers:      "SHEET_GID_MEMBERS",
		sheets.TableRecords:      "SHEET_GID_RECORDS",
		sheets.TableFees:         "SHEET_GID_FEES",
	}
	gids := make(map[string]string, len(envByTable))
	for table, env := range envByTable {
		v := strings.TrimSpace(os.Getenv(env))
		if v == "" {
			return nil, fmt.Errorf("%s is empty", env)
		}
		if _, err := strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("%s: %w", env, err)
		}
		gids[table] = v
	}
	return gids, nil
}
