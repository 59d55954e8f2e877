package sheets

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// APIClient talks to the spreadsheet through the Google Sheets API with a
// service account. The website read path uses the CSV export instead; this
// client serves the batch jobs, which also need write access.
type APIClient struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

func NewAPIClient(ctx context.Context, serviceAccountJSONPath, spreadsheetID string) (*APIClient, error) {
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, err
	}
	return &APIClient{srv: srv, spreadsheetID: spreadsheetID}, nil
}

func (c *APIClient) SpreadsheetID() string { return c.spreadsheetID }

func (c *APIClient) readAll(sheet string) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, sheet+"!A:Z").Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// replaceSheet clears a sheet and rewrites it from row 1. Used for derived
// tables that are recomputed whole each run.
func (c *APIClient) replaceSheet(sheet string, rows [][]interface{}) error {
	_, err := c.srv.Spreadsheets.Values.Clear(c.spreadsheetID, sheet+"!A:Z", &sheetsv4.ClearValuesRequest{}).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil
	}
	vr := &sheetsv4.ValueRange{Values: rows}
	_, err = c.srv.Spreadsheets.Values.Update(c.spreadsheetID, sheet+"!A1", vr).
		ValueInputOption("RAW").
		Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", sheet, err)
	}
	return nil
}

// apiCell mirrors cell for the interface-typed rows the API returns.
func apiCell(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}
