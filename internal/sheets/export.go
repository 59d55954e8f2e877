package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Gigang-ST/gigang-website/internal/models"
)

// Logical table names served from the CSV export.
const (
	TableRaces        = "races"        // 대회현황
	TableParticipants = "participants" // 대회참여현황
	TableMembers      = "members"      // 가입신청서
	TableRecords      = "records"      // 대회기록
	TableFees         = "fees"         // 회비장부
)

// ExportClient reads whole tables through the spreadsheet CSV export
// endpoint. Columns are positional; there is no header-name binding.
type ExportClient struct {
	http    *http.Client
	baseURL string
	sheetID string
	gids    map[string]string
	cache   *rowCache
}

const docsBaseURL = "https://docs.google.com/spreadsheets/d"

// NewExportClient builds a client for one spreadsheet. gids maps logical
// table names to sheet gids.
func NewExportClient(sheetID string, gids map[string]string, ttl time.Duration) *ExportClient {
	return &ExportClient{
		http:    &http.Client{Timeout: 20 * time.Second},
		baseURL: docsBaseURL,
		sheetID: sheetID,
		gids:    gids,
		cache:   newRowCache(ttl),
	}
}

// SetBaseURL points the client at a different docs endpoint. Tests use it
// to target a local fake.
func (c *ExportClient) SetBaseURL(u string) { c.baseURL = u }

// GID returns the sheet gid for a logical table name.
func (c *ExportClient) GID(table string) (string, bool) {
	gid, ok := c.gids[table]
	return gid, ok
}

// FetchTable returns the rows of a table with the header row stripped,
// serving from the TTL cache when the entry is fresh.
func (c *ExportClient) FetchTable(ctx context.Context, table string) ([][]string, error) {
	gid, ok := c.gids[table]
	if !ok {
		return nil, fmt.Errorf("unknown sheet %q", table)
	}
	cacheKey := "sheet_" + gid
	if rows, ok := c.cache.get(cacheKey); ok {
		return rows, nil
	}

	text, err := c.fetchCSV(ctx, gid)
	if err != nil {
		return nil, err
	}

	rows := ParseCSV(text)
	if len(rows) > 0 {
		rows = rows[1:] // header
	}
	c.cache.set(cacheKey, rows)
	return rows, nil
}

// FetchRaw returns the raw CSV text of a table, uncached. Used by the
// pass-through proxy endpoint.
func (c *ExportClient) FetchRaw(ctx context.Context, table string) (string, error) {
	gid, ok := c.gids[table]
	if !ok {
		return "", fmt.Errorf("unknown sheet %q", table)
	}
	return c.fetchCSV(ctx, gid)
}

func (c *ExportClient) fetchCSV(ctx context.Context, gid string) (string, error) {
	url := fmt.Sprintf("%s/%s/export?format=csv&gid=%s", c.baseURL, c.sheetID, gid)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch sheet %s: %w", gid, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch sheet %s: status %d", gid, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ---------- typed table reads ----------

func (c *ExportClient) Races(ctx context.Context) ([]models.Competition, error) {
	rows, err := c.FetchTable(ctx, TableRaces)
	if err != nil {
		return nil, err
	}
	comps := make([]models.Competition, 0, len(rows))
	for _, row := range rows {
		dist, _ := strconv.ParseFloat(cell(row, 4), 64)
		comps = append(comps, models.Competition{
			CompetitionID: cell(row, 0),
			Type:          cell(row, 1),
			Name:          cell(row, 2),
			Class:         cell(row, 3),
			DistanceKm:    dist,
			PBKey:         cell(row, 5),
			Date:          cell(row, 6),
		})
	}
	return comps, nil
}

func (c *ExportClient) Participants(ctx context.Context) ([]models.CompApplication, error) {
	rows, err := c.FetchTable(ctx, TableParticipants)
	if err != nil {
		return nil, err
	}
	apps := make([]models.CompApplication, 0, len(rows))
	for _, row := range rows {
		apps = append(apps, models.CompApplication{
			MemberID:        cell(row, 0),
			FullName:        cell(row, 1),
			CompetitionID:   cell(row, 2),
			CompetitionName: cell(row, 3),
			Class:           cell(row, 4),
			Status:          cell(row, 5),
			Pledge:          cell(row, 6),
		})
	}
	return apps, nil
}

func (c *ExportClient) Members(ctx context.Context) ([]models.Member, error) {
	rows, err := c.FetchTable(ctx, TableMembers)
	if err != nil {
		return nil, err
	}
	members := make([]models.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, models.Member{
			MemberID:      cell(row, 0),
			FullName:      cell(row, 1),
			Gender:        cell(row, 2),
			BirthDate:     cell(row, 3),
			Phone:         cell(row, 4),
			Status:        cell(row, 5),
			AccountNumber: cell(row, 6),
			Admin:         cell(row, 7) == "TRUE" || cell(row, 7) == "true",
			JoinDate:      cell(row, 8),
			Note:          cell(row, 11),
		})
	}
	return members, nil
}

func (c *ExportClient) Records(ctx context.Context) ([]models.RaceRecord, error) {
	rows, err := c.FetchTable(ctx, TableRecords)
	if err != nil {
		return nil, err
	}
	records := make([]models.RaceRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.RaceRecord{
			RecordID:        cell(row, 0),
			RecordType:      cell(row, 1),
			FullName:        cell(row, 2),
			CompetitionID:   cell(row, 3),
			CompetitionName: cell(row, 4),
			Class:           cell(row, 5),
			Record:          cell(row, 6),
			CompetitionDate: cell(row, 7),
			SwimTime:        cell(row, 8),
			BikeTime:        cell(row, 9),
			RunTime:         cell(row, 10),
			UtmbSlug:        cell(row, 11),
			UtmbIndex:       cell(row, 12),
		})
	}
	return records, nil
}

func (c *ExportClient) Fees(ctx context.Context) ([]models.FeeRecord, error) {
	rows, err := c.FetchTable(ctx, TableFees)
	if err != nil {
		return nil, err
	}
	fees := make([]models.FeeRecord, 0, len(rows))
	for _, row := range rows {
		amount, _ := strconv.Atoi(cell(row, 3))
		fees = append(fees, models.FeeRecord{
			MemberID: cell(row, 0),
			FullName: cell(row, 1),
			Date:     cell(row, 2),
			Amount:   amount,
			Type:     cell(row, 4),
			Note:     cell(row, 5),
		})
	}
	return fees, nil
}
