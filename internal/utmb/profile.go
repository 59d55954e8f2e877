// Package utmb scrapes a runner profile from utmb.world. The site is a
// Next.js app, so the interesting payload lives in the embedded
// __NEXT_DATA__ script rather than the rendered markup.
package utmb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultBaseURL = "https://utmb.world"

// Browser-ish headers; the site serves bots a different page.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

var slugRe = regexp.MustCompile(`^[\w.-]+$`)

var (
	ErrInvalidSlug = errors.New("유효하지 않은 UTMB 슬러그입니다.")
	ErrNotFound    = errors.New("러너를 찾을 수 없습니다.")
	ErrUnparseable = errors.New("UTMB 데이터를 파싱할 수 없습니다.")
	ErrUnreachable = errors.New("UTMB 서버에 연결할 수 없습니다.")
)

// Score is one category entry of the runner's performance index.
type Score struct {
	PiCategory string   `json:"piCategory"`
	Index      *float64 `json:"index"`
}

// Race is one recent result, already projected down to what the site shows.
type Race struct {
	EventName    string `json:"eventName"`
	Date         string `json:"date"`
	Distance     string `json:"distance"`
	Elevation    string `json:"elevation"`
	Time         string `json:"time"`
	Rank         *int   `json:"rank"`
	Participants *int   `json:"participants"`
}

// Profile is the projection returned to callers: overall index, per-category
// scores and up to five recent races.
type Profile struct {
	Name        string   `json:"name"`
	UtmbIndex   *float64 `json:"utmbIndex"`
	Scores      []Score  `json:"scores"`
	RecentRaces []Race   `json:"recentRaces"`
}

// Client fetches runner profiles. Zero value is not usable; construct with
// NewClient.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{http: httpClient, baseURL: baseURL}
}

// flexString tolerates the upstream payload flip-flopping between string and
// numeric values for distance and elevation.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}

type rawResult struct {
	Race          string     `json:"race"`
	Date          string     `json:"date"`
	DateISO       string     `json:"dateIso"`
	Distance      flexString `json:"distance"`
	ElevationGain flexString `json:"elevationGain"`
	Time          string     `json:"time"`
	Rank          *int       `json:"rank"`
	TotalRanked   *int       `json:"totalRanked"`
}

type pageProps struct {
	Fullname           string  `json:"fullname"`
	PerformanceIndexes []Score `json:"performanceIndexes"`
	Results            struct {
		Results []rawResult `json:"results"`
	} `json:"results"`
}

// ValidSlug reports whether s is an acceptable runner slug. The same check
// guards both the scrape path and slug registration.
func ValidSlug(s string) bool {
	return s != "" && slugRe.MatchString(s)
}

// FetchProfile loads and projects the runner page for slug. Errors wrap one
// of the package sentinels so callers can map them to status codes.
func (c *Client) FetchProfile(ctx context.Context, slug string) (*Profile, error) {
	if !ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}

	reqURL := c.baseURL + "/en/runner/" + url.PathEscape(slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w (status %d)", ErrNotFound, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	raw := doc.Find(`script#__NEXT_DATA__`).First().Text()
	if raw == "" {
		return nil, ErrUnparseable
	}

	var payload struct {
		Props struct {
			PageProps json.RawMessage `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if len(payload.Props.PageProps) == 0 || string(payload.Props.PageProps) == "null" {
		return nil, ErrUnparseable
	}

	var props pageProps
	if err := json.Unmarshal(payload.Props.PageProps, &props); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	return project(&props), nil
}

func project(props *pageProps) *Profile {
	p := &Profile{
		Name:   props.Fullname,
		Scores: []Score{},
	}
	for _, idx := range props.PerformanceIndexes {
		if idx.PiCategory == "general" {
			p.UtmbIndex = idx.Index
			continue
		}
		p.Scores = append(p.Scores, idx)
	}

	results := props.Results.Results
	if len(results) > 5 {
		results = results[:5]
	}
	p.RecentRaces = make([]Race, 0, len(results))
	for _, r := range results {
		date := r.DateISO
		if date == "" {
			date = r.Date
		}
		p.RecentRaces = append(p.RecentRaces, Race{
			EventName:    r.Race,
			Date:         date,
			Distance:     string(r.Distance),
			Elevation:    string(r.ElevationGain),
			Time:         r.Time,
			Rank:         r.Rank,
			Participants: r.TotalRanked,
		})
	}
	return p
}
