// Package webhook posts write submissions to the spreadsheet's append-only
// script endpoint. The sink synthesizes row ids and Korea-time timestamps
// itself; the caller only ships the envelope.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

var ErrNotConfigured = errors.New("Google Script URL이 설정되지 않았습니다.")

// Action discriminants of the envelope.
const (
	ActionJoin              = "join"
	ActionRaceParticipation = "raceParticipation"
	ActionRecordSubmit      = "recordSubmit"
)

// JoinSubmission appends a row to the membership sheet.
type JoinSubmission struct {
	Name          string `json:"name"`
	Gender        string `json:"gender"` // male | female
	BirthDate     string `json:"birthDate"`
	Phone         string `json:"phone,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	Note          string `json:"note,omitempty"`
}

// ParticipationSubmission appends a row to the race-participation sheet.
// The sink derives status from the class ("응원" means cheering).
type ParticipationSubmission struct {
	MemberID         string `json:"memberId"`
	MemberName       string `json:"memberName"`
	CompetitionID    string `json:"competitionId,omitempty"`
	CompetitionName  string `json:"competitionName"`
	CompetitionClass string `json:"competitionClass"`
	Pledge           string `json:"pledge,omitempty"`
}

// RecordSubmission appends a row to the race-record sheet.
type RecordSubmission struct {
	MemberID         string `json:"memberId"`
	MemberName       string `json:"memberName"`
	RecordType       string `json:"recordType"` // marathon | trail | triathlon
	CompetitionID    string `json:"competitionId,omitempty"`
	CompetitionName  string `json:"competitionName"`
	CompetitionClass string `json:"competitionClass"`
	Record           string `json:"record"`
	CompetitionDate  string `json:"competitionDate"`
}

// Gateway is the write-side client. All sends are fire-and-forget: the
// endpoint's response carries no useful signal, so only transport failures
// surface as errors.
type Gateway struct {
	http *http.Client
	url  string
}

func NewGateway(httpClient *http.Client, scriptURL string) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Gateway{http: httpClient, url: scriptURL}
}

// Configured reports whether a script URL was provided. Callers check this
// up front so a misconfigured deployment fails at the submission site with
// a clear message instead of a silent drop.
func (g *Gateway) Configured() bool { return g.url != "" }

func (g *Gateway) SubmitJoin(ctx context.Context, s JoinSubmission) error {
	return g.send(ctx, ActionJoin, s)
}

func (g *Gateway) SubmitParticipation(ctx context.Context, s ParticipationSubmission) error {
	return g.send(ctx, ActionRaceParticipation, s)
}

func (g *Gateway) SubmitRecord(ctx context.Context, s RecordSubmission) error {
	return g.send(ctx, ActionRecordSubmit, s)
}

func (g *Gateway) send(ctx context.Context, action string, payload interface{}) error {
	if g.url == "" {
		return ErrNotConfigured
	}

	body, err := envelope(action, payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// The script endpoint answers through a redirect chain and its status
	// says nothing about whether the row landed. Drain and move on.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// envelope flattens the payload and injects the action discriminant.
func envelope(action string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["action"] = action
	return json.Marshal(fields)
}
