package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureServer(t *testing.T, got *map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, got))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"status":"ok"}`))
	}))
}

func TestSubmitJoin(t *testing.T) {
	var got map[string]interface{}
	srv := captureServer(t, &got)
	defer srv.Close()

	g := NewGateway(srv.Client(), srv.URL)
	err := g.SubmitJoin(context.Background(), JoinSubmission{
		Name:      "홍길동",
		Gender:    "male",
		BirthDate: "1995-03-15",
		Phone:     "010-1234-5678",
	})
	require.NoError(t, err)

	assert.Equal(t, "join", got["action"])
	assert.Equal(t, "홍길동", got["name"])
	assert.Equal(t, "1995-03-15", got["birthDate"])
	assert.NotContains(t, got, "note", "empty optional fields stay off the wire")
}

func TestSubmitParticipation(t *testing.T) {
	var got map[string]interface{}
	srv := captureServer(t, &got)
	defer srv.Close()

	g := NewGateway(srv.Client(), srv.URL)
	err := g.SubmitParticipation(context.Background(), ParticipationSubmission{
		MemberID:         "mem_010",
		MemberName:       "홍길동",
		CompetitionName:  "서울마라톤",
		CompetitionClass: "full",
		Pledge:           "완주한다",
	})
	require.NoError(t, err)

	assert.Equal(t, "raceParticipation", got["action"])
	assert.Equal(t, "mem_010", got["memberId"])
	assert.Equal(t, "full", got["competitionClass"])
}

func TestSubmitRecord(t *testing.T) {
	var got map[string]interface{}
	srv := captureServer(t, &got)
	defer srv.Close()

	g := NewGateway(srv.Client(), srv.URL)
	err := g.SubmitRecord(context.Background(), RecordSubmission{
		MemberID:         "mem_010",
		MemberName:       "홍길동",
		RecordType:       "marathon",
		CompetitionName:  "서울마라톤",
		CompetitionClass: "full",
		Record:           "3:29:59",
		CompetitionDate:  "2026-03-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "recordSubmit", got["action"])
	assert.Equal(t, "3:29:59", got["record"])
}

func TestSendIgnoresResponseStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewGateway(srv.Client(), srv.URL)
	err := g.SubmitJoin(context.Background(), JoinSubmission{Name: "홍길동"})
	assert.NoError(t, err, "the sink's status carries no signal")
}

func TestSendUnconfigured(t *testing.T) {
	g := NewGateway(nil, "")
	assert.False(t, g.Configured())

	err := g.SubmitJoin(context.Background(), JoinSubmission{Name: "홍길동"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
