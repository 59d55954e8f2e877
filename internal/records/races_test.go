package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gigang-ST/gigang-website/internal/models"
)

func TestBuildRacesGroupsCoursesByDateAndName(t *testing.T) {
	comps := []models.Competition{
		{CompetitionID: "comp_001", Type: "road_run", Name: "고구려마라톤", Class: "Full", Date: "2026-02-22"},
		{CompetitionID: "comp_002", Type: "road_run", Name: "고구려마라톤", Class: "Half", Date: "2026-02-22"},
		{CompetitionID: "comp_003", Type: "road_run", Name: "썸머나이트런", Class: "10K", Date: "2026-08-17"},
	}
	apps := []models.CompApplication{
		{FullName: "이현근", CompetitionID: "comp_002", CompetitionName: "고구려마라톤", Class: "Half"},
		{FullName: "김철수", CompetitionID: "", CompetitionName: "고구려마라톤", Class: "Full"}, // legacy row matches by name
		{FullName: "박지은", CompetitionID: "comp_003", CompetitionName: "썸머나이트런", Class: "10K"},
	}
	recs := []models.RaceRecord{
		{FullName: "이현근", CompetitionName: "고구려마라톤", Class: "Half", Record: "1:28:00"},
	}

	races := BuildRaces(comps, apps, recs)
	require.Len(t, races, 2)

	goguryeo := races[0]
	assert.Equal(t, "2026-02-22_고구려마라톤", goguryeo.ID)
	assert.Len(t, goguryeo.Courses, 2)
	assert.Len(t, goguryeo.Participants, 2)
	assert.Len(t, goguryeo.Records, 1)

	summer := races[1]
	require.Len(t, summer.Participants, 1)
	assert.Equal(t, "박지은", summer.Participants[0].FullName)
}

func TestBuildRacesIsPast(t *testing.T) {
	past := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	future := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	comps := []models.Competition{
		{CompetitionID: "comp_001", Name: "지난 대회", Date: past},
		{CompetitionID: "comp_002", Name: "다가올 대회", Date: future},
	}

	races := BuildRaces(comps, nil, nil)
	require.Len(t, races, 2)
	assert.True(t, races[0].IsPast)
	assert.False(t, races[1].IsPast)
}

func TestDeduplicateParticipantsLastWins(t *testing.T) {
	apps := []models.CompApplication{
		{FullName: "이현근", Class: "Full"},
		{FullName: "김철수", Class: "Half"},
		{FullName: "이현근", Class: "10K"}, // resubmission = edit
	}

	unique := DeduplicateParticipants(apps)
	require.Len(t, unique, 2)
	assert.Equal(t, "이현근", unique[0].FullName)
	assert.Equal(t, "10K", unique[0].Class)
	assert.Equal(t, "김철수", unique[1].FullName)
}

func TestSplitRaces(t *testing.T) {
	now := time.Now()
	mk := func(name string, daysFromNow int) models.Race {
		d := now.AddDate(0, 0, daysFromNow).Format("2006-01-02")
		return models.Race{ID: d + "_" + name, Date: d, Name: name, IsPast: daysFromNow < 0}
	}

	races := []models.Race{
		mk("recent-a", -10),
		mk("upcoming-b", 30),
		mk("too-old", -90), // outside the 60-day window
		mk("upcoming-a", 7),
		mk("recent-b", -3),
	}

	upcoming, recent := SplitRaces(races)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "upcoming-a", upcoming[0].Name)
	assert.Equal(t, "upcoming-b", upcoming[1].Name)

	require.Len(t, recent, 2)
	assert.Equal(t, "recent-b", recent[0].Name)
	assert.Equal(t, "recent-a", recent[1].Name)
}
