package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gigang-ST/gigang-website/internal/models"
)

func activeMember(id, name, gender string) models.Member {
	return models.Member{MemberID: id, FullName: name, Gender: gender, Status: "active"}
}

func TestActiveMemberNames(t *testing.T) {
	members := []models.Member{
		activeMember("mem_001", "이현근", "male"),
		{MemberID: "mem_002", FullName: "김철수", Status: "inactive"},
		{MemberID: "mem_003", FullName: "박영희", Status: "banned"},
		activeMember("mem_004", "박지은", "female"),
	}
	names := ActiveMemberNames(members)
	assert.Len(t, names, 2)
	assert.Contains(t, names, "이현근")
	assert.Contains(t, names, "박지은")
}

func TestBestPerPerson(t *testing.T) {
	records := []models.RaceRecord{
		{FullName: "김철수", Class: "Full", Record: "3:30:00"},
		{FullName: "김철수", Class: "Full", Record: "3:10:00"},
		{FullName: "김철수", Class: "Half", Record: "1:40:00"}, // other course excluded
		{FullName: "이현근", Class: "FULL", Record: "3:05:00"}, // class match is case-insensitive
		{FullName: "박지은", Class: "Full", Record: ""},         // unparseable sorts last
	}

	best := BestPerPerson(records, "Full")
	require.Len(t, best, 3)
	assert.Equal(t, "이현근", best[0].FullName)
	assert.Equal(t, "3:05:00", best[0].Record)
	assert.Equal(t, "김철수", best[1].FullName)
	assert.Equal(t, "3:10:00", best[1].Record)
	assert.Equal(t, "박지은", best[2].FullName)
}

func TestBestPerPersonTieKeepsFirstSeen(t *testing.T) {
	records := []models.RaceRecord{
		{FullName: "김철수", Class: "10K", Record: "0:40:00", CompetitionName: "첫 대회"},
		{FullName: "김철수", Class: "10K", Record: "0:40:00", CompetitionName: "둘째 대회"},
	}
	best := BestPerPerson(records, "10K")
	require.Len(t, best, 1)
	assert.Equal(t, "첫 대회", best[0].CompetitionName)
}

func TestMarathonBoards(t *testing.T) {
	members := []models.Member{
		activeMember("mem_001", "이현근", "male"),
		activeMember("mem_002", "박지은", "female"),
		{MemberID: "mem_003", FullName: "탈퇴자", Gender: "male", Status: "inactive"},
	}
	records := []models.RaceRecord{
		{RecordType: "marathon", FullName: "이현근", Class: "Full", Record: "3:05:00"},
		{RecordType: "marathon", FullName: "박지은", Class: "Full", Record: "3:40:00"},
		{RecordType: "marathon", FullName: "탈퇴자", Class: "Full", Record: "2:50:00"},
		{RecordType: "trail", FullName: "이현근", Class: "Full", Record: "9:00:00"},
	}

	boards := MarathonBoards(records, members)
	require.Len(t, boards, 1)
	assert.Equal(t, "Full", boards[0].Course)
	require.Len(t, boards[0].Male, 1)
	assert.Equal(t, "이현근", boards[0].Male[0].FullName)
	require.Len(t, boards[0].Female, 1)
	assert.Equal(t, "박지은", boards[0].Female[0].FullName)
}

func TestMarathonBoardsOmitsEmptyCourses(t *testing.T) {
	members := []models.Member{activeMember("mem_001", "이현근", "male")}
	records := []models.RaceRecord{
		{RecordType: "marathon", FullName: "이현근", Class: "Half", Record: "1:30:00"},
	}
	boards := MarathonBoards(records, members)
	require.Len(t, boards, 1)
	assert.Equal(t, "Half", boards[0].Course)
}

func TestTriathlonBoardsRecencyWindow(t *testing.T) {
	members := []models.Member{activeMember("mem_001", "이현근", "male")}
	fresh := time.Now().AddDate(0, -12, 0).Format("2006-01-02")
	stale := time.Now().AddDate(0, -61, 0).Format("2006-01-02")
	records := []models.RaceRecord{
		{RecordType: "triathlon", FullName: "이현근", Class: "King", Record: "11:00:00", CompetitionDate: fresh},
		{RecordType: "triathlon", FullName: "이현근", Class: "Olympic", Record: "2:40:00", CompetitionDate: stale},
	}

	boards := TriathlonBoards(records, members)
	require.Len(t, boards, 1)
	assert.Equal(t, "King", boards[0].Course)
}

func TestMarathonPBBoards(t *testing.T) {
	members := []models.Member{
		activeMember("mem_001", "이현근", "male"),
		activeMember("mem_002", "박지은", "female"),
	}
	pbs := []models.PersonalBest{
		{FullName: "박지은", PBKey: "full", BestTimeSec: 13200},
		{FullName: "이현근", PBKey: "full", BestTimeSec: 11100},
		{FullName: "이현근", PBKey: "10k", BestTimeSec: 2400},
		{FullName: "유령회원", PBKey: "full", BestTimeSec: 9000}, // not on roster
	}

	boards := MarathonPBBoards(pbs, members)
	require.Len(t, boards, 2)
	assert.Equal(t, "full", boards[0].PBKey)
	require.Len(t, boards[0].Male, 1)
	assert.Equal(t, 11100, boards[0].Male[0].BestTimeSec)
	require.Len(t, boards[0].Female, 1)
	assert.Equal(t, "10k", boards[1].PBKey)
}

func TestTrailBoardSortsByUtmbIndexDesc(t *testing.T) {
	members := []models.Member{
		activeMember("mem_001", "이현근", "male"),
		activeMember("mem_002", "김철수", "male"),
		activeMember("mem_003", "박지은", "female"),
	}
	records := []models.RaceRecord{
		{RecordType: "trail", FullName: "김철수", UtmbIndex: "512"},
		{RecordType: "trail", FullName: "이현근", UtmbIndex: "634"},
		{RecordType: "trail", FullName: "박지은", UtmbIndex: ""}, // unscored sinks
	}

	board := TrailBoard(records, members)
	require.Len(t, board, 3)
	assert.Equal(t, "이현근", board[0].FullName)
	assert.Equal(t, "김철수", board[1].FullName)
	assert.Equal(t, "박지은", board[2].FullName)
}

func TestTrailBoardByElevation(t *testing.T) {
	members := []models.Member{
		activeMember("mem_001", "이현근", "male"),
		activeMember("mem_002", "김철수", "male"),
	}
	logs := []models.ActivityLog{
		{ActivityType: "trail_running", FullName: "김철수", ElevationGainM: 2100},
		{ActivityType: "trail_running", FullName: "이현근", ElevationGainM: 4800},
		{ActivityType: "running", FullName: "이현근", ElevationGainM: 9000}, // not trail
	}

	board := TrailBoardByElevation(logs, members)
	require.Len(t, board, 2)
	assert.Equal(t, "이현근", board[0].FullName)
}
