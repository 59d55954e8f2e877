package titles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gigang-ST/gigang-website/internal/models"
)

func TestTrailLevel(t *testing.T) {
	tests := []struct {
		comp, class string
		want        int
	}{
		{"UTMB", "100 mile", 5},
		{"Korea 100M", "", 5},
		{"TNF 100K", "", 4},
		{"Trail Race", "50k", 3},
		{"Jirisan", "30K", 2},
		{"Local Trail", "20 k", 2},
		{"Some Race", "Half", 2},
		{"Dongne Trail", "10k", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TrailLevel(tt.comp, tt.class), "%s / %s", tt.comp, tt.class)
	}
}

func TestTriathlonLevel(t *testing.T) {
	tests := []struct {
		class string
		want  int
	}{
		{"King", 4},
		{"IRONMAN Gurye", 4},
		{"iron man 70.3", 4},
		{"Half", 3},
		{"middle distance", 3},
		{"Olympic", 2},
		{"oly course", 2},
		{"sprint", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TriathlonLevel(tt.class), tt.class)
	}
}

func TestBuildPBMap(t *testing.T) {
	entries := []PBEntry{
		{MemberID: "mem_010", RecordType: "marathon", Class: "full", Record: "3:30:00"},
		{MemberID: "mem_010", RecordType: "marathon", Class: "Full", Record: "3:20:00"},
		{MemberID: "mem_010", RecordType: "marathon", Class: "10k", Record: "45:00"},
		{MemberID: "mem_010", RecordType: "trail", Class: "full", Record: "2:00:00"},
		{MemberID: "mem_010", RecordType: "marathon", Class: "32k", Record: "2:30:00"},
		{MemberID: "mem_011", RecordType: "marathon", Class: "half", Record: "abc"},
	}

	pbMap := BuildPBMap(entries)

	require.Contains(t, pbMap, "mem_010")
	assert.Equal(t, 12000, pbMap["mem_010"]["full"], "lower full time wins")
	assert.Equal(t, 2700, pbMap["mem_010"]["10k"])
	assert.NotContains(t, pbMap["mem_010"], "32k", "32k is not a title course")
	assert.NotContains(t, pbMap, "mem_011", "unparseable record dropped")
}

func TestBuildTrailLevels(t *testing.T) {
	nameToID := map[string]string{"김산악": "mem_033"}
	recs := []models.RaceRecord{
		{RecordType: "trail", FullName: "김산악", CompetitionName: "TNF 50K", Class: "50k"},
		{RecordType: "trail", FullName: "김산악", CompetitionName: "동네 트레일", Class: "10k"},
		{RecordType: "trail", FullName: "모르는사람", CompetitionName: "UTMB", Class: "100 mile"},
		{RecordType: "marathon", FullName: "김산악", CompetitionName: "서울마라톤", Class: "full"},
	}

	got := BuildTrailLevels(recs, nameToID)

	assert.Equal(t, map[string]int{"mem_033": 3}, got)
}

func TestBuildTriathlonLevels(t *testing.T) {
	nameToID := map[string]string{"박철인": "mem_002"}
	recs := []models.RaceRecord{
		{RecordType: "triathlon", FullName: "박철인", Class: "Olympic"},
		{RecordType: "triathlon", FullName: "박철인", Class: "Half"},
		{RecordType: "triathlon", FullName: "박철인", Class: "sprint"},
	}

	got := BuildTriathlonLevels(recs, nameToID)

	assert.Equal(t, map[string]int{"mem_002": 3}, got)
}

func TestCalculate(t *testing.T) {
	members := []models.Member{
		{MemberID: "mem_001", FullName: "김단장"},
		{MemberID: "mem_005", FullName: "이현근"},
		{MemberID: "mem_010", FullName: "최기록"},
	}
	pbMap := map[string]map[string]int{
		// 이현근: full 3:10:00 sets the dynamic standard
		"mem_005": {"full": 11400},
		// 최기록: full 3:05:00 beats the standard but misses 최고존엄
		"mem_010": {"full": 11100, "10k": 3000},
	}
	trailMap := map[string]int{"mem_010": 2}
	triMap := map[string]int{"mem_005": 4}

	got := Calculate(members, pbMap, trailMap, triMap, "2026-01-01 00:00:00")

	require.Len(t, got, 6)

	// mem_001: marathon baseline plus crew role.
	assert.Equal(t, "mt_0001", got[0].TitleID)
	assert.Equal(t, "런린이", got[0].Name)
	assert.Equal(t, GroupMarathon, got[0].Group)
	assert.Equal(t, "단장", got[1].Name)
	assert.Equal(t, GroupCrewRole, got[1].Group)
	assert.Equal(t, "Hardcoded Role", got[1].SourceRef)

	// 이현근 cannot beat his own standard: 천상천하유아독존 at 11400 wins.
	assert.Equal(t, "천상천하유아독존", got[2].Name)
	assert.Equal(t, "킹철인", got[3].Name)
	assert.Equal(t, GroupTriathlon, got[3].Group)

	// 최기록: 서브현근(80) loses to 천상천하유아독존(81) at 11100 <= 11400.
	assert.Equal(t, "천상천하유아독존", got[4].Name)
	assert.Equal(t, "FULL PB: 3:05:00", got[4].SourceRef)
	assert.Equal(t, "T20K", got[5].Name)
	assert.Equal(t, GroupTrailRun, got[5].Group)
	assert.Equal(t, "mt_0006", got[5].TitleID)

	for _, row := range got {
		assert.Equal(t, "2026-01-01 00:00:00", row.AssignedAt)
	}
}

func TestCalculateBeatStandard(t *testing.T) {
	members := []models.Member{
		{MemberID: "mem_005", FullName: "이현근"},
		{MemberID: "mem_020", FullName: "정질주"},
	}
	pbMap := map[string]map[string]int{
		"mem_005": {"full": 12000},
		"mem_020": {"full": 11900},
	}

	got := Calculate(members, pbMap, nil, nil, "ts")

	require.Len(t, got, 2)
	assert.Equal(t, "신세계", got[0].Name, "standard setter stays at the record tier")
	assert.Equal(t, "서브현근", got[1].Name)
	assert.Equal(t, "Beat Standard (3:20:00)", got[1].SourceRef)
}

func TestCalculateNoStandardSetter(t *testing.T) {
	members := []models.Member{{MemberID: "mem_030", FullName: "한빠름"}}
	pbMap := map[string]map[string]int{"mem_030": {"full": 10700}}

	got := Calculate(members, pbMap, nil, nil, "ts")

	require.Len(t, got, 1)
	assert.Equal(t, "최고존엄", got[0].Name, "without a standard the fixed tiers still apply")
}

func TestCalculateDeterministic(t *testing.T) {
	members := []models.Member{
		{MemberID: "mem_001", FullName: "김단장"},
		{MemberID: "mem_010", FullName: "최기록"},
	}
	pbMap := map[string]map[string]int{"mem_010": {"half": 7100}}
	trailMap := map[string]int{"mem_001": 5, "mem_010": 1}

	first := Calculate(members, pbMap, trailMap, nil, "ts")
	second := Calculate(members, pbMap, trailMap, nil, "ts")

	assert.Equal(t, first, second)
}
