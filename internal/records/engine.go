package records

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Gigang-ST/gigang-website/internal/models"
)

// The legacy schema has no reliable cross-sheet id join, so full name is the
// de facto key throughout this package. Two active members sharing an exact
// name are conflated; see the known-limitations section of DESIGN.md.

// ActiveMemberNames returns the set of full names whose roster status is
// active. Only this population appears on leaderboards.
func ActiveMemberNames(members []models.Member) map[string]struct{} {
	names := make(map[string]struct{})
	for _, m := range members {
		if m.Status == "active" {
			names[m.FullName] = struct{}{}
		}
	}
	return names
}

// GenderByName maps active members' full names to gender for partitioning.
func GenderByName(members []models.Member) map[string]string {
	genders := make(map[string]string)
	for _, m := range members {
		if m.Status == "active" {
			genders[m.FullName] = m.Gender
		}
	}
	return genders
}

// BestPerPerson filters records to one course (case-insensitive class match)
// and keeps each person's fastest row, sorted ascending by duration. Ties
// keep the first-seen row.
func BestPerPerson(records []models.RaceRecord, courseFilter string) []models.RaceRecord {
	best := make(map[string]models.RaceRecord)
	var order []string

	for _, r := range records {
		if !strings.EqualFold(strings.TrimSpace(r.Class), courseFilter) {
			continue
		}
		existing, ok := best[r.FullName]
		if !ok {
			best[r.FullName] = r
			order = append(order, r.FullName)
			continue
		}
		if ParseTimeToSeconds(r.Record) < ParseTimeToSeconds(existing.Record) {
			best[r.FullName] = r
		}
	}

	out := make([]models.RaceRecord, 0, len(order))
	for _, name := range order {
		out = append(out, best[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return ParseTimeToSeconds(out[i].Record) < ParseTimeToSeconds(out[j].Record)
	})
	return out
}

// CourseBoard is one course section of a leaderboard, split by gender.
type CourseBoard struct {
	Course string              `json:"course"`
	Male   []models.RaceRecord `json:"male"`
	Female []models.RaceRecord `json:"female"`
}

// MarathonCourses is the fixed display order for road-running boards.
var MarathonCourses = []string{"Full", "Half", "10K", "32K"}

// TriathlonCourses is the fixed display order for triathlon boards.
var TriathlonCourses = []string{"King", "Half", "Olympic"}

// triathlonWindowMonths keeps triathlon boards to results from the last five
// years.
const triathlonWindowMonths = 60

// MarathonBoards builds gender-partitioned best-per-person boards over the
// legacy record rows, one per known course. Courses where both partitions
// are empty are omitted.
func MarathonBoards(records []models.RaceRecord, members []models.Member) []CourseBoard {
	activeNames := ActiveMemberNames(members)

	var marathon []models.RaceRecord
	for _, r := range records {
		if r.RecordType != "marathon" {
			continue
		}
		if _, ok := activeNames[r.FullName]; !ok {
			continue
		}
		marathon = append(marathon, r)
	}
	return buildBoards(marathon, members, MarathonCourses)
}

// TriathlonBoards builds King/Half/Olympic boards over triathlon rows within
// the recency window.
func TriathlonBoards(records []models.RaceRecord, members []models.Member) []CourseBoard {
	activeNames := ActiveMemberNames(members)

	var tri []models.RaceRecord
	for _, r := range records {
		if r.RecordType != "triathlon" {
			continue
		}
		if !IsWithinMonths(r.CompetitionDate, triathlonWindowMonths) {
			continue
		}
		if _, ok := activeNames[r.FullName]; !ok {
			continue
		}
		tri = append(tri, r)
	}
	return buildBoards(tri, members, TriathlonCourses)
}

func buildBoards(records []models.RaceRecord, members []models.Member, courses []string) []CourseBoard {
	genders := GenderByName(members)

	var boards []CourseBoard
	for _, course := range courses {
		ranked := BestPerPerson(records, course)
		board := CourseBoard{Course: course, Male: []models.RaceRecord{}, Female: []models.RaceRecord{}}
		for _, r := range ranked {
			switch genders[r.FullName] {
			case "male":
				board.Male = append(board.Male, r)
			case "female":
				board.Female = append(board.Female, r)
			}
		}
		if len(board.Male) == 0 && len(board.Female) == 0 {
			continue
		}
		boards = append(boards, board)
	}
	return boards
}

// PBBoard is one course section of a personal-best leaderboard (newer
// schema, precomputed best times).
type PBBoard struct {
	PBKey  string                `json:"pb_key"`
	Male   []models.PersonalBest `json:"male"`
	Female []models.PersonalBest `json:"female"`
}

// marathonPBKeys is the fixed course order of the personal_best table.
var marathonPBKeys = []string{"full", "half", "10k", "32k"}

// MarathonPBBoards builds marathon boards from the externally maintained
// personal_best table. The precomputed times are authoritative; no
// re-derivation happens here.
func MarathonPBBoards(pbs []models.PersonalBest, members []models.Member) []PBBoard {
	activeNames := ActiveMemberNames(members)
	genders := GenderByName(members)

	filtered := make([]models.PersonalBest, 0, len(pbs))
	for _, pb := range pbs {
		if _, ok := activeNames[pb.FullName]; ok {
			filtered = append(filtered, pb)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].BestTimeSec < filtered[j].BestTimeSec
	})

	var boards []PBBoard
	for _, key := range marathonPBKeys {
		board := PBBoard{PBKey: key, Male: []models.PersonalBest{}, Female: []models.PersonalBest{}}
		for _, pb := range filtered {
			if pb.PBKey != key {
				continue
			}
			switch genders[pb.FullName] {
			case "male":
				board.Male = append(board.Male, pb)
			case "female":
				board.Female = append(board.Female, pb)
			}
		}
		if len(board.Male) == 0 && len(board.Female) == 0 {
			continue
		}
		boards = append(boards, board)
	}
	return boards
}

// TrailBoard sorts active members' trail records descending by UTMB index,
// the legacy schema's ranking key.
func TrailBoard(records []models.RaceRecord, members []models.Member) []models.RaceRecord {
	activeNames := ActiveMemberNames(members)

	var trail []models.RaceRecord
	for _, r := range records {
		if r.RecordType != "trail" {
			continue
		}
		if _, ok := activeNames[r.FullName]; !ok {
			continue
		}
		trail = append(trail, r)
	}
	sort.SliceStable(trail, func(i, j int) bool {
		return utmbIndexValue(trail[i]) > utmbIndexValue(trail[j])
	})
	return trail
}

// TrailBoardByElevation is the activity-log schema variant: descending
// cumulative elevation gain instead of UTMB index.
func TrailBoardByElevation(logs []models.ActivityLog, members []models.Member) []models.ActivityLog {
	activeNames := ActiveMemberNames(members)

	var trail []models.ActivityLog
	for _, l := range logs {
		if l.ActivityType != "trail_running" {
			continue
		}
		if _, ok := activeNames[l.FullName]; !ok {
			continue
		}
		trail = append(trail, l)
	}
	sort.SliceStable(trail, func(i, j int) bool {
		return trail[i].ElevationGainM > trail[j].ElevationGainM
	})
	return trail
}

func utmbIndexValue(r models.RaceRecord) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.UtmbIndex), 64)
	if err != nil {
		return 0
	}
	return v
}
