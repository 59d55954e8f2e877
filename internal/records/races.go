package records

import (
	"sort"

	"github.com/Gigang-ST/gigang-website/internal/models"
)

// recentWindowDays bounds the "최근 대회" section.
const recentWindowDays = 60

// BuildRaces groups competition rows sharing (date, name) into Race
// aggregates and attaches applications and records. An application belongs
// to a race when its competition id is one of the race's course ids, or,
// for legacy rows without an id, when its competition name matches exactly.
func BuildRaces(comps []models.Competition, apps []models.CompApplication, recs []models.RaceRecord) []models.Race {
	today := todayMidnight()

	type group struct {
		comps []models.Competition
		date  string
		name  string
		rtype string
	}
	groupsByKey := make(map[string]*group)
	var keys []string

	for _, c := range comps {
		key := c.Date + "_" + c.Name
		g, ok := groupsByKey[key]
		if !ok {
			g = &group{date: c.Date, name: c.Name, rtype: c.Type}
			groupsByKey[key] = g
			keys = append(keys, key)
		}
		g.comps = append(g.comps, c)
	}

	races := make([]models.Race, 0, len(keys))
	for _, key := range keys {
		g := groupsByKey[key]

		courses := make([]models.RaceCourse, 0, len(g.comps))
		courseIDs := make(map[string]struct{}, len(g.comps))
		for _, c := range g.comps {
			courses = append(courses, models.RaceCourse{CompetitionID: c.CompetitionID, Class: c.Class})
			courseIDs[c.CompetitionID] = struct{}{}
		}

		participants := []models.CompApplication{}
		for _, a := range apps {
			if _, ok := courseIDs[a.CompetitionID]; ok {
				participants = append(participants, a)
				continue
			}
			if a.CompetitionID == "" && a.CompetitionName == g.name {
				participants = append(participants, a)
			}
		}

		raceRecords := []models.RaceRecord{}
		for _, r := range recs {
			if r.CompetitionName == g.name {
				raceRecords = append(raceRecords, r)
			}
		}

		races = append(races, models.Race{
			ID:           key,
			Date:         g.date,
			Name:         g.name,
			Type:         g.rtype,
			Courses:      courses,
			Participants: participants,
			Records:      raceRecords,
			IsPast:       ParseFlexibleDate(g.date).Before(today),
		})
	}
	return races
}

// DeduplicateParticipants keeps only the last application per full name.
// Row order is submission order, so resubmitting is how members change
// their course selection.
func DeduplicateParticipants(apps []models.CompApplication) []models.CompApplication {
	latest := make(map[string]models.CompApplication)
	var order []string
	for _, a := range apps {
		if _, seen := latest[a.FullName]; !seen {
			order = append(order, a.FullName)
		}
		latest[a.FullName] = a
	}
	out := make([]models.CompApplication, 0, len(order))
	for _, name := range order {
		out = append(out, latest[name])
	}
	return out
}

// SplitRaces partitions races into upcoming (ascending by date) and recent
// past (descending, within the 60-day window).
func SplitRaces(races []models.Race) (upcoming, recent []models.Race) {
	today := todayMidnight()
	windowStart := today.AddDate(0, 0, -recentWindowDays)

	for _, r := range races {
		if !r.IsPast {
			upcoming = append(upcoming, r)
		} else if !ParseFlexibleDate(r.Date).Before(windowStart) {
			recent = append(recent, r)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return ParseFlexibleDate(upcoming[i].Date).Before(ParseFlexibleDate(upcoming[j].Date))
	})
	sort.SliceStable(recent, func(i, j int) bool {
		return ParseFlexibleDate(recent[j].Date).Before(ParseFlexibleDate(recent[i].Date))
	})
	return upcoming, recent
}
