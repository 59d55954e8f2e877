package titles

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Gigang-ST/gigang-website/internal/models"
	"github.com/Gigang-ST/gigang-website/internal/records"
)

// PBEntry is one personal-best input row. The batch only consumes marathon
// rows; everything else is skipped during map construction.
type PBEntry struct {
	MemberID   string
	RecordType string
	Class      string
	Record     string // "H:MM:SS"
}

// BuildPBMap folds personal-best rows into memberID -> course key -> best
// seconds. Unparseable times and unrecognized course classes are dropped.
func BuildPBMap(entries []PBEntry) map[string]map[string]int {
	pbMap := make(map[string]map[string]int)
	for _, e := range entries {
		if e.RecordType != "marathon" {
			continue
		}
		seconds := records.ParseTimeToSeconds(e.Record)
		if seconds <= 0 || seconds >= records.InfiniteSeconds {
			continue
		}
		key := normalizeClass(e.Class)
		if key == "" {
			continue
		}
		if pbMap[e.MemberID] == nil {
			pbMap[e.MemberID] = make(map[string]int)
		}
		if best, ok := pbMap[e.MemberID][key]; !ok || seconds < best {
			pbMap[e.MemberID][key] = seconds
		}
	}
	return pbMap
}

// NameToID maps roster names to member ids. Later duplicates of a name win,
// same as the sheet-order behavior the batch has always had.
func NameToID(members []models.Member) map[string]string {
	m := make(map[string]string, len(members))
	for _, mem := range members {
		m[mem.FullName] = mem.MemberID
	}
	return m
}

// BuildTrailLevels derives memberID -> highest completed trail level from
// the raw race-record sheet. Records are attached by name, so anyone not in
// the roster map is ignored.
func BuildTrailLevels(recs []models.RaceRecord, nameToID map[string]string) map[string]int {
	trailMap := make(map[string]int)
	for _, r := range recs {
		if strings.TrimSpace(r.RecordType) != "trail" {
			continue
		}
		memID, ok := nameToID[strings.TrimSpace(r.FullName)]
		if !ok {
			continue
		}
		level := TrailLevel(r.CompetitionName, r.Class)
		if level == 0 {
			continue
		}
		if level > trailMap[memID] {
			trailMap[memID] = level
		}
	}
	return trailMap
}

// BuildTriathlonLevels derives memberID -> highest completed triathlon level.
func BuildTriathlonLevels(recs []models.RaceRecord, nameToID map[string]string) map[string]int {
	triMap := make(map[string]int)
	for _, r := range recs {
		if strings.TrimSpace(r.RecordType) != "triathlon" {
			continue
		}
		memID, ok := nameToID[strings.TrimSpace(r.FullName)]
		if !ok {
			continue
		}
		level := TriathlonLevel(r.Class)
		if level == 0 {
			continue
		}
		if level > triMap[memID] {
			triMap[memID] = level
		}
	}
	return triMap
}

var (
	trail100MileRe = regexp.MustCompile(`100\s*m(ile)?`)
	trail100KRe    = regexp.MustCompile(`100\s*k`)
	trail50KRe     = regexp.MustCompile(`50\s*k`)
	trail30KRe     = regexp.MustCompile(`30\s*k`)
	trail20KRe     = regexp.MustCompile(`20\s*k`)
)

// TrailLevel scores a trail finish from the competition name and class text.
// Any finish at all counts for at least level 1.
func TrailLevel(compName, class string) int {
	text := strings.ToLower(compName + " " + class)
	switch {
	case trail100MileRe.MatchString(text):
		return 5
	case trail100KRe.MatchString(text):
		return 4
	case trail50KRe.MatchString(text):
		return 3
	case trail30KRe.MatchString(text), trail20KRe.MatchString(text), strings.Contains(text, "half"):
		return 2
	}
	return 1
}

// TriathlonLevel scores a triathlon finish from its class text. Unlike trail,
// an unrecognized class earns nothing.
func TriathlonLevel(class string) int {
	c := strings.ToLower(class)
	switch {
	case strings.Contains(c, "king"), strings.Contains(c, "ironman"), strings.Contains(c, "iron man"):
		return 4
	case strings.Contains(c, "half"), strings.Contains(c, "middle"):
		return 3
	case strings.Contains(c, "olympic"), strings.Contains(c, "oly"):
		return 2
	}
	return 0
}

func normalizeClass(class string) string {
	switch strings.ToLower(strings.TrimSpace(class)) {
	case "full":
		return "full"
	case "half":
		return "half"
	case "10k":
		return "10k"
	case "5k":
		return "5k"
	}
	return ""
}

// Calculate runs the rule table over the roster and returns the full
// member_title result set. Output is deterministic for a given input: members
// are visited in roster order, groups in fixed order, and ids are assigned
// sequentially as mt_0001, mt_0002, ...
//
// assignedAt is stamped on every row so one run shares one timestamp.
func Calculate(members []models.Member, pbMap map[string]map[string]int, trailMap, triMap map[string]int, assignedAt string) []models.MemberTitle {
	standardFullPB := unreachablePB
	for _, m := range members {
		if m.FullName == standardSetterName {
			if pb, ok := pbMap[m.MemberID]["full"]; ok {
				standardFullPB = pb
			}
			break
		}
	}

	var out []models.MemberTitle
	counter := 1

	nextID := func() string {
		id := fmt.Sprintf("mt_%04d", counter)
		counter++
		return id
	}

	for _, mem := range members {
		in := memberInput{
			pbs:            pbMap[mem.MemberID],
			trailLevel:     trailMap[mem.MemberID],
			triLevel:       triMap[mem.MemberID],
			standardFullPB: standardFullPB,
		}

		type candidate struct {
			def titleDef
			ref string
		}
		byGroup := make(map[string]candidate)

		for _, def := range titleDefs {
			eligible, ref := def.crit.evaluate(in)
			if !eligible {
				continue
			}
			if cur, ok := byGroup[def.group]; !ok || def.priority > cur.def.priority {
				byGroup[def.group] = candidate{def: def, ref: ref}
			}
		}

		for _, group := range groupOrder {
			winner, ok := byGroup[group]
			if !ok {
				continue
			}
			out = append(out, models.MemberTitle{
				TitleID:    nextID(),
				MemberID:   mem.MemberID,
				FullName:   mem.FullName,
				Group:      winner.def.group,
				Name:       winner.def.name,
				SourceRef:  winner.ref,
				AssignedAt: assignedAt,
			})
		}

		for _, role := range crewRoles[mem.MemberID] {
			out = append(out, models.MemberTitle{
				TitleID:    nextID(),
				MemberID:   mem.MemberID,
				FullName:   mem.FullName,
				Group:      GroupCrewRole,
				Name:       role.name,
				SourceRef:  "Hardcoded Role",
				AssignedAt: assignedAt,
			})
		}
	}
	return out
}
