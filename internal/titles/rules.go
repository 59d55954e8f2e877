// Package titles assigns the club's badge hierarchy: for each member, the
// single highest-priority satisfied criterion per sport group, plus the
// hardcoded crew roles.
package titles

import (
	"strconv"
	"strings"

	"github.com/Gigang-ST/gigang-website/internal/records"
)

// Title groups, in fixed evaluation order.
const (
	GroupMarathon  = "marathon"
	GroupTrailRun  = "trail_run"
	GroupTriathlon = "triathlon"
	GroupCrewRole  = "crew_role"
)

var groupOrder = []string{GroupMarathon, GroupTrailRun, GroupTriathlon}

// memberInput is everything a criterion may look at for one member.
type memberInput struct {
	pbs            map[string]int // course key -> best seconds
	trailLevel     int
	triLevel       int
	standardFullPB int // the standard-setter's full PB at evaluation start
}

// criterion is one eligibility test. Implementations return whether the
// member qualifies and a human-readable justification.
type criterion interface {
	evaluate(in memberInput) (bool, string)
}

// manualCriterion is the baseline tier everyone holds.
type manualCriterion struct{}

func (manualCriterion) evaluate(memberInput) (bool, string) {
	return true, "Basic"
}

// recordCriterion requires a best time at or under a fixed threshold for a
// named course key.
type recordCriterion struct {
	key   string
	limit int // seconds
}

func (c recordCriterion) evaluate(in memberInput) (bool, string) {
	pb, ok := in.pbs[c.key]
	if !ok || pb > c.limit {
		return false, ""
	}
	return true, strings.ToUpper(c.key) + " PB: " + records.FormatSecondsToTime(pb)
}

// dynamicCriterion requires beating the standard-setter's full-marathon PB.
// When the standard-setter has no recorded time the threshold stays at its
// unreachable default.
type dynamicCriterion struct{}

func (dynamicCriterion) evaluate(in memberInput) (bool, string) {
	pb, ok := in.pbs["full"]
	if !ok || pb >= in.standardFullPB {
		return false, ""
	}
	return true, "Beat Standard (" + records.FormatSecondsToTime(in.standardFullPB) + ")"
}

// trailCriterion requires a derived trail completion level.
type trailCriterion struct {
	level int
}

func (c trailCriterion) evaluate(in memberInput) (bool, string) {
	if in.trailLevel < c.level {
		return false, ""
	}
	return true, "Trail Level " + strconv.Itoa(c.level) + " Completed"
}

// triCriterion requires a derived triathlon completion level.
type triCriterion struct {
	level int
}

func (c triCriterion) evaluate(in memberInput) (bool, string) {
	if in.triLevel < c.level {
		return false, ""
	}
	return true, "Triathlon Level " + strconv.Itoa(c.level) + " Completed"
}

type titleDef struct {
	group    string
	name     string
	priority int
	crit     criterion
}

// titleDefs is the ordered rule table. Priorities are compared within a
// group only; the numbers themselves are part of club lore and stay as-is.
var titleDefs = []titleDef{
	// marathon
	{GroupMarathon, "런린이", 1, manualCriterion{}},
	{GroupMarathon, "입문", 2, recordCriterion{key: "5k", limit: 1800}},
	{GroupMarathon, "초보", 3, recordCriterion{key: "10k", limit: 3600}},
	{GroupMarathon, "중수", 4, recordCriterion{key: "half", limit: 7200}},
	{GroupMarathon, "고수", 5, recordCriterion{key: "full", limit: 18000}},
	{GroupMarathon, "고인물", 6, recordCriterion{key: "full", limit: 14400}},
	{GroupMarathon, "신세계", 7, recordCriterion{key: "full", limit: 12600}},
	{GroupMarathon, "서브현근", 80, dynamicCriterion{}},
	{GroupMarathon, "천상천하유아독존", 81, recordCriterion{key: "full", limit: 11400}},
	{GroupMarathon, "최고존엄", 82, recordCriterion{key: "full", limit: 10800}},
	// trail_run
	{GroupTrailRun, "트린이", 11, trailCriterion{level: 1}},
	{GroupTrailRun, "T20K", 12, trailCriterion{level: 2}},
	{GroupTrailRun, "T50K", 13, trailCriterion{level: 3}},
	{GroupTrailRun, "T100K", 14, trailCriterion{level: 4}},
	{GroupTrailRun, "T100M", 15, trailCriterion{level: 5}},
	// triathlon
	{GroupTriathlon, "제로철인", 21, triCriterion{level: 1}},
	{GroupTriathlon, "쿼터철인", 22, triCriterion{level: 2}},
	{GroupTriathlon, "하프철인", 23, triCriterion{level: 3}},
	{GroupTriathlon, "킹철인", 24, triCriterion{level: 4}},
}

// standardSetterName is the member whose full-marathon PB defines the
// dynamic "서브현근" threshold.
const standardSetterName = "이현근"

// unreachablePB stands in when the standard-setter has no recorded time.
const unreachablePB = 999999

type crewRole struct {
	name     string
	priority int
}

// crewRoles are per-individual overrides, kept apart from the generic rule
// engine on purpose: a member may hold several at once and they bypass the
// one-per-group cap.
var crewRoles = map[string][]crewRole{
	"mem_001": {{name: "단장", priority: 100}},
	"mem_002": {{name: "훈련부장", priority: 90}},
	"mem_033": {{name: "산악구보부장", priority: 90}},
	"mem_013": {{name: "포토", priority: 50}},
	"mem_068": {{name: "포토", priority: 50}},
}
