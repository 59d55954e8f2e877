package models

// Member is one row of the 가입신청서 sheet.
// (full_name, normalized birth date) identifies a member for self-service
// verification; identical pairs are indistinguishable.
type Member struct {
	MemberID      string `json:"member_id"`
	FullName      string `json:"full_name"`
	Gender        string `json:"gender"` // "male" | "female"
	BirthDate     string `json:"birth_date"`
	Phone         string `json:"phone,omitempty"`
	Status        string `json:"status"` // "active" | "inactive" | "banned"
	JoinDate      string `json:"join_date,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	Admin         bool   `json:"admin,omitempty"`
	Note          string `json:"note,omitempty"`
}

// Competition is one course offering of the 대회현황 sheet. Rows sharing
// (date, name) are courses of a single Race.
type Competition struct {
	CompetitionID string  `json:"competition_id"`
	Type          string  `json:"type"` // road_run | trail_run | triathlon | cycling
	Name          string  `json:"name"`
	Class         string  `json:"class"` // "Full" | "Half" | "10K" | "King" | ...
	DistanceKm    float64 `json:"distance_km"`
	PBKey         string  `json:"pb_key"`
	Date          string  `json:"date"`
}

// CompApplication is a signup row of the 대회참여현황 sheet. Resubmission is
// the edit mechanism: the last row per full name is authoritative.
type CompApplication struct {
	MemberID        string `json:"member_id"`
	FullName        string `json:"full_name"`
	CompetitionID   string `json:"competition_id"`
	CompetitionName string `json:"competition_name"`
	Class           string `json:"class"`
	Status          string `json:"status"` // "applied" | "cheering"
	Pledge          string `json:"pledge,omitempty"`
}

// RaceRecord is one row of the legacy 대회기록 sheet (15 columns including
// triathlon splits and the trail-only UTMB fields).
type RaceRecord struct {
	RecordID        string `json:"record_id"`
	RecordType      string `json:"record_type"` // marathon | trail | triathlon
	FullName        string `json:"full_name"`
	CompetitionID   string `json:"competition_id,omitempty"`
	CompetitionName string `json:"competition_name"`
	Class           string `json:"class"`
	Record          string `json:"record"` // "H:MM:SS"
	CompetitionDate string `json:"competition_date"`
	SwimTime        string `json:"swim_time,omitempty"`
	BikeTime        string `json:"bike_time,omitempty"`
	RunTime         string `json:"run_time,omitempty"`
	UtmbSlug        string `json:"utmb_slug,omitempty"`
	UtmbIndex       string `json:"utmb_index,omitempty"`
}

// ActivityLog is one row of the newer activity_log table (REST schema).
type ActivityLog struct {
	ID              string  `json:"id"`
	MemberID        string  `json:"member_id"`
	FullName        string  `json:"full_name"`
	ActivityDate    string  `json:"activity_date"`
	ActivityType    string  `json:"activity_type"` // running | trail_running | ...
	DistanceKm      float64 `json:"distance_km"`
	DurationSec     int     `json:"duration_sec"`
	DurationHHMMSS  string  `json:"duration_hhmmss"`
	CompetitionID   string  `json:"competition_id,omitempty"`
	CompetitionName string  `json:"competition_name,omitempty"`
	Class           string  `json:"competition_class,omitempty"`
	ElevationGainM  float64 `json:"elevation_gain_m,omitempty"`
}

// PersonalBest is one row of the externally maintained personal_best table.
// Authoritative when present; the engine only recomputes bests when falling
// back to raw records.
type PersonalBest struct {
	ID              string `json:"id"`
	MemberID        string `json:"member_id"`
	FullName        string `json:"full_name"`
	PBKey           string `json:"pb_key"`
	BestTimeSec     int    `json:"best_time_sec"`
	BestTimeHHMMSS  string `json:"best_time_hhmmss"`
	BestDate        string `json:"best_date"`
	SourceRefID     string `json:"source_ref_id,omitempty"`
	CompetitionName string `json:"competition_name,omitempty"`
}

// FeeRecord is one signed ledger entry of the 회비장부 sheet.
type FeeRecord struct {
	MemberID string `json:"member_id"`
	FullName string `json:"full_name"`
	Date     string `json:"date"`
	Amount   int    `json:"amount"`
	Type     string `json:"type,omitempty"`
	Note     string `json:"note,omitempty"`
}

// RaceCourse is one class offered within a Race.
type RaceCourse struct {
	CompetitionID string `json:"competition_id"`
	Class         string `json:"class"`
}

// Race is the derived aggregate grouping Competition rows by date+name.
// Not persisted; rebuilt per request.
type Race struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Courses      []RaceCourse      `json:"courses"`
	Participants []CompApplication `json:"participants"`
	Records      []RaceRecord      `json:"records"`
	IsPast       bool              `json:"is_past"`
}

// MemberTitle is one output row of the title batch (member_title sheet).
type MemberTitle struct {
	TitleID    string `json:"member_title_id"`
	MemberID   string `json:"member_id"`
	FullName   string `json:"full_name"`
	Group      string `json:"title_group"` // marathon | trail_run | triathlon | crew_role
	Name       string `json:"title_name"`
	SourceRef  string `json:"source_ref_id"`
	AssignedAt string `json:"assigned_at"`
}

// MemberUtmb links a member to their UTMB profile slug.
type MemberUtmb struct {
	MemberID string `json:"member_id"`
	UtmbKey  string `json:"utmb_key"`
}
