package sheets

import (
	"strings"

	"github.com/Gigang-ST/gigang-website/internal/models"
)

// Physical sheet names inside the club spreadsheet.
const (
	SheetMembers      = "가입신청서"
	SheetRecords      = "대회기록"
	SheetPersonalBest = "personal_best"
	SheetMemberTitle  = "member_title"
)

// ActiveMembers loads roster rows whose status is active. The batch jobs
// operate on the active population only.
func (c *APIClient) ActiveMembers() ([]models.Member, error) {
	values, err := c.readAll(SheetMembers)
	if err != nil {
		return nil, err
	}
	var members []models.Member
	for i := 1; i < len(values); i++ {
		row := values[i]
		if strings.ToLower(strings.TrimSpace(apiCell(row, 5))) != "active" {
			continue
		}
		members = append(members, models.Member{
			MemberID: strings.TrimSpace(apiCell(row, 0)),
			FullName: strings.TrimSpace(apiCell(row, 1)),
			Gender:   strings.TrimSpace(apiCell(row, 2)),
		})
	}
	return members, nil
}

// PBRow is the slice of a personal_best sheet row the title batch needs.
// Layout: member_id | member_name | gender | record_type | competition_name |
// competition_class | record | ...
type PBRow struct {
	MemberID   string
	RecordType string
	Class      string
	Record     string
}

// PersonalBestRows loads the precomputed personal_best sheet.
func (c *APIClient) PersonalBestRows() ([]PBRow, error) {
	values, err := c.readAll(SheetPersonalBest)
	if err != nil {
		return nil, err
	}
	var pbs []PBRow
	for i := 1; i < len(values); i++ {
		row := values[i]
		pbs = append(pbs, PBRow{
			MemberID:   strings.TrimSpace(apiCell(row, 0)),
			RecordType: strings.TrimSpace(apiCell(row, 3)),
			Class:      strings.ToLower(strings.TrimSpace(apiCell(row, 5))),
			Record:     strings.TrimSpace(apiCell(row, 6)),
		})
	}
	return pbs, nil
}

// RaceRecords loads the legacy 대회기록 sheet.
func (c *APIClient) RaceRecords() ([]models.RaceRecord, error) {
	values, err := c.readAll(SheetRecords)
	if err != nil {
		return nil, err
	}
	var records []models.RaceRecord
	for i := 1; i < len(values); i++ {
		row := values[i]
		records = append(records, models.RaceRecord{
			RecordID:        strings.TrimSpace(apiCell(row, 0)),
			RecordType:      strings.TrimSpace(apiCell(row, 1)),
			FullName:        strings.TrimSpace(apiCell(row, 2)),
			CompetitionID:   strings.TrimSpace(apiCell(row, 3)),
			CompetitionName: strings.TrimSpace(apiCell(row, 4)),
			Class:           strings.TrimSpace(apiCell(row, 5)),
			Record:          strings.TrimSpace(apiCell(row, 6)),
			CompetitionDate: strings.TrimSpace(apiCell(row, 7)),
			SwimTime:        strings.TrimSpace(apiCell(row, 8)),
			BikeTime:        strings.TrimSpace(apiCell(row, 9)),
			RunTime:         strings.TrimSpace(apiCell(row, 10)),
			UtmbSlug:        strings.TrimSpace(apiCell(row, 11)),
			UtmbIndex:       strings.TrimSpace(apiCell(row, 12)),
		})
	}
	return records, nil
}

var memberTitleHeaders = []interface{}{
	"member_title_id",
	"member_id",
	"full_name",
	"title_group",
	"title_name",
	"source_ref_id",
	"assigned_at",
}

// ReplaceMemberTitles overwrites the member_title sheet with a freshly
// computed result set. The destination is a full replacement, never an
// incremental update.
func (c *APIClient) ReplaceMemberTitles(titles []models.MemberTitle) error {
	rows := make([][]interface{}, 0, len(titles)+1)
	rows = append(rows, memberTitleHeaders)
	for _, t := range titles {
		rows = append(rows, []interface{}{
			t.TitleID, t.MemberID, t.FullName, t.Group, t.Name, t.SourceRef, t.AssignedAt,
		})
	}
	return c.replaceSheet(SheetMemberTitle, rows)
}
