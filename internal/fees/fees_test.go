package fees

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Gigang-ST/gigang-website/internal/models"
)

func kstDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.FixedZone("KST", 9*60*60))
}

func TestCalcExpectedFee(t *testing.T) {
	tests := []struct {
		name     string
		joinDate string
		ref      time.Time
		want     int
	}{
		// Join March 2024: March free, April and May billed, partial June not.
		{"two whole months", "2024-03-15", kstDate(2024, time.June, 1), 4000},
		{"join month is free", "2024-03-15", kstDate(2024, time.April, 30), 0},
		{"first billed month", "2024-03-15", kstDate(2024, time.May, 1), 2000},
		{"december rollover", "2023-12-05", kstDate(2024, time.March, 10), 4000},
		{"joined this month", "2024-06-01", kstDate(2024, time.June, 20), 0},
		{"reference before join", "2024-06-01", kstDate(2024, time.January, 1), 0},
		{"empty join date", "", kstDate(2024, time.June, 1), 0},
		{"garbage join date", "언젠가", kstDate(2024, time.June, 1), 0},
		{"dotted join date", "2024. 3. 15", kstDate(2024, time.June, 1), 4000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalcExpectedFee(tt.joinDate, tt.ref))
		})
	}
}

func TestCalcExpectedFeeUsesKST(t *testing.T) {
	// 2024-06-30 23:00 UTC is already 2024-07-01 08:00 in Seoul, so June has
	// completed and one more month is due.
	utcRef := time.Date(2024, time.June, 30, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 6000, CalcExpectedFee("2024-03-15", utcRef))
}

func TestCalcFeeStatus(t *testing.T) {
	member := models.Member{MemberID: "mem_001", FullName: "이현근", JoinDate: "2024-03-15"}
	ledger := []models.FeeRecord{
		{MemberID: "mem_001", Date: "2024-04-01", Amount: 2000},
		{MemberID: "mem_001", Date: "2024-05-01", Amount: 3000},
		{MemberID: "mem_002", Date: "2024-04-01", Amount: 2000}, // someone else
	}

	st := CalcFeeStatus(member, ledger, kstDate(2024, time.June, 1))
	assert.Equal(t, 4000, st.ExpectedFee)
	assert.Equal(t, 5000, st.TotalPaid)
	assert.Equal(t, 1000, st.Balance) // credit
	assert.Len(t, st.Records, 2)
}

func TestCalcFeeStatusOwedAndSettled(t *testing.T) {
	member := models.Member{MemberID: "mem_003", JoinDate: "2024-03-15"}

	st := CalcFeeStatus(member, nil, kstDate(2024, time.June, 1))
	assert.Equal(t, -4000, st.Balance)

	settled := CalcFeeStatus(member, []models.FeeRecord{
		{MemberID: "mem_003", Amount: 4000},
	}, kstDate(2024, time.June, 1))
	assert.Equal(t, 0, settled.Balance)
}
