// Package fees reconciles expected dues against the 회비장부 payment ledger.
package fees

import (
	"strings"
	"time"

	"github.com/Gigang-ST/gigang-website/internal/models"
	"github.com/Gigang-ST/gigang-website/internal/records"
)

// MonthlyFee is the club's flat monthly due in KRW.
const MonthlyFee = 2000

// kst is built from a fixed offset rather than the tz database so the result
// does not depend on the deployment host's zone configuration.
var kst = time.FixedZone("KST", 9*60*60)

// Status is the reconciled fee position of one member.
type Status struct {
	Member      models.Member      `json:"member"`
	ExpectedFee int                `json:"expected_fee"`
	TotalPaid   int                `json:"total_paid"`
	Balance     int                `json:"balance"` // >0 credit, <0 owed, 0 settled
	Records     []models.FeeRecord `json:"records"`
}

// CalcExpectedFee computes cumulative dues from a join date: the join month
// itself is free, every whole calendar month after it costs MonthlyFee.
// "Now" is taken in KST; referenceDate overrides it for tests and backdated
// statements. Months are whole units; there is no proration.
func CalcExpectedFee(joinDate string, referenceDate ...time.Time) int {
	joinDate = strings.TrimSpace(joinDate)
	if joinDate == "" {
		return 0
	}
	join := records.ParseFlexibleDate(joinDate)
	if join.IsZero() {
		return 0
	}

	ref := time.Now()
	if len(referenceDate) > 0 {
		ref = referenceDate[0]
	}
	ref = ref.In(kst)

	// Obligation starts on the first day of the month after joining.
	startYear, startMonth := join.Year(), int(join.Month())+1
	if startMonth > 12 {
		startYear++
		startMonth = 1
	}

	elapsed := (ref.Year()-startYear)*12 + int(ref.Month()) - startMonth
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed * MonthlyFee
}

// CalcFeeStatus nets a member's ledger entries against their expected dues.
func CalcFeeStatus(member models.Member, ledger []models.FeeRecord, referenceDate ...time.Time) Status {
	myRecords := []models.FeeRecord{}
	totalPaid := 0
	for _, r := range ledger {
		if r.MemberID != member.MemberID {
			continue
		}
		myRecords = append(myRecords, r)
		totalPaid += r.Amount
	}

	expected := CalcExpectedFee(member.JoinDate, referenceDate...)
	return Status{
		Member:      member,
		ExpectedFee: expected,
		TotalPaid:   totalPaid,
		Balance:     totalPaid - expected,
		Records:     myRecords,
	}
}
