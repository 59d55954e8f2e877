package members

import (
	"errors"
	"regexp"
	"strings"

	"github.com/Gigang-ST/gigang-website/internal/models"
)

// The self-service gate is deliberately low-security: name plus birth date
// against the roster, no password, no session.

var (
	// ErrNoMatch: no roster row matches the (name, birth date) pair.
	ErrNoMatch = errors.New("등록된 회원 정보와 일치하지 않습니다. 이름과 생년월일을 확인해주세요.")
	// ErrNotActive: the matched member has left or been banned.
	ErrNotActive = errors.New("탈퇴한 회원입니다. 문의사항은 운영진에게 연락해주세요.")
)

// Verify finds the first roster member whose trimmed name and normalized
// birth date equal the input. Two active members with identical pairs are
// indistinguishable here; that upstream data-quality gap is deliberately not
// papered over.
func Verify(roster []models.Member, name, birthDate string) (models.Member, error) {
	wantName := strings.TrimSpace(name)
	wantBirth := NormalizeBirthDate(birthDate)

	for _, m := range roster {
		if strings.TrimSpace(m.FullName) != wantName {
			continue
		}
		if NormalizeBirthDate(m.BirthDate) != wantBirth {
			continue
		}
		if m.Status != "active" {
			return models.Member{}, ErrNotActive
		}
		return m, nil
	}
	return models.Member{}, ErrNoMatch
}

var (
	controlCharRe = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
)

// SanitizeText strips control characters and HTML tags from user text and
// caps its length. Applied to every free-text field before it is appended to
// the sheet.
func SanitizeText(value string, maxLength int) string {
	cleaned := controlCharRe.ReplaceAllString(value, "")
	cleaned = htmlTagRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	runes := []rune(cleaned)
	if maxLength > 0 && len(runes) > maxLength {
		return string(runes[:maxLength])
	}
	return cleaned
}
