package product

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	bulletSplitRe  = regexp.MustCompile(`•\s|\.\s+|\]\s+|\d+\.\s|\[•\]\s`)
	pureNumberRe   = regexp.MustCompile(`^\d+$`)
	bulletMarkerRe = regexp.MustCompile(`^[•\-]\s*$`)
)

// SplitBullets breaks free text on bullet, numbering and sentence
// boundaries, dropping fragments that carry no content (pure numbers, bare
// bullet markers, one-rune scraps).
func SplitBullets(text string) []string {
	var out []string
	for _, part := range bulletSplitRe.Split(text, -1) {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) <= 1 {
			continue
		}
		if pureNumberRe.MatchString(part) || bulletMarkerRe.MatchString(part) {
			continue
		}
		out = append(out, part)
	}
	return out
}
