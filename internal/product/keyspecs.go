package product

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxKeySpecs     = 8
	maxFeatureWords = 6
	maxDetailRunes  = 200
)

var (
	commaColonRe    = regexp.MustCompile(`,\s*:`)
	multiSpaceRe    = regexp.MustCompile(`\s{2,}`)
	sentenceSplitRe = regexp.MustCompile(`[.?!]\s*`)
)

// ExtractKeySpecs prefers backend-provided key specs and falls back to
// heuristically mining the raw description. Both paths share the same
// dedup/truncation rules.
func ExtractKeySpecs(analysis *Analysis, description string) []KeySpec {
	if analysis != nil {
		if specs := sanitizeKeySpecs(analysis.KeySpecs); len(specs) > 0 {
			return specs
		}
	}
	return sanitizeKeySpecs(deriveKeySpecs(description))
}

// sanitizeKeySpecs dedups by lower-cased feature (capped at 6 words) and
// clips each detail to 200 runes, ellipsized.
func sanitizeKeySpecs(specs []KeySpec) []KeySpec {
	seen := make(map[string]struct{})
	var out []KeySpec

	for _, spec := range specs {
		feature := strings.TrimSpace(spec.Feature)
		detail := strings.TrimSpace(spec.Detail)
		if feature == "" || detail == "" {
			continue
		}

		feature = capWords(feature, maxFeatureWords)
		if feature == "" {
			continue
		}

		key := strings.ToLower(feature)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		out = append(out, KeySpec{Feature: feature, Detail: clipDetail(detail)})
		if len(out) >= maxKeySpecs {
			break
		}
	}
	return out
}

// deriveKeySpecs mines "label: value" pairs out of free-form description
// text, segmenting on newlines, bullets, semicolons and commas that start a
// capitalized fragment.
func deriveKeySpecs(description string) []KeySpec {
	normalized := strings.ReplaceAll(description, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return nil
	}

	normalized = strings.NewReplacer("[", "\n", "]", "\n").Replace(normalized)
	normalized = commaColonRe.ReplaceAllString(normalized, ":")
	normalized = multiSpaceRe.ReplaceAllString(normalized, " ")

	var out []KeySpec
	for _, fragment := range splitSpecSegments(normalized) {
		candidate := strings.TrimSpace(fragment)
		if candidate == "" {
			continue
		}

		if !strings.Contains(candidate, ":") && strings.Contains(candidate, " - ") {
			candidate = strings.Replace(candidate, " - ", ": ", 1)
		}
		if !strings.Contains(candidate, ":") {
			continue
		}

		parts := strings.SplitN(candidate, ":", 2)
		feature := strings.TrimLeft(parts[0], "•-– \t")
		feature = strings.TrimRight(feature, ".,; \t")
		if strings.Contains(feature, ".") {
			// Keep only the last sentence fragment as the label.
			sentences := sentenceSplitRe.Split(feature, -1)
			feature = strings.TrimSpace(sentences[len(sentences)-1])
		}
		detail := strings.TrimLeft(parts[1], "•-– \t")
		detail = strings.TrimSpace(detail)

		out = append(out, KeySpec{Feature: feature, Detail: detail})
	}
	return out
}

// splitSpecSegments breaks on newline, bullet, semicolon, and any comma that
// is not part of a number and precedes a capitalized word.
func splitSpecSegments(s string) []string {
	runes := []rune(s)
	var segs []string
	var cur []rune

	flush := func() {
		segs = append(segs, string(cur))
		cur = cur[:0]
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '\n', '•', ';':
			flush()
		case ',':
			prevIsDigit := i > 0 && unicode.IsDigit(runes[i-1])
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			startsUpper := j < len(runes) && unicode.IsUpper(runes[j])
			if !prevIsDigit && startsUpper {
				flush()
			} else {
				cur = append(cur, r)
			}
		default:
			cur = append(cur, r)
		}
	}
	segs = append(segs, string(cur))
	return segs
}

func capWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func clipDetail(detail string) string {
	runes := []rune(detail)
	if len(runes) <= maxDetailRunes {
		return detail
	}
	clipped := strings.TrimRight(string(runes[:maxDetailRunes-1]), " \t")
	return clipped + "…"
}
