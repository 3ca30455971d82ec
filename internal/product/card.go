package product

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PlaceholderImage marks a product with no usable image field. It is a
// sentinel for the renderer, not a real asset served by this process.
const PlaceholderImage = "/placeholder.svg"

const maxChips = 3

// Card is the fully-derived display shape of one recommendation. All
// fallback logic runs here, once, so nothing downstream has to inspect the
// raw payload again.
type Card struct {
	ASIN        string   `json:"asin"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image"`

	MatchPercent     int    `json:"match_percent"`
	RatingLabel      string `json:"rating_label"`
	ReviewCountLabel string `json:"review_count_label,omitempty"`

	Chips      []string  `json:"chips,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	KeySpecs   []KeySpec `json:"key_specs,omitempty"`
}

func BuildCard(rec Recommendation) Card {
	title := strings.TrimSpace(rec.Title)
	if title == "" {
		title = "Untitled Product"
	}

	return Card{
		ASIN:        rec.ASIN,
		Title:       title,
		Description: strings.TrimSpace(rec.Description),
		Image:       resolveImage(rec),

		MatchPercent:     matchPercent(rec),
		RatingLabel:      ratingLabel(rec),
		ReviewCountLabel: reviewCountLabel(rec.RatingCount),

		Chips:      chips(rec),
		Categories: rec.Categories,
		KeySpecs:   ExtractKeySpecs(rec.Analysis, rec.Description),
	}
}

// BuildCards maps a result list; order is preserved.
func BuildCards(recs []Recommendation) []Card {
	out := make([]Card, 0, len(recs))
	for _, r := range recs {
		out = append(out, BuildCard(r))
	}
	return out
}

// resolveImage picks the first non-empty candidate. Precedence is fixed:
// product_image_url, image_url, image, thumbnail_url.
func resolveImage(rec Recommendation) string {
	for _, candidate := range []string{rec.ProductImageURL, rec.ImageURL, rec.Image, rec.ThumbnailURL} {
		if s := strings.TrimSpace(candidate); s != "" {
			return s
		}
	}
	return PlaceholderImage
}

// matchPercent normalizes combined_score (preferred) or similarity to an
// integer percentage. Raw values at or below 1 are fractions.
func matchPercent(rec Recommendation) int {
	var raw float64
	switch {
	case rec.CombinedScore != nil:
		raw = *rec.CombinedScore
	case rec.Similarity != nil:
		raw = *rec.Similarity
	default:
		return 0
	}

	if raw <= 1 {
		raw *= 100
	}
	pct := int(math.Round(raw))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func ratingLabel(rec Recommendation) string {
	if s := strings.TrimSpace(string(rec.DisplayedRating)); s != "" {
		return s
	}
	if rec.AvgRating != nil {
		return strconv.FormatFloat(*rec.AvgRating, 'f', 1, 64)
	}
	return "Not rated"
}

func reviewCountLabel(count *int) string {
	if count == nil || *count <= 0 {
		return ""
	}
	n := *count
	if n == 1 {
		return "1 review"
	}
	if n < 1000 {
		return fmt.Sprintf("%d reviews", n)
	}
	return fmt.Sprintf("%.1fk reviews", float64(n)/1000)
}

// chips picks up to three short badges: selling points first, then category
// tokens, then bullet fragments of the raw description.
func chips(rec Recommendation) []string {
	var out []string

	if rec.Analysis != nil {
		for _, sp := range rec.Analysis.MainSellingPoints {
			title := strings.TrimSpace(sp.Title)
			desc := strings.TrimSpace(sp.Description)

			var chip string
			switch {
			case title != "" && desc != "":
				chip = title + ": " + desc
			case title != "":
				chip = title
			case desc != "":
				chip = desc
			default:
				continue
			}
			out = append(out, chip)
			if len(out) == maxChips {
				return out
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, cat := range rec.Categories {
		out = append(out, cat)
		if len(out) == maxChips {
			return out
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, frag := range SplitBullets(rec.Description) {
		out = append(out, frag)
		if len(out) == maxChips {
			break
		}
	}
	return out
}
