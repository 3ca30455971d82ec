package product

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Recommendation mirrors the search engine's result shape. The backend does
// not own a stable schema, so every field beyond the ASIN is optional and
// several carry more than one JSON encoding.
type Recommendation struct {
	ASIN        string `json:"asin"`
	Title       string `json:"product_title,omitempty"`
	Description string `json:"cleaned_item_description,omitempty"`

	// Either a JSON array of strings or one comma-separated string,
	// possibly wrapped in brackets.
	Categories StringList `json:"product_categories,omitempty"`

	ProductImageURL string `json:"product_image_url,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	Image           string `json:"image,omitempty"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`

	Similarity    *float64 `json:"similarity,omitempty"`
	CombinedScore *float64 `json:"combined_score,omitempty"`

	AvgRating       *float64   `json:"avg_rating,omitempty"`
	RatingCount     *int       `json:"rating_count,omitempty"`
	DisplayedRating FlexString `json:"displayed_rating,omitempty"`

	Reviews  []Review  `json:"reviews,omitempty"`
	Analysis *Analysis `json:"analysis,omitempty"`
}

type Review struct {
	Content          string   `json:"content"`
	Rating           float64  `json:"rating"`
	Similarity       float64  `json:"similarity"`
	VerifiedPurchase bool     `json:"verified_purchase"`
	UserID           string   `json:"user_id"`
	Timestamp        string   `json:"timestamp"`
	HasRating        *float64 `json:"has_rating,omitempty"`
}

type ReviewHighlightItem struct {
	Summary     string `json:"summary,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	Quote       string `json:"quote,omitempty"`
}

type ReviewHighlights struct {
	OverallSentiment string                `json:"overall_sentiment,omitempty"`
	Positive         []ReviewHighlightItem `json:"positive,omitempty"`
	Negative         []ReviewHighlightItem `json:"negative,omitempty"`
}

type SellingPoint struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// KeySpec is one normalized feature/value pair of a product attribute.
type KeySpec struct {
	Feature string `json:"feature"`
	Detail  string `json:"detail"`
}

type Analysis struct {
	ASIN              string            `json:"asin,omitempty"`
	MainSellingPoints []SellingPoint    `json:"main_selling_points,omitempty"`
	BestFor           string            `json:"best_for,omitempty"`
	ReviewHighlights  *ReviewHighlights `json:"review_highlights,omitempty"`
	Confidence        *float64          `json:"confidence,omitempty"`
	Warnings          []string          `json:"warnings,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	KeySpecs          []KeySpec         `json:"key_specs,omitempty"`
}

// StringList accepts both `["a","b"]` and `"[a, b]"` category encodings.
type StringList []string

func (s *StringList) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = nil
		return nil
	}

	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*s = cleanTokens(arr)
		return nil
	}

	var single string
	if err := json.Unmarshal(b, &single); err != nil {
		return err
	}
	*s = ParseCategories(single)
	return nil
}

// ParseCategories splits one category string, tolerating a wrapping `[...]`.
func ParseCategories(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")
	if raw == "" {
		return nil
	}
	return cleanTokens(strings.Split(raw, ","))
}

func cleanTokens(in []string) []string {
	var out []string
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FlexString accepts a JSON string or number; the backend emits
// displayed_rating both ways.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}
