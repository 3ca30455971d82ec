package product

import (
	"encoding/json"
	"testing"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestMatchPercent(t *testing.T) {
	cases := []struct {
		name string
		rec  Recommendation
		want int
	}{
		{"fractional combined score", Recommendation{CombinedScore: fptr(0.42)}, 42},
		{"percentage similarity", Recommendation{Similarity: fptr(85)}, 85},
		{"combined score wins over similarity", Recommendation{CombinedScore: fptr(0.9), Similarity: fptr(10)}, 90},
		{"exactly one is a full match", Recommendation{Similarity: fptr(1)}, 100},
		{"no score at all", Recommendation{}, 0},
		{"clamped above", Recommendation{Similarity: fptr(240)}, 100},
		{"clamped below", Recommendation{CombinedScore: fptr(-0.5)}, 0},
		{"rounded", Recommendation{Similarity: fptr(0.666)}, 67},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := matchPercent(tc.rec); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestReviewCountLabel(t *testing.T) {
	cases := []struct {
		name  string
		count *int
		want  string
	}{
		{"nil", nil, ""},
		{"zero", iptr(0), ""},
		{"negative", iptr(-3), ""},
		{"singular", iptr(1), "1 review"},
		{"plural", iptr(842), "842 reviews"},
		{"thousands", iptr(1500), "1.5k reviews"},
		{"exactly one thousand", iptr(1000), "1.0k reviews"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reviewCountLabel(tc.count); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveImage_Precedence(t *testing.T) {
	rec := Recommendation{
		ProductImageURL: "https://img.example/a.jpg",
		ImageURL:        "https://img.example/b.jpg",
		Image:           "https://img.example/c.jpg",
		ThumbnailURL:    "https://img.example/d.jpg",
	}
	if got := resolveImage(rec); got != rec.ProductImageURL {
		t.Fatalf("expected product_image_url to win, got %q", got)
	}

	rec.ProductImageURL = "   "
	rec.ImageURL = ""
	rec.Image = ""
	if got := resolveImage(rec); got != rec.ThumbnailURL {
		t.Fatalf("expected thumbnail fallback, got %q", got)
	}

	if got := resolveImage(Recommendation{}); got != PlaceholderImage {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestRatingLabel(t *testing.T) {
	if got := ratingLabel(Recommendation{DisplayedRating: "4.5 out of 5"}); got != "4.5 out of 5" {
		t.Fatalf("displayed rating not passed through: %q", got)
	}
	if got := ratingLabel(Recommendation{AvgRating: fptr(4.0)}); got != "4.0" {
		t.Fatalf("avg rating not formatted: %q", got)
	}
	if got := ratingLabel(Recommendation{}); got != "Not rated" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestChips_SellingPointsFirst(t *testing.T) {
	rec := Recommendation{
		Categories: StringList{"Electronics", "Audio"},
		Analysis: &Analysis{
			MainSellingPoints: []SellingPoint{
				{Title: "Battery", Description: "40 hour playback"},
				{Title: "Comfort"},
				{Description: "Foldable design"},
				{Title: "Extra", Description: "never shown"},
			},
		},
	}
	got := chips(rec)
	want := []string{"Battery: 40 hour playback", "Comfort", "Foldable design"}
	if len(got) != len(want) {
		t.Fatalf("got %d chips, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chip %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChips_CategoryFallback(t *testing.T) {
	rec := Recommendation{Categories: StringList{"Electronics", "Audio", "Headphones", "Over-Ear"}}
	got := chips(rec)
	if len(got) != 3 || got[0] != "Electronics" || got[2] != "Headphones" {
		t.Fatalf("unexpected category chips: %v", got)
	}
}

func TestChips_DescriptionFallback(t *testing.T) {
	rec := Recommendation{Description: "Crisp display. Long battery life. Lightweight frame."}
	got := chips(rec)
	if len(got) != 3 {
		t.Fatalf("expected 3 description chips, got %v", got)
	}
	if got[0] != "Crisp display" {
		t.Fatalf("unexpected first chip: %q", got[0])
	}
}

func TestBuildCard_UntitledFallback(t *testing.T) {
	card := BuildCard(Recommendation{ASIN: "B0EMPTY", Title: "   "})
	if card.Title != "Untitled Product" {
		t.Fatalf("got title %q", card.Title)
	}
	if card.Image != PlaceholderImage {
		t.Fatalf("got image %q", card.Image)
	}
	if card.MatchPercent != 0 || card.RatingLabel != "Not rated" || card.ReviewCountLabel != "" {
		t.Fatalf("unexpected defaults: %+v", card)
	}
}

func TestRecommendation_UnmarshalFlexibleFields(t *testing.T) {
	payload := `{
		"asin": "B0FLEX",
		"product_categories": "[Electronics, Audio, ]",
		"displayed_rating": 4.7,
		"rating_count": 1500
	}`
	var rec Recommendation
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rec.Categories) != 2 || rec.Categories[0] != "Electronics" || rec.Categories[1] != "Audio" {
		t.Fatalf("categories not parsed: %v", rec.Categories)
	}
	if rec.DisplayedRating != "4.7" {
		t.Fatalf("numeric displayed_rating not normalized: %q", rec.DisplayedRating)
	}

	payload = `{"asin":"B0FLEX","product_categories":["Electronics"," Audio ",""],"displayed_rating":"4.5 stars"}`
	rec = Recommendation{}
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rec.Categories) != 2 || rec.Categories[1] != "Audio" {
		t.Fatalf("array categories not cleaned: %v", rec.Categories)
	}
	if rec.DisplayedRating != "4.5 stars" {
		t.Fatalf("string displayed_rating altered: %q", rec.DisplayedRating)
	}
}
