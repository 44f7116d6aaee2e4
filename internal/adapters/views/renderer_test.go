package views_test

import (
	"strings"
	"testing"

	"travelguide/internal/adapters/views"
	"travelguide/internal/domain"
)

func TestRenderer_Pages(t *testing.T) {
	r, err := views.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	seed := domain.DefaultSeed()

	var b strings.Builder
	if err := r.Index(&b, views.IndexPage{Query: "par", Destinations: seed.Destinations[:1]}); err != nil {
		t.Fatalf("index: %v", err)
	}
	if !strings.Contains(b.String(), `href="/destination/1"`) || !strings.Contains(b.String(), "Paris") {
		t.Fatalf("index missing destination link:\n%s", b.String())
	}

	b.Reset()
	if err := r.Destination(&b, views.DestinationPage{Destination: seed.Destinations[0], Comments: seed.Comments[:1]}); err != nil {
		t.Fatalf("destination: %v", err)
	}
	if !strings.Contains(b.String(), "Amazing city!") {
		t.Fatalf("destination page missing comment:\n%s", b.String())
	}

	b.Reset()
	if err := r.Users(&b, seed.Users); err != nil {
		t.Fatalf("users: %v", err)
	}
	if !strings.Contains(b.String(), "jane@example.com") {
		t.Fatalf("users page missing email")
	}
}

func TestRenderer_EscapesAndHandlesAbsentFields(t *testing.T) {
	r, err := views.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	evil := "<script>alert(1)</script>"
	var b strings.Builder
	err = r.Comments(&b, []domain.Comment{{ID: 1, Text: &evil}, {ID: 2}})
	if err != nil {
		t.Fatalf("comments: %v", err)
	}
	if strings.Contains(b.String(), "<script>") {
		t.Fatalf("text was not escaped")
	}
}
