package domain_test

import (
	"testing"

	"travelguide/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestDestinationPatch_SkipsFalsyValues(t *testing.T) {
	d := domain.Destination{ID: 1, Name: ptr("Paris"), Description: ptr("Lights"), Image: ptr("/images/paris.jpg")}

	domain.DestinationPatch{Name: ptr(""), Description: nil, Image: ptr("/images/p2.jpg")}.Apply(&d)

	if *d.Name != "Paris" {
		t.Fatalf("empty name must not overwrite, got %q", *d.Name)
	}
	if *d.Description != "Lights" {
		t.Fatalf("missing description must not overwrite, got %q", *d.Description)
	}
	if *d.Image != "/images/p2.jpg" {
		t.Fatalf("image not updated: %q", *d.Image)
	}
}

func TestUserAndCommentPatch(t *testing.T) {
	u := domain.User{ID: 1, Username: ptr("john_doe")}
	domain.UserPatch{Username: ptr(""), Email: ptr("john@x.io")}.Apply(&u)
	if *u.Username != "john_doe" || u.Email == nil || *u.Email != "john@x.io" {
		t.Fatalf("unexpected user: %+v", u)
	}

	c := domain.Comment{ID: 1, Text: ptr("old")}
	domain.CommentPatch{Text: ptr("")}.Apply(&c)
	if *c.Text != "old" {
		t.Fatalf("empty text must not overwrite")
	}
	domain.CommentPatch{Text: ptr("new")}.Apply(&c)
	if *c.Text != "new" {
		t.Fatalf("text not updated")
	}
}

func TestMatchesName(t *testing.T) {
	d := domain.Destination{Name: ptr("Paris")}
	cases := map[string]bool{"": true, "par": true, "PAR": true, "ris": true, "tokyo": false}
	for q, want := range cases {
		if got := d.MatchesName(q); got != want {
			t.Errorf("MatchesName(%q) = %v, want %v", q, got, want)
		}
	}
	if (domain.Destination{}).MatchesName("x") {
		t.Fatalf("nameless destination should not match a filter")
	}
}
