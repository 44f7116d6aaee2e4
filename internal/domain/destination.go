package domain

import "strings"

// Destination is a travel destination. Optional fields are pointers so an
// absent field survives a round trip as absent.
type Destination struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"` // public path, e.g. /images/paris.jpg
}

func (d Destination) RecordID() int64 { return d.ID }

// MatchesName reports whether the destination name contains q, ignoring case.
// An empty q matches everything; a nameless destination matches nothing else.
func (d Destination) MatchesName(q string) bool {
	if q == "" {
		return true
	}
	if d.Name == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*d.Name), strings.ToLower(q))
}

type DestinationPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// Apply overwrites only the fields that are set and non-empty.
func (p DestinationPatch) Apply(d *Destination) {
	if truthy(p.Name) {
		d.Name = p.Name
	}
	if truthy(p.Description) {
		d.Description = p.Description
	}
	if truthy(p.Image) {
		d.Image = p.Image
	}
}
