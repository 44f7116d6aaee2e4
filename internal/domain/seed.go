package domain

// SeedData is the catalogue a fresh store starts with.
type SeedData struct {
	Destinations []Destination `json:"destinations"`
	Users        []User        `json:"users"`
	Comments     []Comment     `json:"comments"`
}

func DefaultSeed() SeedData {
	s := func(v string) *string { return &v }
	n := func(v int64) *int64 { return &v }
	return SeedData{
		Destinations: []Destination{
			{ID: 1, Name: s("Paris"), Description: s("The city of lights."), Image: s("/images/paris.jpg")},
			{ID: 2, Name: s("New York"), Description: s("The city that never sleeps."), Image: s("/images/newyork.jpg")},
			{ID: 3, Name: s("Tokyo"), Description: s("The bustling capital of Japan."), Image: s("/images/tokyo.jpg")},
		},
		Users: []User{
			{ID: 1, Username: s("john_doe"), Email: s("john@example.com")},
			{ID: 2, Username: s("jane_smith"), Email: s("jane@example.com")},
		},
		Comments: []Comment{
			{ID: 1, DestinationID: n(1), UserID: n(1), Text: s("Amazing city!")},
			{ID: 2, DestinationID: n(2), UserID: n(2), Text: s("I love the skyscrapers!")},
		},
	}
}
