package domain

// Comment links a user to a destination. Neither reference is checked, so
// a comment may outlive the records it points at.
type Comment struct {
	ID            int64   `json:"id"`
	DestinationID *int64  `json:"destinationId,omitempty"`
	UserID        *int64  `json:"userId,omitempty"`
	Text          *string `json:"text,omitempty"`
}

func (c Comment) RecordID() int64 { return c.ID }

// OnDestination reports whether the comment references destination id.
func (c Comment) OnDestination(id int64) bool {
	return c.DestinationID != nil && *c.DestinationID == id
}

// CommentPatch only carries text; the references are fixed at creation.
type CommentPatch struct {
	Text *string `json:"text"`
}

func (p CommentPatch) Apply(c *Comment) {
	if truthy(p.Text) {
		c.Text = p.Text
	}
}
