package domain

type User struct {
	ID       int64   `json:"id"`
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

func (u User) RecordID() int64 { return u.ID }

type UserPatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

func (p UserPatch) Apply(u *User) {
	if truthy(p.Username) {
		u.Username = p.Username
	}
	if truthy(p.Email) {
		u.Email = p.Email
	}
}
