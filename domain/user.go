package domain

import "time"

// User represents an account in the task service. Password is stored and
// compared as plaintext; hardening the credential path is explicitly out of
// scope for this service.
type User struct {
	Username      string    `json:"username"`
	Password      string    `json:"-"`
	DeviceToken   string    `json:"deviceToken,omitempty"`
	ExpoPushToken string    `json:"expoPushToken,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// HasPushDestination reports whether any push channel can reach this user.
func (u *User) HasPushDestination() bool {
	return u != nil && (u.DeviceToken != "" || u.ExpoPushToken != "")
}
