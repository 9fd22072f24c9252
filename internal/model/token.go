package model

import "time"

// AuthToken is an opaque API key. Each user owns at most one; clients send
// it as "Authorization: Token <key>".
type AuthToken struct {
	Key     string    `json:"key" db:"key"`
	UserID  int64     `json:"user_id" db:"user_id"`
	Created time.Time `json:"created" db:"created"`
}
