package model

// User data model. Password is kept as supplied and never serialized.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
