package models

type Goal struct {
	ID        string
	UserID    string
	Name      string
	Specifics string
	IsDefault bool
}

// Template is a named prompt template owned by a user.
type Template struct {
	ID     string
	UserID string
	Name   string
	Body   string
}
