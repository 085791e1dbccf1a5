package models

// Streak is the persisted consecutive-day counter of one user.
type Streak struct {
	UserID           string
	Count            int
	LastActivityDate string // YYYY-MM-DD, "" before the first entry
}
