package models

import "time"

// Habit is one day of habit answers. Data is whatever the client's habit
// form sent, kept as a JSON document; a user has at most one row per Date.
type Habit struct {
	ID       string
	UserID   string
	Date     time.Time // UTC midnight
	Data     map[string]any
	Comments string
}

// Feedback is a free-text message. UserID is empty for anonymous senders.
type Feedback struct {
	ID        string
	UserID    string
	Content   string
	CreatedAt time.Time
}

// Post is a social post logged for the coach, with its engagement numbers.
type Post struct {
	ID        string
	UserID    string
	Content   string
	Platform  string
	CreatedAt time.Time
	Analytics PostAnalytics
}

type PostAnalytics struct {
	Impressions int
	Likes       int
	Comments    int
	Reposts     int
}
