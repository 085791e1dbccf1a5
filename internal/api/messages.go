package api

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Salt     []byte `json:"salt"`
	Verifier []byte `json:"verifier"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type GetSaltRequest struct {
	Username string `json:"username"`
}

type GetSaltResponse struct {
	Salt []byte `json:"salt"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Verifier []byte `json:"verifier"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// EntryRecord is a stored entry as the backend returns it.
type EntryRecord struct {
	ID                     string            `json:"id,omitempty"`
	CreatedAt              time.Time         `json:"created_at"`
	WhatWentWell           string            `json:"what_went_well"`
	WhatILearned           string            `json:"what_i_learned"`
	WhatWouldDoDifferently string            `json:"what_would_do_differently"`
	NextStep               string            `json:"next_step"`
	DynamicFields          map[string]string `json:"dynamic_fields,omitempty"`
	CustomTitles           map[string]string `json:"custom_titles,omitempty"`
	UserGoal               string            `json:"user_goal,omitempty"`
	PromptTemplate         string            `json:"prompt_template,omitempty"`
}

type ListEntriesRequest struct{}

type ListEntriesResponse struct {
	Entries []EntryRecord `json:"entries"`
}

type CreateEntryRequest struct {
	Entry EntryRecord `json:"entry"`
}

type CreateEntryResponse struct {
	Entry EntryRecord `json:"entry"`
}

type ExportEntriesRequest struct{}

type ExportEntriesResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// StreakRequest carries the caller's calendar date (YYYY-MM-DD) so the day
// boundary follows the user, not the server.
type StreakRequest struct {
	Today string `json:"today"`
}

type StreakResponse struct {
	Count            int    `json:"count"`
	LastActivityDate string `json:"last_activity_date,omitempty"`
}

type Goal struct {
	Name      string `json:"name"`
	Specifics string `json:"specifics,omitempty"`
	IsDefault bool   `json:"is_default,omitempty"`
}

type Template struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

type SyncRequest struct {
	Entries   []EntryRecord `json:"entries"`
	Goals     []Goal        `json:"goals"`
	Templates []Template    `json:"templates"`
}

type SyncResponse struct {
	EntriesMerged int `json:"entries_merged"`
}
