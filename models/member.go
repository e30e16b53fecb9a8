package models

// Member is the slice of a guild member the permission checks need
type Member struct {
	UserID   string
	Username string
	Roles    []string
}
