package models

import "time"

// InfractionType represents the severity of a staff infraction
type InfractionType string

const (
	InfractionWarning     InfractionType = "Warning"
	InfractionSuspension  InfractionType = "Suspension"
	InfractionDemotion    InfractionType = "Demotion"
	InfractionTermination InfractionType = "Termination"
)

// InfractionTypes lists infraction types in the order they are offered
var InfractionTypes = []InfractionType{
	InfractionWarning,
	InfractionSuspension,
	InfractionDemotion,
	InfractionTermination,
}

// Infraction is a validated infraction ready to be logged
type Infraction struct {
	GuildID  string
	IssuerID string
	TargetID string
	Type     InfractionType
	Reason   string
	NewRank  string // only set for demotions
	IssuedAt time.Time
}

// Promotion is a validated promotion ready to be logged
type Promotion struct {
	GuildID  string
	IssuerID string
	TargetID string
	OldRank  string // empty when the member held no configured rank
	NewRank  string
	Reason   string
	IssuedAt time.Time
}

// LOAStatus tracks the approval state of a leave of absence request
type LOAStatus string

const (
	LOAPending  LOAStatus = "pending"
	LOAApproved LOAStatus = "approved"
	LOADenied   LOAStatus = "denied"
)

// LOARequest is a validated leave of absence request
type LOARequest struct {
	GuildID     string
	RequesterID string
	Start       time.Time
	End         time.Time
	Reason      string
	Status      LOAStatus
}

// ServerStatus represents the announced state of the game server
type ServerStatus string

const (
	StatusSSU      ServerStatus = "SSU"
	StatusOpen     ServerStatus = "Open"
	StatusLockdown ServerStatus = "Lockdown"
	StatusClosed   ServerStatus = "Closed"
	StatusSST      ServerStatus = "SST"
)

// ServerStatuses lists the statuses in the order they are offered
var ServerStatuses = []ServerStatus{StatusSSU, StatusOpen, StatusLockdown, StatusClosed, StatusSST}

// RequiresConfirmation reports whether announcing this status needs an explicit confirm step
func (s ServerStatus) RequiresConfirmation() bool {
	return s == StatusLockdown || s == StatusSST
}

// StatusChange is a validated server status announcement
type StatusChange struct {
	GuildID  string
	IssuerID string
	Status   ServerStatus
	Reason   string
}
