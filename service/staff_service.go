package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"staffbot/events"
	"staffbot/models"

	log "github.com/sirupsen/logrus"
)

// LOADateLayout is the only accepted date shape for leave requests
const LOADateLayout = "2006-01-02"

var loaDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// staffService implements the StaffService interface
type staffService struct {
	publisher EventPublisher
	now       Clock
}

// NewStaffService creates a new staff service. publisher may be nil.
func NewStaffService(publisher EventPublisher) StaffService {
	return NewStaffServiceWithClock(publisher, time.Now)
}

// NewStaffServiceWithClock creates a staff service with an explicit clock
func NewStaffServiceWithClock(publisher EventPublisher, now Clock) StaffService {
	return &staffService{
		publisher: publisher,
		now:       now,
	}
}

// IssueInfraction validates the infraction type and, for demotions, the new rank
func (s *staffService) IssueInfraction(ctx context.Context, cfg *models.GuildConfig, input InfractionInput) (*models.Infraction, error) {
	if cfg == nil {
		return nil, ErrConfigNotFound
	}

	infractionType, err := parseInfractionType(input.Type)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, ErrMissingReason
	}

	infraction := &models.Infraction{
		GuildID:  input.GuildID,
		IssuerID: input.IssuerID,
		TargetID: input.TargetID,
		Type:     infractionType,
		Reason:   input.Reason,
		IssuedAt: s.now().UTC(),
	}

	if infractionType == models.InfractionDemotion {
		if input.NewRank == "" {
			return nil, ErrDemotionRequiresRank
		}
		if !cfg.HasRank(input.NewRank) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRank, input.NewRank)
		}
		infraction.NewRank = input.NewRank
	}

	log.WithFields(log.Fields{
		"guild_id":  input.GuildID,
		"issuer_id": input.IssuerID,
		"target_id": input.TargetID,
		"type":      infractionType,
	}).Info("Infraction issued")

	s.emit(ctx, events.InfractionIssuedEvent{Infraction: *infraction})
	return infraction, nil
}

// Promote checks that the new rank exists, is above the target's current rank,
// and is below the issuer's own rank
func (s *staffService) Promote(ctx context.Context, cfg *models.GuildConfig, input PromotionInput) (*models.Promotion, error) {
	if cfg == nil {
		return nil, ErrConfigNotFound
	}
	if !cfg.HasRank(input.NewRank) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRank, input.NewRank)
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, ErrMissingReason
	}
	if !IsRankHigher(input.NewRank, input.CurrentRank, cfg) {
		return nil, ErrRankNotHigher
	}
	if !CanPromote(input.IssuerRank, input.NewRank, cfg) {
		return nil, ErrIssuerRankTooLow
	}

	promotion := &models.Promotion{
		GuildID:  input.GuildID,
		IssuerID: input.IssuerID,
		TargetID: input.TargetID,
		OldRank:  input.CurrentRank,
		NewRank:  input.NewRank,
		Reason:   input.Reason,
		IssuedAt: s.now().UTC(),
	}

	log.WithFields(log.Fields{
		"guild_id":  input.GuildID,
		"issuer_id": input.IssuerID,
		"target_id": input.TargetID,
		"old_rank":  input.CurrentRank,
		"new_rank":  input.NewRank,
	}).Info("Promotion issued")

	s.emit(ctx, events.PromotionIssuedEvent{Promotion: *promotion})
	return promotion, nil
}

// RequestLOA validates the date range of a leave of absence request
func (s *staffService) RequestLOA(ctx context.Context, input LOAInput) (*models.LOARequest, error) {
	start, err := parseLOADate(input.Start)
	if err != nil {
		return nil, err
	}
	end, err := parseLOADate(input.End)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrEndNotAfterStart
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, ErrMissingReason
	}

	request := &models.LOARequest{
		GuildID:     input.GuildID,
		RequesterID: input.RequesterID,
		Start:       start,
		End:         end,
		Reason:      input.Reason,
		Status:      models.LOAPending,
	}

	s.emit(ctx, events.LOARequestedEvent{Request: *request})
	return request, nil
}

// DecideLOA maps an approve/deny decision to a status and announces it
func (s *staffService) DecideLOA(ctx context.Context, guildID, messageID, deciderID string, approve bool) models.LOAStatus {
	status := models.LOADenied
	if approve {
		status = models.LOAApproved
	}

	s.emit(ctx, events.LOADecidedEvent{
		GuildID:   guildID,
		MessageID: messageID,
		DecidedBy: deciderID,
		Status:    status,
	})
	return status
}

// PrepareStatusChange validates the requested status
func (s *staffService) PrepareStatusChange(input StatusInput) (*models.StatusChange, error) {
	status, err := parseServerStatus(input.Status)
	if err != nil {
		return nil, err
	}

	return &models.StatusChange{
		GuildID:  input.GuildID,
		IssuerID: input.IssuerID,
		Status:   status,
		Reason:   input.Reason,
	}, nil
}

// AnnounceStatusChange emits the status change once it has been posted
func (s *staffService) AnnounceStatusChange(ctx context.Context, change *models.StatusChange) {
	if change == nil {
		return
	}

	log.WithFields(log.Fields{
		"guild_id":  change.GuildID,
		"issuer_id": change.IssuerID,
		"status":    change.Status,
	}).Info("Server status changed")

	s.emit(ctx, events.ServerStatusChangedEvent{Change: *change})
}

func (s *staffService) emit(ctx context.Context, event events.Event) {
	if s.publisher != nil {
		s.publisher.Emit(ctx, event)
	}
}

func parseInfractionType(raw string) (models.InfractionType, error) {
	for _, t := range models.InfractionTypes {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidInfractionType, raw)
}

func parseServerStatus(raw string) (models.ServerStatus, error) {
	for _, status := range models.ServerStatuses {
		if string(status) == raw {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidServerStatus, raw)
}

func parseLOADate(raw string) (time.Time, error) {
	if !loaDatePattern.MatchString(raw) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
	}
	date, err := time.Parse(LOADateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
	}
	return date, nil
}
