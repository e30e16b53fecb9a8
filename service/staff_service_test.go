package service

import (
	"context"
	"testing"
	"time"

	"staffbot/events"
	"staffbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func TestStaffService_IssueInfraction(t *testing.T) {
	ctx := context.Background()
	cfg := rankedConfig("Recruit", "Officer", "Manager")

	t.Run("warning", func(t *testing.T) {
		publisher := new(MockEventPublisher)
		svc := NewStaffServiceWithClock(publisher, fixedClock)

		want := models.Infraction{
			GuildID:  "g1",
			IssuerID: "u1",
			TargetID: "u2",
			Type:     models.InfractionWarning,
			Reason:   "Late to patrol",
			IssuedAt: fixedNow,
		}
		publisher.On("Emit", ctx, events.InfractionIssuedEvent{Infraction: want}).Return()

		got, err := svc.IssueInfraction(ctx, cfg, InfractionInput{
			GuildID:  "g1",
			IssuerID: "u1",
			TargetID: "u2",
			Type:     "Warning",
			Reason:   "Late to patrol",
		})

		require.NoError(t, err)
		assert.Equal(t, want, *got)
		publisher.AssertExpectations(t)
	})

	t.Run("demotion with configured rank", func(t *testing.T) {
		svc := NewStaffServiceWithClock(nil, fixedClock)

		got, err := svc.IssueInfraction(ctx, cfg, InfractionInput{
			Type:    "Demotion",
			Reason:  "Misconduct",
			NewRank: "Recruit",
		})

		require.NoError(t, err)
		assert.Equal(t, "Recruit", got.NewRank)
	})

	tests := []struct {
		name  string
		cfg   *models.GuildConfig
		input InfractionInput
		err   error
	}{
		{"no config", nil, InfractionInput{Type: "Warning", Reason: "x"}, ErrConfigNotFound},
		{"unknown type", cfg, InfractionInput{Type: "Ban", Reason: "x"}, ErrInvalidInfractionType},
		{"missing reason", cfg, InfractionInput{Type: "Warning", Reason: "  "}, ErrMissingReason},
		{"demotion without rank", cfg, InfractionInput{Type: "Demotion", Reason: "x"}, ErrDemotionRequiresRank},
		{"demotion to unknown rank", cfg, InfractionInput{Type: "Demotion", Reason: "x", NewRank: "Chief"}, ErrInvalidRank},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher := new(MockEventPublisher)
			svc := NewStaffServiceWithClock(publisher, fixedClock)

			_, err := svc.IssueInfraction(ctx, tt.cfg, tt.input)

			assert.ErrorIs(t, err, tt.err)
			publisher.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything)
		})
	}
}

func TestStaffService_Promote(t *testing.T) {
	ctx := context.Background()
	cfg := rankedConfig("Recruit", "Officer", "Manager")

	t.Run("manager promotes recruit to officer", func(t *testing.T) {
		publisher := new(MockEventPublisher)
		svc := NewStaffServiceWithClock(publisher, fixedClock)
		publisher.On("Emit", ctx, mock.AnythingOfType("events.PromotionIssuedEvent")).Return()

		got, err := svc.Promote(ctx, cfg, PromotionInput{
			GuildID:     "g1",
			IssuerID:    "u1",
			TargetID:    "u2",
			IssuerRank:  "Manager",
			CurrentRank: "Recruit",
			NewRank:     "Officer",
			Reason:      "Great work",
		})

		require.NoError(t, err)
		assert.Equal(t, "Recruit", got.OldRank)
		assert.Equal(t, "Officer", got.NewRank)
		assert.Equal(t, fixedNow, got.IssuedAt)
		publisher.AssertExpectations(t)
	})

	t.Run("member without a staff rank can be promoted", func(t *testing.T) {
		svc := NewStaffServiceWithClock(nil, fixedClock)

		_, err := svc.Promote(ctx, cfg, PromotionInput{
			IssuerRank: "Manager",
			NewRank:    "Recruit",
			Reason:     "Welcome",
		})

		require.NoError(t, err)
	})

	tests := []struct {
		name  string
		cfg   *models.GuildConfig
		input PromotionInput
		err   error
	}{
		{"no config", nil, PromotionInput{}, ErrConfigNotFound},
		{"unknown rank", cfg, PromotionInput{NewRank: "Chief", Reason: "x"}, ErrInvalidRank},
		{"missing reason", cfg, PromotionInput{NewRank: "Officer"}, ErrMissingReason},
		{"not above current", cfg, PromotionInput{IssuerRank: "Manager", CurrentRank: "Officer", NewRank: "Officer", Reason: "x"}, ErrRankNotHigher},
		{"lower than current", cfg, PromotionInput{IssuerRank: "Manager", CurrentRank: "Officer", NewRank: "Recruit", Reason: "x"}, ErrRankNotHigher},
		{"issuer equal to new rank", cfg, PromotionInput{IssuerRank: "Officer", CurrentRank: "Recruit", NewRank: "Officer", Reason: "x"}, ErrIssuerRankTooLow},
		{"issuer without rank", cfg, PromotionInput{CurrentRank: "Recruit", NewRank: "Officer", Reason: "x"}, ErrIssuerRankTooLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewStaffServiceWithClock(nil, fixedClock)
			_, err := svc.Promote(ctx, tt.cfg, tt.input)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestStaffService_RequestLOA(t *testing.T) {
	ctx := context.Background()

	t.Run("valid range", func(t *testing.T) {
		publisher := new(MockEventPublisher)
		svc := NewStaffServiceWithClock(publisher, fixedClock)
		publisher.On("Emit", ctx, mock.AnythingOfType("events.LOARequestedEvent")).Return()

		got, err := svc.RequestLOA(ctx, LOAInput{
			GuildID:     "g1",
			RequesterID: "u1",
			Start:       "2026-04-01",
			End:         "2026-04-10",
			Reason:      "Vacation",
		})

		require.NoError(t, err)
		assert.Equal(t, models.LOAPending, got.Status)
		assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), got.Start)
		assert.Equal(t, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), got.End)
		publisher.AssertExpectations(t)
	})

	tests := []struct {
		name  string
		input LOAInput
		err   error
	}{
		{"slashed date", LOAInput{Start: "04/01/2026", End: "2026-04-10", Reason: "x"}, ErrInvalidDateFormat},
		{"impossible date", LOAInput{Start: "2026-02-30", End: "2026-04-10", Reason: "x"}, ErrInvalidDateFormat},
		{"bad end date", LOAInput{Start: "2026-04-01", End: "soon", Reason: "x"}, ErrInvalidDateFormat},
		{"same day", LOAInput{Start: "2026-04-01", End: "2026-04-01", Reason: "x"}, ErrEndNotAfterStart},
		{"end before start", LOAInput{Start: "2026-04-10", End: "2026-04-01", Reason: "x"}, ErrEndNotAfterStart},
		{"missing reason", LOAInput{Start: "2026-04-01", End: "2026-04-10"}, ErrMissingReason},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewStaffServiceWithClock(nil, fixedClock)
			_, err := svc.RequestLOA(ctx, tt.input)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestStaffService_DecideLOA(t *testing.T) {
	ctx := context.Background()
	publisher := new(MockEventPublisher)
	svc := NewStaffServiceWithClock(publisher, fixedClock)

	publisher.On("Emit", ctx, events.LOADecidedEvent{GuildID: "g1", MessageID: "m1", DecidedBy: "u9", Status: models.LOAApproved}).Return().Once()
	publisher.On("Emit", ctx, events.LOADecidedEvent{GuildID: "g1", MessageID: "m2", DecidedBy: "u9", Status: models.LOADenied}).Return().Once()

	assert.Equal(t, models.LOAApproved, svc.DecideLOA(ctx, "g1", "m1", "u9", true))
	assert.Equal(t, models.LOADenied, svc.DecideLOA(ctx, "g1", "m2", "u9", false))
	publisher.AssertExpectations(t)
}

func TestStaffService_StatusChange(t *testing.T) {
	ctx := context.Background()
	publisher := new(MockEventPublisher)
	svc := NewStaffServiceWithClock(publisher, fixedClock)

	change, err := svc.PrepareStatusChange(StatusInput{GuildID: "g1", IssuerID: "u1", Status: "Lockdown", Reason: "Raid"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusLockdown, change.Status)
	assert.True(t, change.Status.RequiresConfirmation())

	_, err = svc.PrepareStatusChange(StatusInput{Status: "Maintenance"})
	assert.ErrorIs(t, err, ErrInvalidServerStatus)

	publisher.On("Emit", ctx, events.ServerStatusChangedEvent{Change: *change}).Return().Once()
	svc.AnnounceStatusChange(ctx, change)
	svc.AnnounceStatusChange(ctx, nil)
	publisher.AssertExpectations(t)
}
