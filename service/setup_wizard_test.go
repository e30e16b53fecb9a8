package service

import (
	"testing"
	"time"

	"staffbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWizard_Navigation(t *testing.T) {
	w := NewSetupWizard("g1", "u1", nil, fixedNow)

	require.Len(t, SetupSteps, 8)
	assert.True(t, w.IsFirstStep())
	assert.False(t, w.Previous())
	assert.Equal(t, "Infraction Roles", w.Step().Name)

	for i := 1; i < len(SetupSteps); i++ {
		assert.True(t, w.Next())
	}
	assert.True(t, w.IsLastStep())
	assert.Equal(t, "Server Status Channel", w.Step().Name)
	assert.Equal(t, SetupStepChannel, w.Step().Kind)
	assert.False(t, w.Next())
	assert.False(t, w.Skip())

	assert.True(t, w.Previous())
	assert.Equal(t, "LOA Log Channel", w.Step().Name)
}

func TestSetupWizard_SelectionsAndComplete(t *testing.T) {
	base := rankedConfig("Recruit", "Officer")
	base.SetRoles(models.ActionInfraction, []string{"old"})
	base.Revision = 3

	w := NewSetupWizard("g1", "u1", base, fixedNow)

	require.NoError(t, w.Select(0, []string{"r1", "r2"}))
	require.NoError(t, w.Select(3, []string{"r9"}))
	require.NoError(t, w.Select(4, []string{"c1"}))
	require.NoError(t, w.Select(7, nil))
	assert.Error(t, w.Select(8, []string{"c2"}))
	assert.Error(t, w.Select(-1, []string{"c2"}))

	assert.Equal(t, []string{"r1", "r2"}, SetupSteps[0].Current(w.Draft))
	assert.Equal(t, []string{"c1"}, SetupSteps[4].Current(w.Draft))
	assert.Nil(t, SetupSteps[7].Current(w.Draft))
	assert.Equal(t, []string{"old"}, base.RolesFor(models.ActionInfraction), "base config must not be mutated")

	completedAt := time.Date(2026, 3, 14, 13, 0, 0, 0, time.FixedZone("EST", -5*3600))
	cfg := w.Complete(completedAt)

	assert.Equal(t, "u1", cfg.SetupUser)
	require.NotNil(t, cfg.SetupDate)
	assert.Equal(t, completedAt.UTC(), *cfg.SetupDate)
	assert.Equal(t, int64(3), cfg.Revision)
	assert.Equal(t, []string{"r9"}, cfg.RolesFor(models.ActionLOA))
	assert.Equal(t, "c1", cfg.InfractionLogChannel)
	assert.Equal(t, []string{"Recruit", "Officer"}, cfg.StaffRanks)
}

func TestSetupWizard_ClearChannel(t *testing.T) {
	base := models.NewGuildConfig()
	base.LOALogChannel = "c6"

	w := NewSetupWizard("g1", "u1", base, fixedNow)
	assert.Equal(t, []string{"c6"}, SetupSteps[6].Current(w.Draft))

	require.NoError(t, w.Select(6, []string{}))

	assert.Nil(t, SetupSteps[6].Current(w.Draft))
	assert.Empty(t, w.Complete(fixedNow).LOALogChannel)
	assert.Equal(t, "c6", base.LOALogChannel)
}

func TestSetupWizard_Expired(t *testing.T) {
	w := NewSetupWizard("g1", "u1", nil, fixedNow)

	assert.False(t, w.Expired(fixedNow.Add(14*time.Minute), 15*time.Minute))
	assert.True(t, w.Expired(fixedNow.Add(15*time.Minute), 15*time.Minute))
}
