package service

import (
	"fmt"
	"time"

	"staffbot/models"
)

// SetupStepKind distinguishes role selection steps from channel selection steps
type SetupStepKind int

const (
	SetupStepRoles SetupStepKind = iota
	SetupStepChannel
)

// SetupStep is one page of the setup wizard
type SetupStep struct {
	Name  string
	Kind  SetupStepKind
	apply func(cfg *models.GuildConfig, values []string)
	value func(cfg *models.GuildConfig) []string
}

// Current returns the draft's current selection for this step
func (s SetupStep) Current(cfg *models.GuildConfig) []string {
	return s.value(cfg)
}

func roleStep(name string, action models.Action) SetupStep {
	return SetupStep{
		Name: name,
		Kind: SetupStepRoles,
		apply: func(cfg *models.GuildConfig, values []string) {
			cfg.SetRoles(action, values)
		},
		value: func(cfg *models.GuildConfig) []string {
			return cfg.RolesFor(action)
		},
	}
}

func channelStep(name string, field func(cfg *models.GuildConfig) *string) SetupStep {
	return SetupStep{
		Name: name,
		Kind: SetupStepChannel,
		apply: func(cfg *models.GuildConfig, values []string) {
			if len(values) == 0 {
				*field(cfg) = ""
				return
			}
			*field(cfg) = values[0]
		},
		value: func(cfg *models.GuildConfig) []string {
			if v := *field(cfg); v != "" {
				return []string{v}
			}
			return nil
		},
	}
}

// SetupSteps is the ordered list of wizard pages
var SetupSteps = []SetupStep{
	roleStep("Infraction Roles", models.ActionInfraction),
	roleStep("Promotion Roles", models.ActionPromotion),
	roleStep("Server Status Roles", models.ActionServerStatus),
	roleStep("LOA Approver Roles", models.ActionLOA),
	channelStep("Infraction Log Channel", func(cfg *models.GuildConfig) *string { return &cfg.InfractionLogChannel }),
	channelStep("Promotion Log Channel", func(cfg *models.GuildConfig) *string { return &cfg.PromotionLogChannel }),
	channelStep("LOA Log Channel", func(cfg *models.GuildConfig) *string { return &cfg.LOALogChannel }),
	channelStep("Server Status Channel", func(cfg *models.GuildConfig) *string { return &cfg.ServerStatusChannel }),
}

// SetupWizard accumulates selections into a draft config until it is completed
type SetupWizard struct {
	GuildID   string
	UserID    string
	Draft     *models.GuildConfig
	Current   int
	StartedAt time.Time
}

// NewSetupWizard starts a wizard from a copy of the existing config
func NewSetupWizard(guildID, userID string, base *models.GuildConfig, now time.Time) *SetupWizard {
	draft := base.Clone()
	if draft == nil {
		draft = models.NewGuildConfig()
	}

	return &SetupWizard{
		GuildID:   guildID,
		UserID:    userID,
		Draft:     draft,
		StartedAt: now,
	}
}

// Step returns the step currently shown
func (w *SetupWizard) Step() SetupStep {
	return SetupSteps[w.Current]
}

// IsFirstStep reports whether there is no previous step
func (w *SetupWizard) IsFirstStep() bool {
	return w.Current == 0
}

// IsLastStep reports whether the wizard is on its final step
func (w *SetupWizard) IsLastStep() bool {
	return w.Current == len(SetupSteps)-1
}

// Select applies a role or channel selection to the given step
func (w *SetupWizard) Select(step int, values []string) error {
	if step < 0 || step >= len(SetupSteps) {
		return fmt.Errorf("setup step %d out of range", step)
	}
	SetupSteps[step].apply(w.Draft, values)
	return nil
}

// Next advances one step; it reports false on the last step
func (w *SetupWizard) Next() bool {
	if w.IsLastStep() {
		return false
	}
	w.Current++
	return true
}

// Previous goes back one step; it reports false on the first step
func (w *SetupWizard) Previous() bool {
	if w.IsFirstStep() {
		return false
	}
	w.Current--
	return true
}

// Skip leaves the current step unchanged and advances when possible
func (w *SetupWizard) Skip() bool {
	return w.Next()
}

// Complete stamps the draft with who finished setup and returns the config to save
func (w *SetupWizard) Complete(now time.Time) *models.GuildConfig {
	cfg := w.Draft.Clone()
	completedAt := now.UTC()
	cfg.SetupUser = w.UserID
	cfg.SetupDate = &completedAt
	return cfg
}

// Expired reports whether the wizard has been open longer than timeout
func (w *SetupWizard) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(w.StartedAt) >= timeout
}
