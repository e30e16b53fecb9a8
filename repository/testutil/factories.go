package testutil

import (
	"time"

	"staffbot/models"
)

// CreateTestGuildConfig returns a config with three ranks and one role per action
func CreateTestGuildConfig() *models.GuildConfig {
	cfg := models.NewGuildConfig()
	cfg.StaffRanks = []string{"Recruit", "Officer", "Manager"}
	cfg.SetRoles(models.ActionInfraction, []string{"100"})
	cfg.SetRoles(models.ActionPromotion, []string{"200"})
	cfg.SetRoles(models.ActionServerStatus, []string{"300"})
	cfg.SetRoles(models.ActionLOA, []string{"400"})
	cfg.InfractionLogChannel = "900"
	cfg.PromotionLogChannel = "901"
	return cfg
}

// CreateTestGuildConfigWithSetup returns a config stamped by a completed setup run
func CreateTestGuildConfigWithSetup(userID string, at time.Time) *models.GuildConfig {
	cfg := CreateTestGuildConfig()
	setupDate := at.UTC()
	cfg.SetupUser = userID
	cfg.SetupDate = &setupDate
	return cfg
}
