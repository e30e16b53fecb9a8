package service

import (
	"fmt"
	"slices"
	"strings"

	"staffbot/models"
)

// HasPermission reports whether the member holds at least one role authorized for action.
// A missing member or config, or an action without roles, denies.
func HasPermission(member *models.Member, action models.Action, cfg *models.GuildConfig) bool {
	if member == nil || cfg == nil {
		return false
	}

	required := cfg.RolesFor(action)
	for _, roleID := range member.Roles {
		if slices.Contains(required, roleID) {
			return true
		}
	}
	return false
}

// RankIndex returns the seniority position of rank, or -1 when it is not configured
func RankIndex(rank string, cfg *models.GuildConfig) int {
	if cfg == nil {
		return -1
	}
	return slices.Index(cfg.StaffRanks, rank)
}

// IsRankHigher reports whether rankA is strictly senior to rankB.
// Unknown ranks compare as -1, so they are never higher than a configured rank.
func IsRankHigher(rankA, rankB string, cfg *models.GuildConfig) bool {
	return RankIndex(rankA, cfg) > RankIndex(rankB, cfg)
}

// CanPromote reports whether an issuer holding issuerRank may grant targetRank
func CanPromote(issuerRank, targetRank string, cfg *models.GuildConfig) bool {
	return IsRankHigher(issuerRank, targetRank, cfg)
}

// HighestRank returns the most senior configured rank among names, or "" if none match
func HighestRank(names []string, cfg *models.GuildConfig) string {
	best, bestIndex := "", -1
	for _, name := range names {
		if idx := RankIndex(name, cfg); idx > bestIndex {
			best, bestIndex = name, idx
		}
	}
	return best
}

// ValidateStaffRanks rejects blank and duplicate rank names
func ValidateStaffRanks(ranks []string) error {
	seen := make(map[string]struct{}, len(ranks))
	for i, rank := range ranks {
		if strings.TrimSpace(rank) == "" {
			return fmt.Errorf("%w: rank %d is blank", ErrInvalidRankList, i+1)
		}
		if _, dup := seen[rank]; dup {
			return fmt.Errorf("%w: duplicate rank %q", ErrInvalidRankList, rank)
		}
		seen[rank] = struct{}{}
	}
	return nil
}

// ParseStaffRanks splits a comma separated rank list, lowest rank first
func ParseStaffRanks(raw string) ([]string, error) {
	parts := strings.Split(raw, ",")
	ranks := make([]string, 0, len(parts))
	for _, part := range parts {
		ranks = append(ranks, strings.TrimSpace(part))
	}

	if err := ValidateStaffRanks(ranks); err != nil {
		return nil, err
	}
	return ranks, nil
}
