package common

import (
	"fmt"
	"slices"

	"staffbot/models"
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// RoleSession is the part of *discordgo.Session used to read and change member roles
type RoleSession interface {
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// InteractionUser returns the user behind an interaction in a guild or a DM
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionUserID returns the id of the interaction's user, or "" when unknown
func InteractionUserID(i *discordgo.InteractionCreate) string {
	if user := InteractionUser(i); user != nil {
		return user.ID
	}
	return ""
}

// ToMember converts a guild member into the role holder used by permission checks
func ToMember(m *discordgo.Member) *models.Member {
	if m == nil {
		return nil
	}

	member := &models.Member{Roles: slices.Clone(m.Roles)}
	if m.User != nil {
		member.UserID = m.User.ID
		member.Username = m.User.Username
	}
	return member
}

// IsAdministrator reports whether the invoking member has the Administrator permission
func IsAdministrator(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// UserTag returns the display form of a user for embeds
func UserTag(u *discordgo.User) string {
	if u == nil {
		return "Unknown"
	}
	if u.Discriminator != "" && u.Discriminator != "0" {
		return u.Username + "#" + u.Discriminator
	}
	return u.Username
}

// RoleNames resolves role ids to names using the guild's role list
func RoleNames(roleIDs []string, guildRoles []*discordgo.Role) []string {
	byID := make(map[string]string, len(guildRoles))
	for _, role := range guildRoles {
		byID[role.ID] = role.Name
	}

	names := make([]string, 0, len(roleIDs))
	for _, id := range roleIDs {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// MemberRank returns the most senior configured rank among the member's role names
func MemberRank(member *discordgo.Member, guildRoles []*discordgo.Role, cfg *models.GuildConfig) string {
	if member == nil {
		return ""
	}
	return service.HighestRank(RoleNames(member.Roles, guildRoles), cfg)
}

// SwapRankRoles removes every rank role the member holds and grants the role named
// newRank. Ranks without a matching guild role are skipped.
func SwapRankRoles(s RoleSession, guildID string, member *discordgo.Member, guildRoles []*discordgo.Role, cfg *models.GuildConfig, newRank string) error {
	if member == nil || member.User == nil {
		return fmt.Errorf("member not resolved")
	}

	var newRoleID string
	var firstErr error
	for _, role := range guildRoles {
		if !cfg.HasRank(role.Name) {
			continue
		}
		if role.Name == newRank {
			newRoleID = role.ID
			continue
		}
		if slices.Contains(member.Roles, role.ID) {
			if err := s.GuildMemberRoleRemove(guildID, member.User.ID, role.ID); err != nil {
				log.WithError(err).WithFields(log.Fields{
					"guild_id": guildID,
					"user_id":  member.User.ID,
					"role":     role.Name,
				}).Error("Failed to remove rank role")
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}

	if newRoleID != "" && !slices.Contains(member.Roles, newRoleID) {
		if err := s.GuildMemberRoleAdd(guildID, member.User.ID, newRoleID); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"guild_id": guildID,
				"user_id":  member.User.ID,
				"role":     newRank,
			}).Error("Failed to add rank role")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// WithRoleSyncNote appends a warning to content when updating roles failed
func WithRoleSyncNote(content string, err error) string {
	if err == nil {
		return content
	}
	return content + "\n" + MsgRoleSyncFailed
}

// RemoveRoles removes each listed role the member holds, logging failures
func RemoveRoles(s RoleSession, guildID string, member *discordgo.Member, roleIDs []string) int {
	if member == nil || member.User == nil {
		return 0
	}

	failures := 0
	for _, roleID := range roleIDs {
		if !slices.Contains(member.Roles, roleID) {
			continue
		}
		if err := s.GuildMemberRoleRemove(guildID, member.User.ID, roleID); err != nil {
			failures++
			log.WithError(err).WithFields(log.Fields{
				"guild_id": guildID,
				"user_id":  member.User.ID,
				"role_id":  roleID,
			}).Error("Failed to remove role")
		}
	}
	return failures
}

// ResolveMember finds a guild member, preferring the state cache over a REST call
func ResolveMember(s *discordgo.Session, guildID, userID string) *discordgo.Member {
	if userID == "" {
		return nil
	}
	if s.State != nil {
		if member, err := s.State.Member(guildID, userID); err == nil {
			return member
		}
	}

	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild_id": guildID,
			"user_id":  userID,
		}).Warn("Failed to resolve guild member")
		return nil
	}
	return member
}

// GuildRoles lists a guild's roles, preferring the state cache
func GuildRoles(s *discordgo.Session, guildID string) ([]*discordgo.Role, error) {
	if s.State != nil {
		if guild, err := s.State.Guild(guildID); err == nil && len(guild.Roles) > 0 {
			return guild.Roles, nil
		}
	}
	return s.GuildRoles(guildID)
}
