package bot

import (
	"context"

	"staffbot/events"
	"staffbot/service"

	log "github.com/sirupsen/logrus"
)

// SubscribeAudit writes every domain event to the log
func SubscribeAudit(bus *events.Bus) {
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		log.WithFields(AuditFields(event)).Info("Staff action recorded")
	})
}

// AuditFields flattens an event into log fields
func AuditFields(event events.Event) log.Fields {
	fields := log.Fields{"event": string(event.Type())}

	switch e := event.(type) {
	case events.InfractionIssuedEvent:
		fields["guild_id"] = e.Infraction.GuildID
		fields["issuer_id"] = e.Infraction.IssuerID
		fields["target_id"] = e.Infraction.TargetID
		fields["infraction_type"] = string(e.Infraction.Type)
		if e.Infraction.NewRank != "" {
			fields["new_rank"] = e.Infraction.NewRank
		}
	case events.PromotionIssuedEvent:
		fields["guild_id"] = e.Promotion.GuildID
		fields["issuer_id"] = e.Promotion.IssuerID
		fields["target_id"] = e.Promotion.TargetID
		fields["old_rank"] = e.Promotion.OldRank
		fields["new_rank"] = e.Promotion.NewRank
	case events.LOARequestedEvent:
		fields["guild_id"] = e.Request.GuildID
		fields["requester_id"] = e.Request.RequesterID
		fields["start"] = e.Request.Start.Format(service.LOADateLayout)
		fields["end"] = e.Request.End.Format(service.LOADateLayout)
	case events.LOADecidedEvent:
		fields["guild_id"] = e.GuildID
		fields["message_id"] = e.MessageID
		fields["decided_by"] = e.DecidedBy
		fields["status"] = string(e.Status)
	case events.ServerStatusChangedEvent:
		fields["guild_id"] = e.Change.GuildID
		fields["issuer_id"] = e.Change.IssuerID
		fields["status"] = string(e.Change.Status)
	case events.GuildConfigSavedEvent:
		fields["guild_id"] = e.GuildID
		fields["revision"] = e.Revision
	}
	return fields
}
