package bot

import (
	"fmt"
	"time"

	"staffbot/bot/common"
	"staffbot/bot/features/infraction"
	"staffbot/bot/features/loa"
	"staffbot/bot/features/promotion"
	"staffbot/bot/features/serverstatus"
	"staffbot/bot/features/settings"
	"staffbot/bot/features/setup"
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token        string
	AppID        string
	SetupTimeout time.Duration
	EmbedFooter  string
}

// Metrics is what the bot reports to
type Metrics interface {
	Recorder
	setup.SessionGauge
}

type Bot struct {
	config  Config
	session *discordgo.Session
	router  *Router
}

func New(config Config, configs service.GuildConfigService, staff service.StaffService, metrics Metrics) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		config:  config,
		session: dg,
		router:  newRouter(config, configs, staff, metrics),
	}

	dg.AddHandler(bot.router.Dispatch)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.WithFields(log.Fields{
			"user":   common.UserTag(r.User),
			"guilds": len(r.Guilds),
		}).Info("Bot is ready")
	})

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func newRouter(config Config, configs service.GuildConfigService, staff service.StaffService, metrics Metrics) *Router {
	var recorder Recorder
	var gauge setup.SessionGauge
	if metrics != nil {
		recorder = metrics
		gauge = metrics
	}

	footer := config.EmbedFooter
	infractionFeature := infraction.New(configs, staff, footer)
	promotionFeature := promotion.New(configs, staff, footer)
	loaFeature := loa.New(configs, staff, footer)
	statusFeature := serverstatus.New(configs, staff, footer)
	setupFeature := setup.New(configs, config.SetupTimeout, gauge, footer)
	settingsFeature := settings.New(configs, footer)

	router := NewRouter(recorder)
	router.Command(infraction.Command().Name, infractionFeature)
	router.Command(promotion.Command().Name, promotionFeature)
	router.Command(loa.Command().Name, loaFeature)
	router.Command(serverstatus.Command().Name, statusFeature)
	router.Command(setup.Command().Name, setupFeature)
	router.Command(settings.Command().Name, settingsFeature)

	router.Component("setup", setup.Handles, setupFeature)
	router.Component("loa", loa.Handles, loaFeature)
	router.Component("server_status", serverstatus.Handles, statusFeature)
	return router
}

func (b *Bot) Close() error {
	return b.session.Close()
}
