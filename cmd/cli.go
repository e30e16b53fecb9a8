package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"staffbot/bot"
	"staffbot/config"
	"staffbot/database"
	"staffbot/models"
	"staffbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// NewApp builds the command line interface
func NewApp() *cli.App {
	return &cli.App{
		Name:  "staffbot",
		Usage: "Discord staff management bot",
		Before: func(c *cli.Context) error {
			config.ConfigureLogging(config.Get())
			return nil
		},
		Action: runAction,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "connect to Discord and serve commands",
				Action: runAction,
			},
			newMigrateCommand(),
			newDeployCommandsCommand(),
			newConfigCommand(),
		},
	}
}

func runAction(c *cli.Context) error {
	return Run(c.Context, config.Get())
}

func newMigrateCommand() *cli.Command {
	databaseURL := func() (string, error) {
		cfg := config.Get()
		if cfg.DatabaseURL == "" {
			return "", fmt.Errorf("DATABASE_URL is required for migrations")
		}
		return cfg.GetDatabaseURL(), nil
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations for the postgres store",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					url, err := databaseURL()
					if err != nil {
						return err
					}
					return database.MigrateUp(url)
				},
			},
			{
				Name:      "down",
				Usage:     "roll back migrations",
				ArgsUsage: "[steps]",
				Action: func(c *cli.Context) error {
					steps := 1
					if c.Args().Present() {
						n, err := strconv.Atoi(c.Args().First())
						if err != nil || n < 1 {
							return fmt.Errorf("invalid step count %q", c.Args().First())
						}
						steps = n
					}
					url, err := databaseURL()
					if err != nil {
						return err
					}
					return database.MigrateDown(url, steps)
				},
			},
			{
				Name:  "status",
				Usage: "show the current migration version",
				Action: func(c *cli.Context) error {
					url, err := databaseURL()
					if err != nil {
						return err
					}
					status, err := database.GetMigrationStatus(url)
					if err != nil {
						return err
					}
					if !status.Applied {
						fmt.Fprintln(c.App.Writer, "No migrations applied")
						return nil
					}
					fmt.Fprintf(c.App.Writer, "Version: %d, Dirty: %t\n", status.Version, status.Dirty)
					return nil
				},
			},
		},
	}
}

func newDeployCommandsCommand() *cli.Command {
	return &cli.Command{
		Name:  "deploy-commands",
		Usage: "register slash commands with Discord",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "guild",
				Usage: "guild to register commands in; defaults to GUILD_ID, empty for global",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Get()
			if cfg.DiscordToken == "" {
				return fmt.Errorf("DISCORD_TOKEN is required")
			}

			guildID := c.String("guild")
			if !c.IsSet("guild") {
				guildID = cfg.GuildID
			}

			session, err := discordgo.New("Bot " + cfg.DiscordToken)
			if err != nil {
				return fmt.Errorf("error creating discord session: %w", err)
			}

			log.Infof("Started refreshing %d application (/) commands.", len(bot.Commands()))
			return bot.DeployCommands(session, cfg.AppID, guildID)
		},
	}
}

func newConfigCommand() *cli.Command {
	guildFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:  "guild",
			Usage: "guild id, or \"default\" for the fallback entry",
			Value: models.DefaultGuildKey,
		}
	}

	return &cli.Command{
		Name:  "config",
		Usage: "export or import guild configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "export",
				Usage: "print a guild's stored configuration",
				Flags: []cli.Flag{
					guildFlag(),
					&cli.StringFlag{Name: "format", Usage: "json or yaml", Value: string(models.FormatJSON)},
				},
				Action: func(c *cli.Context) error {
					format, err := models.ParseFormat(c.String("format"))
					if err != nil {
						return err
					}

					repo, closeStore, err := OpenStore(c.Context, config.Get())
					if err != nil {
						return err
					}
					defer closeStore()

					return ExportConfig(c.Context, repo, c.String("guild"), format, c.App.Writer)
				},
			},
			{
				Name:  "import",
				Usage: "replace a guild's configuration from a JSON or YAML file",
				Flags: []cli.Flag{
					guildFlag(),
					&cli.StringFlag{Name: "file", Usage: "path to the document", Required: true},
				},
				Action: func(c *cli.Context) error {
					path := c.String("file")
					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					format, err := models.ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
					if err != nil {
						return err
					}

					repo, closeStore, err := OpenStore(c.Context, config.Get())
					if err != nil {
						return err
					}
					defer closeStore()

					configs := service.NewGuildConfigService(repo, nil, nil)
					cfg, err := ImportConfig(c.Context, repo, configs, c.String("guild"), data, format)
					if err != nil {
						return err
					}

					fmt.Fprintf(c.App.Writer, "Imported configuration for %s at revision %d\n", c.String("guild"), cfg.Revision)
					return nil
				},
			},
		},
	}
}
