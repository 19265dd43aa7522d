package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	zero "github.com/wdvxdr1123/ZeroBot"
	"github.com/wdvxdr1123/ZeroBot/driver"
	"go.uber.org/zap"

	"steambot/bot"
	"steambot/config"
	"steambot/discord"
	"steambot/logging"
	"steambot/onebot"
	"steambot/setting"
	"steambot/steam"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to the chat host and start pushing",
	Long: `Connect to the configured chat host, answer "#steam" commands and poll
Steam for the presence of subscribed users.`,
	Example: `  # Discord
  STEAMBOT_DISCORD_TOKEN=... steambot run

  # go-cqhttp with a config file
  steambot run --config /etc/steambot/config.yaml`,
	RunE: runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("could not initialize logging: %w", err)
	}
	defer logging.Sync()

	settings := setting.NewStore(setting.Default, cfg.SettingsDir)
	if err := settings.Load(); err != nil {
		return fmt.Errorf("could not load settings: %w", err)
	}
	defer func() {
		if err := settings.Save(); err != nil {
			logging.Error("could not save settings", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state := steam.NewState()
	api := steam.NewAPI(steam.NewRequester(settings), settings)

	var client bot.Client
	switch cfg.Dialect {
	case bot.DialectKarin:
		session, err := discord.NewSession(cfg.DiscordToken)
		if err != nil {
			return fmt.Errorf("unable to get discord client: %w", err)
		}
		host := discord.NewHost(session)
		client = bot.NewKarin(host)
		host.Listen(ctx, client, newCommands(client, api, state, settings))

		if err := session.Open(); err != nil {
			return fmt.Errorf("error unable to open discord session %w", err)
		}
		defer session.Close()

	case bot.DialectLegacy:
		client = bot.NewLegacy(onebot.NewRegistry())
		onebot.Listen(ctx, client, newCommands(client, api, state, settings))

		go zero.Run(&zero.Config{
			NickName:      []string{"steambot"},
			CommandPrefix: "#",
			Driver:        []zero.Driver{driver.NewWebSocketClient(cfg.OneBotURL, cfg.OneBotToken)},
		})
		logging.Info("connecting to onebot", zap.String("url", cfg.OneBotURL))
	}

	scheduler, err := steam.NewScheduler()
	if err != nil {
		return fmt.Errorf("could not create scheduler: %w", err)
	}
	watcher := steam.NewWatcher(scheduler, api, client, steam.NewImageFetcher(steam.NewRequester(settings), client), settings, state)
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	logging.Info("bot is now running, press CTRL+C to exit", zap.String("dialect", string(cfg.Dialect)))
	<-ctx.Done()
	logging.Info("shutting down")
	return nil
}

func newCommands(client bot.Client, api *steam.API, state *steam.State, settings *setting.Store) *steam.Commands {
	return steam.NewCommands(client, api, state, settings, steam.NewImageFetcher(steam.NewRequester(settings), client))
}
