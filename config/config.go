// Package config loads the process configuration of steambot.
//
// Values come from an optional config.yaml (working directory or config/),
// overridden by STEAMBOT_ prefixed environment variables. A .env file is
// loaded into the environment first when present. Plugin settings are not
// part of this; they live in the settings store under Config.SettingsDir.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"steambot/bot"
)

const (
	defaultConfigName = "config"
	envPrefix         = "STEAMBOT"
)

type Config struct {
	Dialect bot.Dialect

	DiscordToken string

	// OneBotURL is the forward websocket of the OneBot implementation.
	OneBotURL   string
	OneBotToken string

	SettingsDir string
	LogLevel    string
}

// Load reads the configuration. path selects a config file explicitly and
// may be empty.
func Load(path string) (Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("could not load .env: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// unprefixed name used by existing deployments
	v.BindEnv("discord.token", envPrefix+"_DISCORD_TOKEN", "DISCORD_TOKEN")

	v.SetDefault("bot.dialect", string(bot.DialectKarin))
	v.SetDefault("onebot.url", "ws://127.0.0.1:6700")
	v.SetDefault("settings.dir", "data/steam")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("could not read config: %w", err)
		}
	}

	dialect, err := bot.ParseDialect(v.GetString("bot.dialect"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid bot.dialect: %w", err)
	}

	cfg := Config{
		Dialect:      dialect,
		DiscordToken: strings.TrimSpace(v.GetString("discord.token")),
		OneBotURL:    strings.TrimSpace(v.GetString("onebot.url")),
		OneBotToken:  strings.TrimSpace(v.GetString("onebot.token")),
		SettingsDir:  strings.TrimSpace(v.GetString("settings.dir")),
		LogLevel:     strings.TrimSpace(v.GetString("log.level")),
	}
	if cfg.SettingsDir == "" {
		return Config{}, fmt.Errorf("settings.dir must not be empty")
	}
	return cfg, nil
}

// Validate checks what the selected host needs to connect.
func (c Config) Validate() error {
	switch c.Dialect {
	case bot.DialectKarin:
		if c.DiscordToken == "" {
			return fmt.Errorf("discord.token must be set for the %s dialect", c.Dialect)
		}
	case bot.DialectLegacy:
		if c.OneBotURL == "" {
			return fmt.Errorf("onebot.url must be set for the %s dialect", c.Dialect)
		}
		if !strings.HasPrefix(c.OneBotURL, "ws://") && !strings.HasPrefix(c.OneBotURL, "wss://") {
			return fmt.Errorf("onebot.url must be a websocket url, got %q", c.OneBotURL)
		}
	}
	return nil
}
