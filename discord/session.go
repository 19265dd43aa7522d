package discord

import "github.com/bwmarrin/discordgo"

// discordgo.Session interface wrapping for modularity and testing
// implements methods used in this project
type Session interface {
	Open() error
	Close() error

	// see discordgo.Session.ChannelMessageSendComplex
	ChannelMessageSendComplex(
		channelID string,
		data *discordgo.MessageSend,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)

	// see discordgo.Session.GuildMember()
	GuildMember(
		guildID string,
		userID string,
		options ...discordgo.RequestOption,
	) (*discordgo.Member, error)
	GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error)

	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	UserChannelPermissions(userID string, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error)

	AddHandler(handler interface{}) func()
	// wraps discordgo.Session.State
	GetState() *discordgo.State
}

// wrapper
type DiscordBot struct {
	*discordgo.Session
}

func NewDiscordBot(session *discordgo.Session) *DiscordBot {
	return &DiscordBot{Session: session}
}

func (bot *DiscordBot) GetState() *discordgo.State {
	return bot.State
}

// NewSession creates a bot session with the intents needed to read group
// messages and resolve members.
func NewSession(token string) (*DiscordBot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent
	session.State.TrackChannels = true
	session.State.TrackMembers = true

	return NewDiscordBot(session), nil
}
