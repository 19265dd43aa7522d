package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"steambot/bot"
	"steambot/logging"
	"steambot/steam"
)

// Listen routes guild messages to commands and sends the replies back
// through client.
func (h *Host) Listen(ctx context.Context, client bot.Client, commands *steam.Commands) func() {
	return h.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		h.OnMessageCreate(ctx, m, client, commands)
	})
}

func (h *Host) OnMessageCreate(
	ctx context.Context,
	m *discordgo.MessageCreate,
	client bot.Client,
	commands *steam.Commands,
) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	botID := h.BotID()
	if botID == "" || m.Author.ID == botID {
		return
	}

	e := steam.Event{
		BotID:   botID,
		GroupID: m.ChannelID,
		UserID:  m.Author.ID,
		Text:    removeMentions(m.Content, m.Mentions),
	}
	for _, user := range m.Mentions {
		if user.ID != botID {
			e.At = append(e.At, user.ID)
		}
	}

	perms, err := h.session.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		logging.Warn("could not get permissions",
			zap.String("user", m.Author.ID),
			zap.String("channel", m.ChannelID),
			zap.Error(err),
		)
	}
	e.IsAdmin = perms&discordgo.PermissionAdministrator != 0

	msg, handled := commands.Handle(ctx, e)
	if !handled || len(msg) == 0 {
		return
	}
	if _, err := client.SendGroupMessage(ctx, botID, m.ChannelID, msg); err != nil {
		logging.Error("could not send reply", zap.String("channel", m.ChannelID), zap.Error(err))
	}
}

func removeMentions(content string, mentions []*discordgo.User) string {
	for _, user := range mentions {
		content = strings.ReplaceAll(content, fmt.Sprintf("<@%s>", user.ID), "")
		// remove nicknames
		content = strings.ReplaceAll(content, fmt.Sprintf("<@!%s>", user.ID), "")
	}
	return strings.TrimSpace(content)
}
