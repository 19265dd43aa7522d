// Package discord runs the plugin on a Discord bot account. A text channel
// plays the part of a group: group ids are channel ids and the guild is
// resolved from the session state.
package discord

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"

	"steambot/bot"
)

const memberPageSize = 1000

// Host exposes a session as a Karin bot registry holding a single bot.
type Host struct {
	session Session
}

func NewHost(session Session) *Host {
	return &Host{session: session}
}

// BotID is the id of the logged in account, empty before the session is ready.
func (h *Host) BotID() string {
	state := h.session.GetState()
	if state == nil || state.User == nil {
		return ""
	}
	return state.User.ID
}

func (h *Host) GetBot(botID string) (bot.KarinBot, error) {
	if botID == "" || botID != h.BotID() {
		return nil, fmt.Errorf("%w: %s", bot.ErrUnknownBot, botID)
	}
	return &account{host: h}, nil
}

func (h *Host) SendMsg(ctx context.Context, botID string, contact bot.Contact, msg bot.Message) (bot.SendResult, error) {
	if _, err := h.GetBot(botID); err != nil {
		return bot.SendResult{}, err
	}
	if contact.Scene != bot.SceneGroup {
		return bot.SendResult{}, fmt.Errorf("unsupported scene %q", contact.Scene)
	}

	data, err := messageSend(msg)
	if err != nil {
		return bot.SendResult{}, err
	}
	sent, err := h.session.ChannelMessageSendComplex(contact.Peer, data, discordgo.WithContext(ctx))
	if err != nil {
		return bot.SendResult{}, fmt.Errorf("could not send message to %s: %w", contact.Peer, err)
	}
	if sent == nil {
		return bot.SendResult{}, nil
	}
	return bot.SendResult{MessageID: sent.ID}, nil
}

func (h *Host) guildOf(ctx context.Context, channelID string) (string, error) {
	if channel, err := h.session.GetState().Channel(channelID); err == nil {
		return channel.GuildID, nil
	}
	channel, err := h.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("could not get channel %s: %w", channelID, err)
	}
	if channel.GuildID == "" {
		return "", fmt.Errorf("channel %s is not in a guild", channelID)
	}
	return channel.GuildID, nil
}

func (h *Host) member(ctx context.Context, guildID, userID string) (*discordgo.Member, error) {
	if member, err := h.session.GetState().Member(guildID, userID); err == nil {
		return member, nil
	}
	return h.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
}

// account is the KarinBot view of the session.
type account struct {
	host *Host
}

func (a *account) GetGroupMemberInfo(ctx context.Context, channelID, userID string) (*bot.MemberInfo, error) {
	guildID, err := a.host.guildOf(ctx, channelID)
	if err != nil {
		return nil, err
	}
	member, err := a.host.member(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("could not get member %s: %w", userID, err)
	}

	info := &bot.MemberInfo{UID: userID, Card: member.Nick}
	if member.User != nil {
		info.Nick = displayName(member.User)
	}
	return info, nil
}

func (a *account) GetAvatarURL(ctx context.Context, userID string) (string, error) {
	user, err := a.host.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("could not get user %s: %w", userID, err)
	}
	if user.Avatar == "" {
		return "", nil
	}
	return user.AvatarURL(""), nil
}

func (a *account) GetGroupMemberList(ctx context.Context, channelID string) ([]bot.MemberInfo, error) {
	guildID, err := a.host.guildOf(ctx, channelID)
	if err != nil {
		return nil, err
	}

	var ret []bot.MemberInfo
	after := ""
	for {
		members, err := a.host.session.GuildMembers(guildID, after, memberPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("could not list members of %s: %w", guildID, err)
		}
		for _, member := range members {
			if member.User == nil {
				continue
			}
			ret = append(ret, bot.MemberInfo{
				UID:  member.User.ID,
				Nick: displayName(member.User),
				Card: member.Nick,
			})
			after = member.User.ID
		}
		if len(members) < memberPageSize {
			return ret, nil
		}
	}
}

func displayName(user *discordgo.User) string {
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// messageSend flattens segments into one discord message. Images become
// attachments in segment order.
func messageSend(msg bot.Message) (*discordgo.MessageSend, error) {
	var content strings.Builder
	data := &discordgo.MessageSend{}

	for _, seg := range msg {
		switch seg.Type {
		case bot.SegmentTypeText:
			if text, ok := seg.Data["text"].(string); ok {
				content.WriteString(text)
			}
		case bot.SegmentTypeAt:
			if id, ok := seg.Data["qq"]; ok {
				fmt.Fprintf(&content, "<@%v>", id)
			}
		case bot.SegmentTypeImage:
			img := &bot.Image{}
			switch file := seg.Data["file"].(type) {
			case string:
				img.Ref = file
			case []byte:
				img.Data = file
			default:
				return nil, fmt.Errorf("unsupported image %T", file)
			}
			b, err := img.Bytes()
			if err != nil {
				return nil, err
			}
			contentType := http.DetectContentType(b)
			data.Files = append(data.Files, &discordgo.File{
				Name:        fmt.Sprintf("image%d.%s", len(data.Files)+1, imageExt(contentType)),
				ContentType: contentType,
				Reader:      bytes.NewReader(b),
			})
		}
	}

	data.Content = content.String()
	return data, nil
}

func imageExt(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return "jpg"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	case "image/bmp":
		return "bmp"
	}
	return "png"
}
