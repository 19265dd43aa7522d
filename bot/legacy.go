package bot

import (
	"context"
	"fmt"
	"slices"
	"strconv"
)

// LegacyInfo mirrors the info objects of legacy hosts. UserID is whatever
// id type the host uses.
type LegacyInfo struct {
	UserID   any
	Nickname string
	Card     string
}

type LegacyMember interface {
	Info(ctx context.Context) (*LegacyInfo, error)
	AvatarURL() string
}

type LegacyUser interface {
	Info(ctx context.Context) (*LegacyInfo, error)
	AvatarURL(ctx context.Context) (string, error)
}

type LegacyGroup interface {
	PickMember(ctx context.Context, userID any) (LegacyMember, error)
	MemberMap(ctx context.Context) (map[any]*LegacyInfo, error)
	SendMsg(ctx context.Context, msg Message) (SendResult, error)
}

// LegacyBot is one bot account of a legacy host, reached through pick accessors.
type LegacyBot interface {
	PickGroup(groupID any) LegacyGroup
	PickFriend(userID any) LegacyUser
	PickUser(userID any) LegacyUser
	// Avatar is the bot's own avatar url.
	Avatar() string
}

type LegacyRegistry interface {
	// Bot returns ErrUnknownBot when botID is not online.
	Bot(botID string) (LegacyBot, error)
}

// LegacyID converts an id for a legacy host: an int64 when s is a non-zero
// integer, s itself otherwise.
func LegacyID(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n != 0 {
		return n
	}
	return s
}

type legacyClient struct {
	registry LegacyRegistry
}

func NewLegacy(registry LegacyRegistry) Client {
	return &legacyClient{registry: registry}
}

func (c *legacyClient) Dialect() Dialect {
	return DialectLegacy
}

func (c *legacyClient) UserName(ctx context.Context, botID, uid, gid string) Result[string] {
	b, err := c.registry.Bot(botID)
	if err != nil {
		return fallbackOf(uid, err)
	}

	if gid != "" {
		member, err := b.PickGroup(LegacyID(gid)).PickMember(ctx, LegacyID(uid))
		if err != nil {
			return fallbackOf(uid, err)
		}
		info, err := member.Info(ctx)
		if err != nil {
			return fallbackOf(uid, err)
		}
		if info == nil {
			info = &LegacyInfo{}
		}
		return resultOf(firstNonEmpty(info.Card, info.Nickname, idString(info.UserID), uid))
	}

	info, err := b.PickFriend(LegacyID(uid)).Info(ctx)
	if err != nil {
		return fallbackOf(uid, err)
	}
	if info == nil {
		info = &LegacyInfo{}
	}
	return resultOf(firstNonEmpty(info.Nickname, idString(info.UserID), uid))
}

func (c *legacyClient) UserAvatar(ctx context.Context, botID, uid, gid string) Result[string] {
	b, err := c.registry.Bot(botID)
	if err != nil {
		return fallbackOf("", err)
	}

	if gid != "" {
		member, err := b.PickGroup(LegacyID(gid)).PickMember(ctx, LegacyID(uid))
		if err != nil {
			return fallbackOf("", err)
		}
		return resultOf(firstNonEmpty(member.AvatarURL(), b.Avatar()))
	}

	avatarURL, err := b.PickUser(LegacyID(uid)).AvatarURL(ctx)
	if err != nil {
		return fallbackOf("", err)
	}
	return resultOf(firstNonEmpty(avatarURL, b.Avatar()))
}

func (c *legacyClient) GroupMemberList(ctx context.Context, botID, gid string) Result[[]string] {
	result := []string{}
	b, err := c.registry.Bot(botID)
	if err != nil {
		return fallbackOf(result, err)
	}
	members, err := b.PickGroup(LegacyID(gid)).MemberMap(ctx)
	if err != nil {
		return fallbackOf(result, err)
	}
	for id := range members {
		result = append(result, fmt.Sprint(id))
	}
	slices.Sort(result)
	return resultOf(result)
}

// AtTargetID takes the single mention legacy hosts report.
func (c *legacyClient) AtTargetID(at []string, id string) string {
	for _, target := range at {
		if target != "" {
			return target
		}
	}
	return id
}

func (c *legacyClient) SendGroupMessage(ctx context.Context, botID, gid string, msg Message) (SendResult, error) {
	b, err := c.registry.Bot(botID)
	if err != nil {
		return SendResult{}, err
	}
	return b.PickGroup(LegacyID(gid)).SendMsg(ctx, msg)
}

func (c *legacyClient) Image(data []byte) *Image {
	return &Image{Data: data}
}

func idString(id any) string {
	if id == nil {
		return ""
	}
	s := fmt.Sprint(id)
	if s == "0" {
		return ""
	}
	return s
}
