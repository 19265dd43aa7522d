package bot

import (
	"context"
	"encoding/base64"
	"fmt"
)

type MemberInfo struct {
	UID  string
	Nick string
	Card string
}

type Contact struct {
	Scene string
	Peer  string
}

const SceneGroup = "group"

// KarinBot is a single bot account of a Karin host.
type KarinBot interface {
	GetGroupMemberInfo(ctx context.Context, groupID, userID string) (*MemberInfo, error)
	GetAvatarURL(ctx context.Context, userID string) (string, error)
	GetGroupMemberList(ctx context.Context, groupID string) ([]MemberInfo, error)
}

// KarinRegistry is the global bot registry of a Karin host.
type KarinRegistry interface {
	// GetBot returns ErrUnknownBot when botID is not online.
	GetBot(botID string) (KarinBot, error)
	SendMsg(ctx context.Context, botID string, contact Contact, msg Message) (SendResult, error)
}

type karinClient struct {
	registry KarinRegistry
}

func NewKarin(registry KarinRegistry) Client {
	return &karinClient{registry: registry}
}

func (c *karinClient) Dialect() Dialect {
	return DialectKarin
}

func (c *karinClient) UserName(ctx context.Context, botID, uid, gid string) Result[string] {
	if gid == "" {
		return resultOf(uid)
	}
	b, err := c.registry.GetBot(botID)
	if err != nil {
		return fallbackOf(uid, err)
	}
	info, err := b.GetGroupMemberInfo(ctx, gid, uid)
	if err != nil {
		return fallbackOf(uid, err)
	}
	if info == nil {
		return fallbackOf(uid, fmt.Errorf("no member info for %s in %s", uid, gid))
	}
	return resultOf(firstNonEmpty(info.Card, info.Nick, info.UID, uid))
}

func (c *karinClient) UserAvatar(ctx context.Context, botID, uid, gid string) Result[string] {
	b, err := c.registry.GetBot(botID)
	if err != nil {
		return fallbackOf("", err)
	}
	avatarURL, err := b.GetAvatarURL(ctx, uid)
	if err != nil {
		return fallbackOf("", err)
	}
	if avatarURL != "" {
		return resultOf(avatarURL)
	}
	botAvatar, err := b.GetAvatarURL(ctx, botID)
	if err != nil {
		return fallbackOf("", err)
	}
	return resultOf(botAvatar)
}

func (c *karinClient) GroupMemberList(ctx context.Context, botID, gid string) Result[[]string] {
	result := []string{}
	b, err := c.registry.GetBot(botID)
	if err != nil {
		return fallbackOf(result, err)
	}
	members, err := b.GetGroupMemberList(ctx, gid)
	if err != nil {
		return fallbackOf(result, err)
	}
	for _, m := range members {
		result = append(result, m.UID)
	}
	return resultOf(result)
}

// AtTargetID takes the last mention, like Karin's at list.
func (c *karinClient) AtTargetID(at []string, id string) string {
	if len(at) > 0 {
		return at[len(at)-1]
	}
	return id
}

func (c *karinClient) SendGroupMessage(ctx context.Context, botID, gid string, msg Message) (SendResult, error) {
	return c.registry.SendMsg(ctx, botID, Contact{Scene: SceneGroup, Peer: gid}, msg)
}

func (c *karinClient) Image(data []byte) *Image {
	return &Image{Ref: base64Prefix + base64.StdEncoding.EncodeToString(data)}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
