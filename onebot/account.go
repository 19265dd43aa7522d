package onebot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	zero "github.com/wdvxdr1123/ZeroBot"
	"github.com/wdvxdr1123/ZeroBot/message"

	"steambot/bot"
)

type account struct {
	caller Caller
	selfID int64
}

func (a *account) PickGroup(groupID any) bot.LegacyGroup {
	return &group{caller: a.caller, groupID: groupID}
}

func (a *account) PickFriend(userID any) bot.LegacyUser {
	return &user{caller: a.caller, userID: userID}
}

func (a *account) PickUser(userID any) bot.LegacyUser {
	return &user{caller: a.caller, userID: userID}
}

func (a *account) Avatar() string {
	return AvatarURL(a.selfID)
}

type group struct {
	caller  Caller
	groupID any
}

func (g *group) PickMember(_ context.Context, userID any) (bot.LegacyMember, error) {
	return &member{caller: g.caller, groupID: g.groupID, userID: userID}, nil
}

func (g *group) MemberMap(ctx context.Context) (map[any]*bot.LegacyInfo, error) {
	data, err := call(ctx, g.caller, "get_group_member_list", zero.Params{"group_id": g.groupID})
	if err != nil {
		return nil, err
	}

	members := data.Array()
	ret := make(map[any]*bot.LegacyInfo, len(members))
	for _, m := range members {
		info := infoOf(m)
		ret[info.UserID] = info
	}
	return ret, nil
}

func (g *group) SendMsg(ctx context.Context, msg bot.Message) (bot.SendResult, error) {
	out, err := toMessage(msg)
	if err != nil {
		return bot.SendResult{}, err
	}
	data, err := call(ctx, g.caller, "send_group_msg", zero.Params{
		"group_id": g.groupID,
		"message":  out,
	})
	if err != nil {
		return bot.SendResult{}, err
	}
	return bot.SendResult{MessageID: data.Get("message_id").String()}, nil
}

type member struct {
	caller  Caller
	groupID any
	userID  any
}

func (m *member) Info(ctx context.Context) (*bot.LegacyInfo, error) {
	data, err := call(ctx, m.caller, "get_group_member_info", zero.Params{
		"group_id": m.groupID,
		"user_id":  m.userID,
		"no_cache": false,
	})
	if err != nil {
		return nil, err
	}
	return infoOf(data), nil
}

func (m *member) AvatarURL() string {
	return AvatarURL(m.userID)
}

type user struct {
	caller Caller
	userID any
}

func (u *user) Info(ctx context.Context) (*bot.LegacyInfo, error) {
	data, err := call(ctx, u.caller, "get_stranger_info", zero.Params{"user_id": u.userID})
	if err != nil {
		return nil, err
	}
	info := infoOf(data)
	info.Card = ""
	return info, nil
}

func (u *user) AvatarURL(context.Context) (string, error) {
	return AvatarURL(u.userID), nil
}

func infoOf(data gjson.Result) *bot.LegacyInfo {
	return &bot.LegacyInfo{
		UserID:   data.Get("user_id").Int(),
		Nickname: data.Get("nickname").String(),
		Card:     data.Get("card").String(),
	}
}

// toMessage converts segments to a ZeroBot message. Raw image bytes go out
// as base64 files.
func toMessage(msg bot.Message) (message.Message, error) {
	out := make(message.Message, 0, len(msg))
	for _, seg := range msg {
		switch seg.Type {
		case bot.SegmentTypeText:
			if text, ok := seg.Data["text"].(string); ok {
				out = append(out, message.Text(text))
			}
		case bot.SegmentTypeAt:
			id, err := strconv.ParseInt(fmt.Sprint(seg.Data["qq"]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid at target %v", seg.Data["qq"])
			}
			out = append(out, message.At(id))
		case bot.SegmentTypeImage:
			switch file := seg.Data["file"].(type) {
			case string:
				out = append(out, message.Image(file))
			case []byte:
				out = append(out, message.ImageBytes(file))
			default:
				return nil, fmt.Errorf("unsupported image %T", file)
			}
		}
	}
	return out, nil
}
