package onebot

import (
	"context"
	"strconv"
	"strings"

	zero "github.com/wdvxdr1123/ZeroBot"
	"go.uber.org/zap"

	"steambot/bot"
	"steambot/logging"
	"steambot/steam"
)

// Listen registers a group message matcher on the ZeroBot engine that
// routes messages to commands and sends the replies back through client.
func Listen(ctx context.Context, client bot.Client, commands *steam.Commands) {
	zero.OnMessage(zero.OnlyGroup).Handle(func(zctx *zero.Ctx) {
		OnGroupMessage(ctx, zctx.Event, client, commands)
	})
}

func OnGroupMessage(ctx context.Context, ev *zero.Event, client bot.Client, commands *steam.Commands) {
	e, ok := eventFrom(ev)
	if !ok {
		return
	}

	msg, handled := commands.Handle(ctx, e)
	if !handled || len(msg) == 0 {
		return
	}
	if _, err := client.SendGroupMessage(ctx, e.BotID, e.GroupID, msg); err != nil {
		logging.Error("could not send reply", zap.String("group", e.GroupID), zap.Error(err))
	}
}

// eventFrom reads a group message sent by someone other than the bot.
// Mentions of the bot itself and of everyone are not targets.
func eventFrom(ev *zero.Event) (steam.Event, bool) {
	if ev == nil || ev.PostType != "message" || ev.MessageType != "group" || ev.UserID == ev.SelfID {
		return steam.Event{}, false
	}

	selfID := strconv.FormatInt(ev.SelfID, 10)
	e := steam.Event{
		BotID:   selfID,
		GroupID: strconv.FormatInt(ev.GroupID, 10),
		UserID:  strconv.FormatInt(ev.UserID, 10),
		IsAdmin: ev.Sender != nil && (ev.Sender.Role == "owner" || ev.Sender.Role == "admin"),
	}

	var text strings.Builder
	for _, seg := range ev.Message {
		switch seg.Type {
		case string(bot.SegmentTypeText):
			text.WriteString(seg.Data["text"])
		case string(bot.SegmentTypeAt):
			if id := seg.Data["qq"]; id != "" && id != "all" && id != selfID {
				e.At = append(e.At, id)
			}
		}
	}
	e.Text = strings.TrimSpace(text.String())
	return e, true
}
