package steam

import (
	"context"
	"strings"
	"testing"

	"steambot/bot"
	"steambot/setting"
)

func setupCommands() (*Commands, *State, *MockSummaries, *setting.Store) {
	settings := setting.NewStore(setting.Default, "")
	client := NewMockClient(bot.NewKarin(nil))
	client.names[USER_ID] = "cap_lapse"
	client.names["FRIEND"] = "friend"

	summaries := &MockSummaries{players: map[string]PlayerSummary{
		STEAM_ID: {SteamID: STEAM_ID, PersonaName: "gabe", PersonaState: 1, GameID: "570", GameExtraInfo: GAME},
	}}
	state := NewState()
	images := NewImageFetcher(&MockGetter{err: errContext}, client)
	return NewCommands(client, summaries, state, settings, images), state, summaries, settings
}

var errContext = context.Canceled

func event(text string) Event {
	return Event{BotID: BOT_ID, GroupID: GROUP_ID, UserID: USER_ID, Text: text}
}

func TestHandleIgnoresOtherMessages(t *testing.T) {
	c, _, _, _ := setupCommands()

	for _, text := range []string{"hello", "#ste", "#steamfoo"} {
		if _, handled := c.Handle(context.Background(), event(text)); handled {
			t.Errorf("expected %q to be ignored", text)
		}
	}
}

func TestBindAndStatus(t *testing.T) {
	c, state, _, _ := setupCommands()
	ctx := context.Background()

	msg, handled := c.Handle(ctx, event("#Steam绑定 22202"))
	if !handled {
		t.Fatal("expected bind to be handled")
	}
	if !strings.Contains(msg.PlainText(), STEAM_ID) || !strings.Contains(msg.PlainText(), "已开启推送") {
		t.Errorf("unexpected bind reply %q", msg.PlainText())
	}
	if steamID, _ := state.Binding(USER_ID); steamID != STEAM_ID {
		t.Errorf("expected binding to %s, got %s", STEAM_ID, steamID)
	}
	if len(state.Subscriptions()) != 1 {
		t.Error("expected default push to subscribe")
	}

	msg, _ = c.Handle(ctx, event("#steam状态"))
	text := msg.PlainText()
	for _, want := range []string{"cap_lapse(gabe)", "状态: 在线", "正在玩: Dota 2", "好友码: 22202"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected status to contain %q, got %q", want, text)
		}
	}

	e := event("#steam状态")
	e.At = []string{"FRIEND"}
	msg, _ = c.Handle(ctx, e)
	if msg.PlainText() != "对方还没有绑定steamId" {
		t.Errorf("expected mentioned user to be looked up, got %q", msg.PlainText())
	}
}

func TestBindRejectsInvalidID(t *testing.T) {
	c, state, _, _ := setupCommands()

	msg, _ := c.Handle(context.Background(), event("#steam绑定 abc"))
	if msg.PlainText() != "请输入正确的steamId或好友码" {
		t.Errorf("unexpected reply %q", msg.PlainText())
	}
	if _, exists := state.Binding(USER_ID); exists {
		t.Error("expected no binding")
	}
}

func TestBindWithoutDefaultPush(t *testing.T) {
	c, state, _, settings := setupCommands()
	settings.Set("push", "defaultPush", false)
	ctx := context.Background()

	c.Handle(ctx, event("#steam绑定 "+STEAM_ID))
	if len(state.Subscriptions()) != 0 {
		t.Error("expected no subscription without default push")
	}

	msg, _ := c.Handle(ctx, event("#steam开启推送"))
	if msg.PlainText() != "已开启推送" || len(state.Subscriptions()) != 1 {
		t.Errorf("expected push to be enabled, got %q", msg.PlainText())
	}

	msg, _ = c.Handle(ctx, event("#steam关闭推送"))
	if msg.PlainText() != "已关闭推送" || len(state.Subscriptions()) != 0 {
		t.Errorf("expected push to be disabled, got %q", msg.PlainText())
	}

	msg, _ = c.Handle(ctx, event("#steam解绑"))
	if !strings.HasPrefix(msg.PlainText(), "已解绑") {
		t.Errorf("unexpected unbind reply %q", msg.PlainText())
	}
}

func TestFriendCodeCommand(t *testing.T) {
	c, _, _, _ := setupCommands()

	msg, _ := c.Handle(context.Background(), event("#steam好友码 "+STEAM_ID))
	if !strings.Contains(msg.PlainText(), "好友码: 22202") {
		t.Errorf("unexpected reply %q", msg.PlainText())
	}
}

func TestSetCommand(t *testing.T) {
	c, _, _, settings := setupCommands()
	ctx := context.Background()

	msg, _ := c.Handle(ctx, event("#steam设置推送间隔10"))
	if msg.PlainText() != "只有管理员才能修改设置" {
		t.Errorf("expected non admins to be refused, got %q", msg.PlainText())
	}

	e := event("#steam设置推送间隔10")
	e.IsAdmin = true
	msg, _ = c.Handle(ctx, e)
	if settings.Int("push.time") != 10 {
		t.Errorf("expected push interval 10, got %d (%q)", settings.Int("push.time"), msg.PlainText())
	}

	e.Text = "#steam设置推送关闭"
	c.Handle(ctx, e)
	if settings.Bool("push.enable") {
		t.Error("expected push to be disabled")
	}

	e.Text = "#steam设置全部开启"
	c.Handle(ctx, e)
	if !settings.Bool("push.enable") || !settings.Bool("other.steamAvatar") {
		t.Error("expected every switch to be on")
	}

	e.Text = "#steam设置不存在1"
	msg, _ = c.Handle(ctx, e)
	if msg.PlainText() != "没有这个设置项" {
		t.Errorf("unexpected reply %q", msg.PlainText())
	}
}
