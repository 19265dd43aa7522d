package steam

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"steambot/bot"
	"steambot/logging"
	"steambot/setting"
)

const commandPrefix = "#steam"

const helpText = `#steam绑定 <steamId或好友码>
#steam解绑
#steam状态 [@用户]
#steam开启推送 / #steam关闭推送
#steam好友码 <steamId>
#steam设置<设置项><值> (管理员)
#steam设置全部开启 / #steam设置全部关闭 (管理员)`

// Event is a group message received by a host.
type Event struct {
	BotID   string
	GroupID string
	UserID  string
	// At lists the mentioned user ids in message order.
	At      []string
	Text    string
	IsAdmin bool
}

type Commands struct {
	client   bot.Client
	api      SummaryFetcher
	state    *State
	settings *setting.Store
	images   *ImageFetcher
}

func NewCommands(
	client bot.Client,
	api SummaryFetcher,
	state *State,
	settings *setting.Store,
	images *ImageFetcher,
) *Commands {
	return &Commands{
		client:   client,
		api:      api,
		state:    state,
		settings: settings,
		images:   images,
	}
}

// Handle answers a "#steam" command. It reports false for anything else.
func (c *Commands) Handle(ctx context.Context, e Event) (bot.Message, bool) {
	text := strings.TrimSpace(e.Text)
	if len(text) < len(commandPrefix) || !strings.EqualFold(text[:len(commandPrefix)], commandPrefix) {
		return nil, false
	}
	rest := strings.TrimSpace(text[len(commandPrefix):])

	switch {
	case rest == "帮助" || rest == "help":
		return reply(helpText), true
	case strings.HasPrefix(rest, "绑定"):
		return c.bind(e, strings.TrimSpace(strings.TrimPrefix(rest, "绑定"))), true
	case rest == "解绑":
		return c.unbind(e), true
	case strings.HasPrefix(rest, "状态"):
		return c.status(ctx, e), true
	case rest == "开启推送":
		return c.setPush(e, true), true
	case rest == "关闭推送":
		return c.setPush(e, false), true
	case strings.HasPrefix(rest, "好友码"):
		return c.friendCode(strings.TrimSpace(strings.TrimPrefix(rest, "好友码"))), true
	case strings.HasPrefix(rest, "设置"):
		return c.set(e, strings.TrimSpace(strings.TrimPrefix(rest, "设置"))), true
	}
	return nil, false
}

func reply(text string) bot.Message {
	return bot.Message{bot.Text(text)}
}

func (c *Commands) bind(e Event, arg string) bot.Message {
	steamID, ok := ToSteamID(arg)
	if !ok {
		return reply("请输入正确的steamId或好友码")
	}
	c.state.Bind(e.UserID, steamID)
	friendCode, _ := ToFriendCode(steamID)

	text := fmt.Sprintf("绑定成功\nsteamId: %s\n好友码: %s", steamID, friendCode)
	if e.GroupID != "" && c.settings.Bool("push.defaultPush") {
		c.state.Subscribe(e.BotID, e.GroupID, e.UserID, steamID)
		text += "\n已开启推送"
	}
	return reply(text)
}

func (c *Commands) unbind(e Event) bot.Message {
	steamID, exists := c.state.Unbind(e.UserID)
	if !exists {
		return reply("你还没有绑定steamId")
	}
	return reply("已解绑 " + steamID)
}

func (c *Commands) setPush(e Event, on bool) bot.Message {
	if e.GroupID == "" {
		return reply("请在群聊中使用")
	}
	if !on {
		if c.state.UnsubscribeUser(e.GroupID, e.UserID) {
			return reply("已关闭推送")
		}
		return reply("本群没有开启推送")
	}
	steamID, exists := c.state.Binding(e.UserID)
	if !exists {
		return reply("你还没有绑定steamId")
	}
	c.state.Subscribe(e.BotID, e.GroupID, e.UserID, steamID)
	return reply("已开启推送")
}

func (c *Commands) friendCode(arg string) bot.Message {
	steamID, ok := ToSteamID(arg)
	if !ok {
		return reply("请输入正确的steamId")
	}
	code, _ := ToFriendCode(steamID)
	return reply(fmt.Sprintf("steamId: %s\n好友码: %s", steamID, code))
}

func (c *Commands) status(ctx context.Context, e Event) bot.Message {
	target := c.client.AtTargetID(e.At, e.UserID)
	steamID, exists := c.state.Binding(target)
	if !exists {
		if target == e.UserID {
			return reply("你还没有绑定steamId")
		}
		return reply("对方还没有绑定steamId")
	}

	players, err := c.api.PlayerSummaries(ctx, []string{steamID})
	if err != nil {
		logging.Error("could not get player summary", zap.String("steam_id", steamID), zap.Error(err))
		if errors.Is(err, ErrMissingAPIKey) {
			return reply("未设置Steam Web API Key")
		}
		return reply("获取状态失败, 请稍后再试")
	}
	if len(players) == 0 {
		return reply("没有找到这个steam账号")
	}
	player := players[0]

	name := c.client.UserName(ctx, e.BotID, target, e.GroupID).Value
	friendCode, _ := ToFriendCode(player.SteamID)
	lines := []string{
		fmt.Sprintf("%s(%s)", name, player.PersonaName),
		"状态: " + PersonaStateText(player.PersonaState),
	}
	if player.InGame() {
		game := player.GameExtraInfo
		if game == "" {
			game = player.GameID
		}
		line := "正在玩: " + game
		if presence, seen := c.state.GetPresence(player.SteamID); seen && presence.GameID == player.GameID && !presence.TimeStarted.IsZero() {
			if played := FormatDuration(time.Since(presence.TimeStarted).Seconds(), Seconds); played != "" {
				line += " (" + played + ")"
			}
		}
		lines = append(lines, line)
	}
	lines = append(lines, "好友码: "+friendCode)

	msg := reply(strings.Join(lines, "\n"))
	if c.settings.Bool("other.steamAvatar") {
		if img := c.images.Fetch(ctx, player.AvatarFull); img != nil {
			msg = append(msg, bot.ImageSegment(img))
		}
	}
	return msg
}

func (c *Commands) set(e Event, arg string) bot.Message {
	if !e.IsAdmin {
		return reply("只有管理员才能修改设置")
	}

	switch arg {
	case "全部开启", "全部关闭":
		on := arg == "全部开启"
		if err := c.settings.SetAll(on); err != nil {
			logging.Error("could not save settings", zap.Error(err))
			return reply("保存设置失败")
		}
		return reply("已" + strings.TrimPrefix(arg, "全部") + "全部设置")
	}

	flat := c.settings.Schema().FlatMap()
	keys := make([]string, 0, len(flat))
	for key := range flat {
		keys = append(keys, key)
	}
	// longest first so "推送间隔" is not read as "推送" + "间隔"
	sort.Slice(keys, func(i, j int) bool {
		return len(keys[i]) > len(keys[j])
	})

	for _, key := range keys {
		if !strings.HasPrefix(arg, key) {
			continue
		}
		entry, err := c.settings.SetByKey(key, strings.TrimPrefix(arg, key))
		if err != nil {
			return reply(fmt.Sprintf("设置%s失败: %v", key, err))
		}
		v, _ := c.settings.Get(entry.Path())
		return reply(fmt.Sprintf("%s已设置为 %v", entry.Title, v))
	}
	return reply("没有这个设置项")
}
