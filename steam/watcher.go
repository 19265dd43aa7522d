package steam

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"steambot/bot"
	"steambot/logging"
	"steambot/setting"
)

const (
	POLL_INTERVAL = 1 * time.Minute

	pushModeImage = 2
)

type SummaryFetcher interface {
	PlayerSummaries(ctx context.Context, steamIDs []string) ([]PlayerSummary, error)
}

// change is one thing that happened to a player between two rounds.
type change struct {
	player PlayerSummary
	lines  []string
	gameID string
}

// Watcher polls the summaries of subscribed players and pushes what changed
// to the subscribed groups.
type Watcher struct {
	scheduler *Scheduler
	api       SummaryFetcher
	client    bot.Client
	images    *ImageFetcher
	settings  *setting.Store
	state     *State

	mu        sync.Mutex
	lastRound time.Time
	now       func() time.Time
}

func NewWatcher(
	scheduler *Scheduler,
	api SummaryFetcher,
	client bot.Client,
	images *ImageFetcher,
	settings *setting.Store,
	state *State,
) *Watcher {
	return &Watcher{
		scheduler: scheduler,
		api:       api,
		client:    client,
		images:    images,
		settings:  settings,
		state:     state,
		now:       time.Now,
	}
}

func (w *Watcher) Start(ctx context.Context) error {
	err := w.scheduler.AddDurationJob(POLL_INTERVAL, PUSH_TAG, func() {
		w.Tick(ctx)
	})
	if err != nil {
		return fmt.Errorf("could not schedule push job: %w", err)
	}
	w.scheduler.Start()
	return nil
}

func (w *Watcher) Stop() error {
	w.scheduler.CancelJob(PUSH_TAG)
	return w.scheduler.Shutdown()
}

// Tick runs a push round when pushing is enabled and push.time minutes
// passed since the previous round.
func (w *Watcher) Tick(ctx context.Context) {
	if !w.settings.Bool("push.enable") {
		return
	}
	interval := time.Duration(w.settings.Float("push.time") * float64(time.Minute))

	w.mu.Lock()
	now := w.now()
	if !w.lastRound.IsZero() && now.Sub(w.lastRound) < interval {
		w.mu.Unlock()
		return
	}
	w.lastRound = now
	w.mu.Unlock()

	if err := w.Round(ctx); err != nil {
		logging.Error("push round failed", zap.Error(err))
	}
}

// Round diffs the current summaries against the last seen presence and sends
// one message per group that has something to report.
func (w *Watcher) Round(ctx context.Context) error {
	subs := w.state.Subscriptions()
	if len(subs) == 0 {
		return nil
	}

	var steamIDs []string
	for _, sub := range subs {
		if !slices.Contains(steamIDs, sub.SteamID) {
			steamIDs = append(steamIDs, sub.SteamID)
		}
	}

	players, err := w.api.PlayerSummaries(ctx, steamIDs)
	if err != nil {
		return fmt.Errorf("could not get player summaries: %w", err)
	}

	changes := make(map[string]change)
	for _, player := range players {
		if c, changed := w.diff(player); changed {
			changes[player.SteamID] = c
		}
	}
	logging.Debug("push round",
		zap.Int("subscriptions", len(subs)),
		zap.Int("players", len(players)),
		zap.Int("changes", len(changes)),
	)
	if len(changes) == 0 {
		return nil
	}

	type target struct{ botID, groupID string }
	var order []target
	pending := make(map[target][]Subscription)
	for _, sub := range subs {
		if _, changed := changes[sub.SteamID]; !changed {
			continue
		}
		if !w.allowed(sub.BotID, sub.GroupID) {
			continue
		}
		t := target{sub.BotID, sub.GroupID}
		if _, exists := pending[t]; !exists {
			order = append(order, t)
		}
		pending[t] = append(pending[t], sub)
	}

	for _, t := range order {
		msg := w.groupMessage(ctx, t.botID, t.groupID, pending[t], changes)
		if len(msg) == 0 {
			continue
		}
		if _, err := w.client.SendGroupMessage(ctx, t.botID, t.groupID, msg); err != nil {
			logging.Error("could not push status",
				zap.String("bot", t.botID),
				zap.String("group", t.groupID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// diff records player as the latest presence and describes what changed.
// The first sighting of a player only seeds the state.
func (w *Watcher) diff(player PlayerSummary) (change, bool) {
	prev, seen := w.state.GetPresence(player.SteamID)
	now := w.now()

	game := player.GameExtraInfo
	if game == "" && player.GameID != "" {
		game = player.GameID
	}

	opts := []PresenceOption{WithPersonaState(player.PersonaState), WithGame(player.GameID, game)}
	if game != "" && (!seen || prev.GameID != player.GameID) {
		opts = append(opts, WithTimeStarted(now))
	}
	if game == "" {
		opts = append(opts, WithTimeStarted(time.Time{}))
	}
	w.state.UpdatePresence(player.SteamID, opts...)

	if !seen {
		return change{}, false
	}

	c := change{player: player}
	if prev.GameID != "" && prev.GameID != player.GameID {
		played := FormatDuration(now.Sub(prev.TimeStarted).Seconds(), Seconds)
		if played != "" {
			c.lines = append(c.lines, fmt.Sprintf("结束了 %s, 游玩时长 %s", prev.Game, played))
		} else {
			c.lines = append(c.lines, fmt.Sprintf("结束了 %s", prev.Game))
		}
	}
	if player.GameID != "" && prev.GameID != player.GameID {
		c.lines = append(c.lines, fmt.Sprintf("正在玩 %s", game))
		c.gameID = player.GameID
	}
	if prev.PersonaState != player.PersonaState && w.settings.Bool("push.stateChange") {
		c.lines = append(c.lines, fmt.Sprintf("现在是 %s", PersonaStateText(player.PersonaState)))
	}
	return c, len(c.lines) > 0
}

func (w *Watcher) allowed(botID, groupID string) bool {
	return listed(botID, w.settings.Strings("push.whiteBotList"), w.settings.Strings("push.blackBotList")) &&
		listed(groupID, w.settings.Strings("push.whiteGroupList"), w.settings.Strings("push.blackGroupList"))
}

// listed applies a white list when it is not empty, then the black list.
func listed(id string, white, black []string) bool {
	if len(white) > 0 && !slices.Contains(white, id) {
		return false
	}
	return !slices.Contains(black, id)
}

func (w *Watcher) groupMessage(
	ctx context.Context,
	botID, groupID string,
	subs []Subscription,
	changes map[string]change,
) bot.Message {
	members := w.client.GroupMemberList(ctx, botID, groupID)
	if members.Err != nil {
		logging.Warn("could not list group members",
			zap.String("bot", botID),
			zap.String("group", groupID),
			zap.Error(members.Err),
		)
	}

	imageMode := w.settings.Int("push.pushMode") == pushModeImage
	var msg bot.Message
	for _, sub := range subs {
		if len(members.Value) > 0 && !slices.Contains(members.Value, sub.UserID) {
			continue
		}
		c := changes[sub.SteamID]
		name := w.client.UserName(ctx, botID, sub.UserID, groupID).Value

		text := ""
		if len(msg) > 0 {
			text = "\n"
		}
		for i, line := range c.lines {
			if i > 0 {
				text += "\n"
			}
			text += fmt.Sprintf("%s(%s) %s", name, c.player.PersonaName, line)
		}
		msg = append(msg, bot.Text(text))

		if !imageMode {
			continue
		}
		if w.settings.Bool("other.steamAvatar") {
			if img := w.images.Fetch(ctx, c.player.AvatarFull); img != nil {
				msg = append(msg, bot.ImageSegment(img))
			}
		}
		if img := w.images.Fetch(ctx, HeaderImageURL(c.gameID)); img != nil {
			msg = append(msg, bot.ImageSegment(img))
		}
	}
	return msg
}
