package steam

import (
	"context"
	"errors"
	"sync"

	"steambot/bot"
)

// FOR TESTING
type MockGetter struct {
	mu        sync.Mutex
	calls     []string
	options   []requestOptions
	responses map[string][]byte
	// failures makes the first n calls fail
	failures int
	err      error
}

func (m *MockGetter) Get(_ context.Context, rawURL string, opts ...RequestOption) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, rawURL)
	m.options = append(m.options, buildOptions(opts))
	if m.err != nil {
		return nil, m.err
	}
	if m.failures > 0 {
		m.failures--
		return nil, errors.New("connection reset")
	}
	return &Response{Status: 200, Data: m.responses[rawURL]}, nil
}

// Options returns the options each call resolved to.
func (m *MockGetter) Options() []requestOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]requestOptions{}, m.options...)
}

func (m *MockGetter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type sentMessage struct {
	BotID   string
	GroupID string
	Message bot.Message
}

type MockClient struct {
	bot.Client // provides Dialect, AtTargetID and Image

	mu      sync.Mutex
	names   map[string]string
	members map[string][]string
	sent    []sentMessage
	sendErr error
}

func NewMockClient(dialect bot.Client) *MockClient {
	return &MockClient{
		Client:  dialect,
		names:   make(map[string]string),
		members: make(map[string][]string),
	}
}

func (m *MockClient) UserName(_ context.Context, botID, uid, gid string) bot.Result[string] {
	if name, exists := m.names[uid]; exists {
		return bot.Result[string]{Value: name}
	}
	return bot.Result[string]{Value: uid, Fallback: true, Err: errors.New("unknown user")}
}

func (m *MockClient) UserAvatar(_ context.Context, botID, uid, gid string) bot.Result[string] {
	return bot.Result[string]{}
}

func (m *MockClient) GroupMemberList(_ context.Context, botID, gid string) bot.Result[[]string] {
	members, exists := m.members[gid]
	if !exists {
		return bot.Result[[]string]{Value: []string{}, Fallback: true, Err: errors.New("unknown group")}
	}
	return bot.Result[[]string]{Value: members}
}

func (m *MockClient) SendGroupMessage(_ context.Context, botID, gid string, msg bot.Message) (bot.SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return bot.SendResult{}, m.sendErr
	}
	m.sent = append(m.sent, sentMessage{BotID: botID, GroupID: gid, Message: msg})
	return bot.SendResult{MessageID: "1"}, nil
}

func (m *MockClient) Sent() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMessage{}, m.sent...)
}

type MockSummaries struct {
	mu      sync.Mutex
	players map[string]PlayerSummary
	calls   int
	err     error
}

func (m *MockSummaries) PlayerSummaries(_ context.Context, steamIDs []string) ([]PlayerSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var ret []PlayerSummary
	for _, id := range steamIDs {
		if p, exists := m.players[id]; exists {
			ret = append(ret, p)
		}
	}
	return ret, nil
}

func (m *MockSummaries) Set(p PlayerSummary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.SteamID] = p
}
