package discord

import (
	"fmt"
	"io"
	"sync"

	"github.com/bwmarrin/discordgo"
)

type attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// FOR TESTING
type MockDiscordSession struct {
	mu              sync.Mutex
	channelMessages map[string][]string
	channelFiles    map[string][]attachment
	users           map[string]*discordgo.User
	members         []*discordgo.Member
	permissions     map[string]int64
	handlers        []interface{}
	State           *discordgo.State
}

func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{
		channelMessages: make(map[string][]string),
		channelFiles:    make(map[string][]attachment),
		users:           make(map[string]*discordgo.User),
		permissions:     make(map[string]int64),
		State:           discordgo.NewState(),
	}
}

func (m *MockDiscordSession) Open() error {
	return nil
}

func (m *MockDiscordSession) Close() error {
	return nil
}

func (m *MockDiscordSession) ChannelMessageSendComplex(
	channelID string, data *discordgo.MessageSend,
	options ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channelMessages[channelID] = append(m.channelMessages[channelID], data.Content)
	for _, file := range data.Files {
		b, err := io.ReadAll(file.Reader)
		if err != nil {
			return nil, err
		}
		m.channelFiles[channelID] = append(m.channelFiles[channelID], attachment{
			Name:        file.Name,
			ContentType: file.ContentType,
			Data:        b,
		})
	}
	return &discordgo.Message{
		ID:        fmt.Sprintf("MSG%d", len(m.channelMessages[channelID])),
		ChannelID: channelID,
		Content:   data.Content,
	}, nil
}

func (m *MockDiscordSession) GuildMember(
	guildID string,
	userID string,
	options ...discordgo.RequestOption,
) (*discordgo.Member, error) {
	for _, member := range m.members {
		if member.User != nil && member.User.ID == userID {
			return member, nil
		}
	}
	return nil, fmt.Errorf("unknown member %s", userID)
}

// pages by user id like the discord api
func (m *MockDiscordSession) GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	start := 0
	if after != "" {
		for i, member := range m.members {
			if member.User.ID == after {
				start = i + 1
			}
		}
	}
	end := min(start+limit, len(m.members))
	return m.members[start:end], nil
}

func (m *MockDiscordSession) User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error) {
	if user, exists := m.users[userID]; exists {
		return user, nil
	}
	return nil, fmt.Errorf("unknown user %s", userID)
}

func (m *MockDiscordSession) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return nil, fmt.Errorf("unknown channel %s", channelID)
}

func (m *MockDiscordSession) UserChannelPermissions(userID string, channelID string, fetchOptions ...discordgo.RequestOption) (int64, error) {
	return m.permissions[userID], nil
}

func (m *MockDiscordSession) AddHandler(handler interface{}) func() {
	m.handlers = append(m.handlers, handler)
	return func() {}
}

func (m *MockDiscordSession) GetState() *discordgo.State {
	return m.State
}

func (m *MockDiscordSession) Messages(channelID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.channelMessages[channelID]...)
}
