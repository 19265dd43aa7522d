package steam

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Subscription pushes status changes of SteamID to a group.
type Subscription struct {
	ID      string
	BotID   string
	GroupID string
	UserID  string
	SteamID string
}

// PlayerPresence is the last status the watcher saw for a steam id.
type PlayerPresence struct {
	PersonaState int
	Game         string
	GameID       string
	TimeStarted  time.Time
}

type PresenceOption func(*PlayerPresence)

func WithPersonaState(state int) PresenceOption {
	return func(p *PlayerPresence) {
		p.PersonaState = state
	}
}

func WithGame(gameID, game string) PresenceOption {
	return func(p *PlayerPresence) {
		p.GameID = gameID
		p.Game = game
	}
}

func WithTimeStarted(timeStarted time.Time) PresenceOption {
	return func(p *PlayerPresence) {
		p.TimeStarted = timeStarted
	}
}

// State is kept in memory only; bindings and subscriptions are lost on restart.
type State struct {
	bindings      map[string]string // user id -> steam id
	subscriptions map[string]Subscription
	presence      map[string]PlayerPresence
	mu            sync.RWMutex
}

func NewState() *State {
	return &State{
		bindings:      make(map[string]string),
		subscriptions: make(map[string]Subscription),
		presence:      make(map[string]PlayerPresence),
	}
}

func (s *State) Bind(userID, steamID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings[userID] = steamID
}

// Unbind drops the binding of userID and every subscription of that user.
func (s *State) Unbind(userID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	steamID, exists := s.bindings[userID]
	if !exists {
		return "", false
	}
	delete(s.bindings, userID)
	for id, sub := range s.subscriptions {
		if sub.UserID == userID {
			delete(s.subscriptions, id)
		}
	}
	return steamID, true
}

func (s *State) Binding(userID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	steamID, exists := s.bindings[userID]
	return steamID, exists
}

// Subscribe returns the id of the subscription of userID in groupID,
// creating it when needed.
func (s *State) Subscribe(botID, groupID, userID, steamID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sub := range s.subscriptions {
		if sub.GroupID == groupID && sub.UserID == userID {
			sub.BotID = botID
			sub.SteamID = steamID
			s.subscriptions[id] = sub
			return id
		}
	}
	id := uuid.New().String()
	s.subscriptions[id] = Subscription{
		ID:      id,
		BotID:   botID,
		GroupID: groupID,
		UserID:  userID,
		SteamID: steamID,
	}
	return id
}

func (s *State) Unsubscribe(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.subscriptions[id]
	delete(s.subscriptions, id)
	return exists
}

// UnsubscribeUser removes the subscription of userID in groupID.
func (s *State) UnsubscribeUser(groupID, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sub := range s.subscriptions {
		if sub.GroupID == groupID && sub.UserID == userID {
			delete(s.subscriptions, id)
			return true
		}
	}
	return false
}

// Subscriptions returns a snapshot ordered by group then user.
func (s *State) Subscriptions() []Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make([]Subscription, 0, len(s.subscriptions))
	for _, sub := range s.subscriptions {
		ret = append(ret, sub)
	}
	slices.SortFunc(ret, func(a, b Subscription) int {
		if c := cmp.Compare(a.GroupID, b.GroupID); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	return ret
}

func (s *State) UpdatePresence(steamID string, opts ...PresenceOption) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original := s.presence[steamID]
	for _, opt := range opts {
		opt(&original)
	}
	s.presence[steamID] = original
}

func (s *State) GetPresence(steamID string) (PlayerPresence, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	presence, exists := s.presence[steamID]
	return presence, exists
}
