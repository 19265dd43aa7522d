package steam

import (
	"testing"
	"time"
)

func TestSubscribe(t *testing.T) {
	s := NewState()

	id := s.Subscribe(BOT_ID, GROUP_ID, USER_ID, STEAM_ID)
	if again := s.Subscribe("OTHER_BOT", GROUP_ID, USER_ID, STEAM_ID); again != id {
		t.Error("expected one subscription per group and user")
	}
	subs := s.Subscriptions()
	if len(subs) != 1 || subs[0].BotID != "OTHER_BOT" {
		t.Errorf("expected subscription to move to the latest bot, got %+v", subs)
	}

	s.Subscribe(BOT_ID, "A_GROUP", USER_ID, STEAM_ID)
	s.Subscribe(BOT_ID, GROUP_ID, "A_USER", STEAM_ID)
	subs = s.Subscriptions()
	order := []string{"A_GROUP/" + USER_ID, GROUP_ID + "/A_USER", GROUP_ID + "/" + USER_ID}
	for i, sub := range subs {
		if got := sub.GroupID + "/" + sub.UserID; got != order[i] {
			t.Errorf("expected %s at %d, got %s", order[i], i, got)
		}
	}

	if !s.Unsubscribe(id) || s.Unsubscribe(id) {
		t.Error("expected unsubscribe to succeed once")
	}
	if len(s.Subscriptions()) != 2 {
		t.Error("expected two subscriptions left")
	}
}

func TestUnbindDropsSubscriptions(t *testing.T) {
	s := NewState()
	s.Bind(USER_ID, STEAM_ID)
	s.Subscribe(BOT_ID, GROUP_ID, USER_ID, STEAM_ID)
	s.Subscribe(BOT_ID, GROUP_ID, "OTHER", STEAM_ID)

	steamID, exists := s.Unbind(USER_ID)
	if !exists || steamID != STEAM_ID {
		t.Errorf("expected to unbind %s, got %s", STEAM_ID, steamID)
	}
	if _, exists := s.Unbind(USER_ID); exists {
		t.Error("expected second unbind to report nothing")
	}
	subs := s.Subscriptions()
	if len(subs) != 1 || subs[0].UserID != "OTHER" {
		t.Errorf("expected only other user's subscription, got %+v", subs)
	}
}

func TestUpdatePresence(t *testing.T) {
	s := NewState()
	started := time.Now()

	s.UpdatePresence(STEAM_ID, WithPersonaState(1), WithGame("570", GAME), WithTimeStarted(started))
	s.UpdatePresence(STEAM_ID, WithPersonaState(3))

	presence, exists := s.GetPresence(STEAM_ID)
	if !exists {
		t.Fatal("expected presence to exist")
	}
	if presence.PersonaState != 3 || presence.Game != GAME || !presence.TimeStarted.Equal(started) {
		t.Errorf("expected options to update only their fields, got %+v", presence)
	}
}
