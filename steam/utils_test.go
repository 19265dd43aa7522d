package steam

import (
	"math/big"
	"testing"
)

func TestToSteamID(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "", false},
		{"abc", "", false},
		{"0", "76561197960265728", true},
		{"22202", "76561197960287930", true},
		{"76561197960287930", "76561197960287930", true},
		{"76561197960265728", "76561197960265728", true},
	}

	for _, test := range tests {
		got, ok := ToSteamID(test.in)
		if got != test.want || ok != test.ok {
			t.Errorf("ToSteamID(%q) = %q, %v, expected %q, %v", test.in, got, ok, test.want, test.ok)
		}
	}
}

func TestToFriendCode(t *testing.T) {
	if _, ok := ToFriendCode(""); ok {
		t.Error("expected empty input to be rejected")
	}
	if got, _ := ToFriendCode("76561197960287930"); got != "22202" {
		t.Errorf("expected 22202, got %s", got)
	}
	// ids below the offset are not validated
	if got, _ := ToFriendCode("100"); got != "-76561197960265628" {
		t.Errorf("expected negative friend code, got %s", got)
	}
}

func TestSteamIDRoundTrip(t *testing.T) {
	offset, _ := new(big.Int).SetString(SteamIDOffset, 10)
	friendCodes := []string{"0", "1", "22202", "1234567890", new(big.Int).Sub(offset, big.NewInt(1)).String()}
	for _, code := range friendCodes {
		steamID, _ := ToSteamID(code)
		back, _ := ToFriendCode(steamID)
		if back != code {
			t.Errorf("expected friend code %s to round trip, got %s", code, back)
		}
	}

	steamIDs := []string{SteamIDOffset, "76561198000000000", "18446744073709551615", "99999999999999999999999"}
	for _, id := range steamIDs {
		code, _ := ToFriendCode(id)
		back, _ := ToSteamID(code)
		if back != id {
			t.Errorf("expected steam id %s to round trip, got %s", id, back)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		amount float64
		unit   Unit
		want   string
	}{
		{3661, "seconds", "1小时1分钟"},
		{0, "seconds", ""},
		{59, Seconds, ""},
		{90061, "", "1天1小时1分钟"},
		{120, "minutes", "2小时"},
		{1.5, "h", "1小时30分钟"},
		{2, "days", "2天"},
		{1, "weeks", "7天"},
		{61000, "ms", "1分钟"},
		{-3600, Seconds, ""},
		{60, "fortnights", "1分钟"},
		{1e10, Seconds, "115740天17小时46分钟"},
		{1e12, Seconds, "11574074天1小时46分钟"},
		{1e7, "weeks", "70000000天"},
	}

	for _, test := range tests {
		if got := FormatDuration(test.amount, test.unit); got != test.want {
			t.Errorf("FormatDuration(%v, %q) = %q, expected %q", test.amount, test.unit, got, test.want)
		}
	}
}

func TestPersonaStateText(t *testing.T) {
	tests := map[int]string{
		0:  "离线",
		1:  "在线",
		2:  "其他",
		3:  "离开",
		4:  "离开",
		99: "其他",
	}
	for code, want := range tests {
		if got := PersonaStateText(code); got != want {
			t.Errorf("PersonaStateText(%d) = %s, expected %s", code, got, want)
		}
	}
}

func TestHeaderImageURL(t *testing.T) {
	if got := HeaderImageURL(""); got != "" {
		t.Errorf("expected empty url, got %s", got)
	}
	if got := HeaderImageURL("570"); got != "https://steamcdn-a.akamaihd.net/steam/apps/570/header.jpg" {
		t.Errorf("unexpected header url %s", got)
	}
}
