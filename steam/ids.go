package steam

import "math/big"

// SteamIDOffset separates a friend code from its Steam64 id.
const SteamIDOffset = "76561197960265728"

var steamIDOffset, _ = new(big.Int).SetString(SteamIDOffset, 10)

// ToSteamID accepts a friend code or a Steam64 id and returns the Steam64 id.
// It reports false for empty or non numeric input.
func ToSteamID(id string) (string, bool) {
	n, ok := parseID(id)
	if !ok {
		return "", false
	}
	if n.Cmp(steamIDOffset) < 0 {
		n.Add(n, steamIDOffset)
	}
	return n.String(), true
}

// ToFriendCode subtracts the offset from a Steam64 id. Ids below the offset
// give a negative code; they are not rejected.
func ToFriendCode(steamID string) (string, bool) {
	n, ok := parseID(steamID)
	if !ok {
		return "", false
	}
	return n.Sub(n, steamIDOffset).String(), true
}

func parseID(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	return new(big.Int).SetString(s, 10)
}
