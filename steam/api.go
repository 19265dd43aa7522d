package steam

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"steambot/setting"
)

const playerSummariesBatch = 100

var ErrMissingAPIKey = errors.New("steam web api key is not set")

// https://developer.valvesoftware.com/wiki/Steam_Web_API#GetPlayerSummaries_.28v0002.29
type PlayerSummary struct {
	SteamID       string `json:"steamid"`
	PersonaName   string `json:"personaname"`
	PersonaState  int    `json:"personastate"`
	AvatarFull    string `json:"avatarfull"`
	GameID        string `json:"gameid,omitempty"`
	GameExtraInfo string `json:"gameextrainfo,omitempty"`
	LastLogoff    int64  `json:"lastlogoff,omitempty"`
}

// InGame reports whether the player is running a game.
func (p PlayerSummary) InGame() bool {
	return p.GameID != ""
}

type playerSummariesResponse struct {
	Response struct {
		Players []PlayerSummary `json:"players"`
	} `json:"response"`
}

// API is a Steam Web API client. The key is read from steam.apiKey on each call.
type API struct {
	getter   Getter
	settings *setting.Store
}

func NewAPI(getter Getter, settings *setting.Store) *API {
	return &API{getter: getter, settings: settings}
}

// PlayerSummaries looks up players in batches of 100. Unknown ids are
// missing from the result.
func (a *API) PlayerSummaries(ctx context.Context, steamIDs []string) ([]PlayerSummary, error) {
	key := a.settings.String("steam.apiKey")
	if key == "" {
		return nil, ErrMissingAPIKey
	}

	var players []PlayerSummary
	for start := 0; start < len(steamIDs); start += playerSummariesBatch {
		end := min(start+playerSummariesBatch, len(steamIDs))

		params := url.Values{}
		params.Set("key", key)
		params.Set("steamids", strings.Join(steamIDs[start:end], ","))

		var resp playerSummariesResponse
		err := GetJSON(ctx, a.getter, "ISteamUser/GetPlayerSummaries/v2/", &resp, WithParams(params))
		if err != nil {
			return nil, err
		}
		players = append(players, resp.Response.Players...)
	}
	return players, nil
}

// PlayerSummary looks up a single player.
func (a *API) PlayerSummary(ctx context.Context, steamID string) (*PlayerSummary, error) {
	players, err := a.PlayerSummaries(ctx, []string{steamID})
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		if p.SteamID == steamID {
			return &p, nil
		}
	}
	return nil, errors.New("player not found: " + steamID)
}
