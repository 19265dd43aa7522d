package steam

import "fmt"

var personaStates = map[int]string{
	0: "离线",
	1: "在线",
	3: "离开",
	4: "离开",
}

// PersonaStateText maps a Steam persona state code to its label.
func PersonaStateText(state int) string {
	if text, ok := personaStates[state]; ok {
		return text
	}
	return "其他"
}

// HeaderImageURL is the store header image of an app, "" without an app id.
func HeaderImageURL(appID string) string {
	if appID == "" {
		return ""
	}
	return fmt.Sprintf("https://steamcdn-a.akamaihd.net/steam/apps/%s/header.jpg", appID)
}
