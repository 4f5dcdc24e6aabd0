package server

import "strings"

// parseGamePath splits /games/{room} and /games/{room}/{action}.
// Two-segment actions ("round/status", "votes/status") come back joined.
func parseGamePath(path string) (string, string, bool) {
	const prefix = "/games/"
	if !strings.HasPrefix(path, prefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "", "", false
	}
	roomCode := parts[0]
	switch len(parts) {
	case 1:
		return roomCode, "", true
	case 2:
		return roomCode, parts[1], true
	case 3:
		if parts[2] == "status" && (parts[1] == "round" || parts[1] == "votes") {
			return roomCode, parts[1] + "/" + parts[2], true
		}
	}
	return "", "", false
}

func parsePlayerGamesPath(path string) (string, bool) {
	const prefix = "/players/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "games" {
		return "", false
	}
	return parts[0], true
}

func parseWebsocketPath(path string) (string, bool) {
	const prefix = "/ws/games/"
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}
