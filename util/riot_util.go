package util

import (
	"strings"

	"github.com/aiwolfdial/lol-spectator-server/model"
)

func DeriveRiotIDs(game *model.CurrentGameInfo) []string {
	ids := make([]string, 0, len(game.Participants))
	for _, participant := range game.Participants {
		if participant.RiotID == "" {
			continue
		}
		ids = append(ids, participant.RiotID)
	}
	return ids
}

func FormatRiotIDs(ids []string) string {
	if len(ids) == 0 {
		return "[]"
	}
	quoted := make([]string, 0, len(ids))
	for _, id := range ids {
		quoted = append(quoted, "'"+id+"'")
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
