package util

import (
	"testing"

	"github.com/aiwolfdial/lol-spectator-server/model"
	"github.com/stretchr/testify/assert"
)

func TestDeriveRiotIDs(t *testing.T) {
	game := &model.CurrentGameInfo{
		Participants: []model.CurrentGameParticipant{
			{RiotID: "A#1"},
			{RiotID: ""},
			{RiotID: "B#2"},
		},
	}
	assert.Equal(t, []string{"A#1", "B#2"}, DeriveRiotIDs(game))
}

func TestFormatRiotIDs(t *testing.T) {
	assert.Equal(t, "[]", FormatRiotIDs(nil))
	assert.Equal(t, "[]", FormatRiotIDs([]string{}))
	assert.Equal(t, "['A#1']", FormatRiotIDs([]string{"A#1"}))
	assert.Equal(t, "['A#1', 'B#2']", FormatRiotIDs([]string{"A#1", "B#2"}))
}
