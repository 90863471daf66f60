package test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/aiwolfdial/lol-spectator-server/core"
	"github.com/aiwolfdial/lol-spectator-server/service"
	"github.com/stretchr/testify/assert"
)

func TestLookupPrintsRiotIDs(t *testing.T) {
	stub := &StubRiot{GameID: 1234, Participants: []string{"A#1", "B#2"}}
	server := NewStubRiotServer(t, stub)
	config := NewTestConfig(server.URL)

	var out bytes.Buffer
	err := core.RunLookup(config, TestPUUID, &out)
	assert.NoError(t, err)
	assert.Equal(t, "['A#1', 'B#2']\n", out.String())
}

func TestLookupEmptyParticipants(t *testing.T) {
	stub := &StubRiot{GameID: 1234, Participants: []string{}}
	server := NewStubRiotServer(t, stub)
	config := NewTestConfig(server.URL)

	var out bytes.Buffer
	err := core.RunLookup(config, TestPUUID, &out)
	assert.NoError(t, err)
	assert.Equal(t, "[]\n", out.String())
}

func TestLookupUnauthorized(t *testing.T) {
	stub := &StubRiot{GameID: 1234, Participants: []string{"A#1"}}
	server := NewStubRiotServer(t, stub)
	config := NewTestConfig(server.URL)
	config.Riot.APIKey = "invalid-key"

	var out bytes.Buffer
	err := core.RunLookup(config, TestPUUID, &out)
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestLookupNotInGame(t *testing.T) {
	stub := &StubRiot{StatusCode: http.StatusNotFound}
	server := NewStubRiotServer(t, stub)
	config := NewTestConfig(server.URL)

	var out bytes.Buffer
	err := core.RunLookup(config, TestPUUID, &out)
	assert.ErrorIs(t, err, service.ErrNotInGame)
	assert.Empty(t, out.String())
}
