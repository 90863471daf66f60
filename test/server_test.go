package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/aiwolfdial/lol-spectator-server/model"
	"github.com/stretchr/testify/assert"
)

func TestServerHealth(t *testing.T) {
	stub := &StubRiot{GameID: 1234, Participants: []string{"A#1", "B#2"}}
	riot := NewStubRiotServer(t, stub)
	config := NewTestConfig(riot.URL)
	baseURL := launchAsyncServer(t, config)

	resp, err := http.Get(baseURL + "/api/health")
	if err != nil {
		t.Fatalf("ヘルスチェックに失敗しました: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestServerSpectate(t *testing.T) {
	stub := &StubRiot{GameID: 1234, Participants: []string{"A#1", "B#2"}}
	riot := NewStubRiotServer(t, stub)
	config := NewTestConfig(riot.URL)
	baseURL := launchAsyncServer(t, config)

	resp, err := http.Get(baseURL + "/api/spectate/" + TestPUUID)
	if err != nil {
		t.Fatalf("スペクテイトAPIの呼び出しに失敗しました: %v", err)
	}
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		GameID  int64    `json:"game_id"`
		Region  string   `json:"region"`
		RiotIDs []string `json:"riot_ids"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("レスポンスのパースに失敗しました: %v", err)
	}
	assert.Equal(t, int64(1234), result.GameID)
	assert.Equal(t, "jp1", result.Region)
	assert.Equal(t, []string{"A#1", "B#2"}, result.RiotIDs)
}

func TestServerSpectateNotInGame(t *testing.T) {
	stub := &StubRiot{StatusCode: http.StatusNotFound}
	riot := NewStubRiotServer(t, stub)
	config := NewTestConfig(riot.URL)
	baseURL := launchAsyncServer(t, config)

	resp, err := http.Get(baseURL + "/api/spectate/" + TestPUUID)
	if err != nil {
		t.Fatalf("スペクテイトAPIの呼び出しに失敗しました: %v", err)
	}
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServerAccount(t *testing.T) {
	stub := &StubRiot{
		Account: model.Account{PUUID: TestPUUID, GameName: "Example", TagLine: "JP1"},
	}
	riot := NewStubRiotServer(t, stub)
	config := NewTestConfig(riot.URL)
	baseURL := launchAsyncServer(t, config)

	resp, err := http.Get(baseURL + "/api/account/Example/JP1")
	if err != nil {
		t.Fatalf("アカウントAPIの呼び出しに失敗しました: %v", err)
	}
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var account struct {
		PUUID string `json:"puuid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		t.Fatalf("レスポンスのパースに失敗しました: %v", err)
	}
	assert.Equal(t, TestPUUID, account.PUUID)
}

func TestServerBannedWords(t *testing.T) {
	stub := &StubRiot{GameID: 1234, Participants: []string{"A#1"}}
	riot := NewStubRiotServer(t, stub)
	config := NewTestConfig(riot.URL)
	wordsPath := filepath.Join(t.TempDir(), "banned_words.txt")
	if err := os.WriteFile(wordsPath, []byte("bad\nworse\n"), 0644); err != nil {
		t.Fatalf("禁止ワードファイルの作成に失敗しました: %v", err)
	}
	config.Monitor.BannedWordsPath = wordsPath
	baseURL := launchAsyncServer(t, config)

	resp, err := http.Get(baseURL + "/api/banned-words")
	if err != nil {
		t.Fatalf("禁止ワードAPIの呼び出しに失敗しました: %v", err)
	}
	defer resp.Body.Close()
	var result struct {
		Words []string `json:"words"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("レスポンスのパースに失敗しました: %v", err)
	}
	assert.Equal(t, []string{"bad", "worse"}, result.Words)

	payload, _ := json.Marshal(map[string][]string{"words": {"bad", "worse", "worst"}})
	postResp, err := http.Post(baseURL+"/api/banned-words", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("禁止ワードAPIの更新に失敗しました: %v", err)
	}
	defer postResp.Body.Close()
	assert.Equal(t, http.StatusOK, postResp.StatusCode)

	data, err := os.ReadFile(wordsPath)
	assert.NoError(t, err)
	assert.Equal(t, "bad\nworse\nworst", string(data))
}
