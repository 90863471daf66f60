package test

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aiwolfdial/lol-spectator-server/core"
	"github.com/aiwolfdial/lol-spectator-server/model"
)

const TestAPIKey = "RGAPI-test-key"
const TestPUUID = "test-puuid"

type StubRiot struct {
	GameID       int64
	Participants []string
	StatusCode   int
	Account      model.Account
	mu           sync.Mutex
	lastPath     string
}

func (s *StubRiot) SetStatusCode(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StatusCode = code
}

func (s *StubRiot) statusCode() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.StatusCode
}

func (s *StubRiot) LastPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPath
}

func (s *StubRiot) setLastPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPath = path
}

func NewStubRiotServer(t *testing.T, stub *StubRiot) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.setLastPath(r.URL.Path)
		if r.Header.Get("X-Riot-Token") != TestAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch {
		case strings.HasPrefix(r.URL.Path, "/lol/spectator/v5/active-games/by-summoner/"):
			if code := stub.statusCode(); code != 0 && code != http.StatusOK {
				w.WriteHeader(code)
				return
			}
			game := model.CurrentGameInfo{
				GameID:     stub.GameID,
				GameMode:   "CLASSIC",
				PlatformID: "JP1",
			}
			for i, riotID := range stub.Participants {
				game.Participants = append(game.Participants, model.CurrentGameParticipant{
					PUUID:  "puuid-" + strconv.Itoa(i),
					RiotID: riotID,
				})
			}
			json.NewEncoder(w).Encode(game)
		case strings.HasPrefix(r.URL.Path, "/riot/account/v1/accounts/by-riot-id/"):
			json.NewEncoder(w).Encode(stub.Account)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func NewTestConfig(baseURL string) *model.Config {
	config := model.DefaultConfig()
	config.Riot.APIKey = TestAPIKey
	config.Riot.BaseURL = baseURL
	config.Riot.RequestTimeout = 5
	return config
}

func launchAsyncServer(t *testing.T, config *model.Config) string {
	port := getAvailableTcpPort(config.Server.Web.Host)
	config.Server.Web.Port = port
	go func() {
		server, err := core.NewServer(*config)
		if err != nil {
			return
		}
		server.Run()
	}()
	time.Sleep(1 * time.Second)
	return "http://" + config.Server.Web.Host + ":" + strconv.Itoa(port)
}

func getAvailableTcpPort(host string) int {
	for port := 49152; port <= 65535; port++ {
		listener, err := net.Listen("tcp", host+":"+strconv.Itoa(port))
		if err == nil {
			listener.Close()
			return port
		}
	}
	return 0
}
