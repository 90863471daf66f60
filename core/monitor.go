package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/aiwolfdial/lol-spectator-server/model"
	"github.com/aiwolfdial/lol-spectator-server/service"
	"github.com/aiwolfdial/lol-spectator-server/util"
	"github.com/oklog/ulid/v2"
)

type Monitor struct {
	config      model.Config
	client      *service.RiotClient
	broadcaster *service.SpectateBroadcaster
	sessionID   string
	lastGameID  int64
	lastPacket  *model.SpectatePacket
	mu          sync.RWMutex
}

func NewMonitor(config model.Config) *Monitor {
	return &Monitor{
		config: config,
		client: service.NewRiotClient(config),
	}
}

func (m *Monitor) SetBroadcaster(broadcaster *service.SpectateBroadcaster) {
	m.broadcaster = broadcaster
}

func (m *Monitor) LastPacket() *model.SpectatePacket {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastPacket
}

func (m *Monitor) Run(ctx context.Context, puuid string) {
	interval := time.Duration(m.config.Monitor.Interval) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	region := model.RegionFromString(m.config.Riot.Region)
	slog.Info("モニターを開始しました", "puuid", puuid, "region", region.Name, "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		m.observe(ctx, region, puuid)
		select {
		case <-ctx.Done():
			slog.Info("モニターを停止しました", "puuid", puuid)
			return
		case <-ticker.C:
		}
	}
}

func (m *Monitor) observe(ctx context.Context, region model.Region, puuid string) {
	reqCtx, cancel := context.WithTimeout(ctx, time.Duration(m.config.Riot.RequestTimeout)*time.Second)
	defer cancel()

	game, err := m.client.CurrentGameByPUUID(reqCtx, region, puuid)
	if err != nil {
		if errors.Is(err, service.ErrNotInGame) {
			m.endSession()
			return
		}
		slog.Warn("アクティブゲームの取得に失敗しました", "error", err)
		return
	}

	m.mu.Lock()
	if m.sessionID == "" || m.lastGameID != game.GameID {
		if m.sessionID != "" && m.broadcaster != nil {
			m.broadcaster.TrackEndSession(m.sessionID)
		}
		m.sessionID = ulid.Make().String()
		m.lastGameID = game.GameID
		if m.broadcaster != nil {
			m.broadcaster.TrackStartSession(m.sessionID, puuid)
		}
		slog.Info("ゲームを検出しました", "game_id", game.GameID, "session_id", m.sessionID)
	}
	sessionID := m.sessionID
	m.mu.Unlock()

	riotIDs := util.DeriveRiotIDs(game)
	packet := model.SpectatePacket{
		ID:         ulid.Make().String(),
		SessionID:  sessionID,
		PUUID:      puuid,
		Region:     region.Name,
		GameID:     game.GameID,
		GameMode:   game.GameMode,
		RiotIDs:    riotIDs,
		InGame:     true,
		ObservedAt: time.Now(),
	}

	if m.config.Monitor.BannedWordsPath != "" {
		words, err := util.LoadBannedWords(m.config.Monitor.BannedWordsPath)
		if err != nil {
			slog.Warn("禁止ワードリストの読み込みに失敗しました", "error", err)
		} else if word, found := util.FindBannedWord(riotIDs, words); found {
			packet.BannedWord = &word
			slog.Error("禁止ワードを検出しました", "word", word, "game_id", game.GameID)
		}
	}

	m.mu.Lock()
	m.lastPacket = &packet
	m.mu.Unlock()

	if m.broadcaster != nil {
		m.broadcaster.Broadcast(packet)
	}
	slog.Info("参加者を観測しました", "game_id", game.GameID, "riot_ids", riotIDs)
}

func (m *Monitor) endSession() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessionID == "" {
		return
	}
	if m.broadcaster != nil {
		m.broadcaster.TrackEndSession(m.sessionID)
	}
	slog.Info("ゲームが終了しました", "game_id", m.lastGameID, "session_id", m.sessionID)
	m.sessionID = ""
	m.lastGameID = 0
	if m.lastPacket != nil {
		packet := *m.lastPacket
		packet.ID = ulid.Make().String()
		packet.InGame = false
		packet.ObservedAt = time.Now()
		m.lastPacket = &packet
		if m.broadcaster != nil {
			m.broadcaster.Broadcast(packet)
		}
	}
}
