package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aiwolfdial/lol-spectator-server/model"
	"github.com/gorilla/websocket"
)

type SpectateBroadcaster struct {
	config  model.Config
	data    sync.Map
	viewers sync.Map
}

type spectateSessionLog struct {
	id        string
	filename  string
	logs      []string
	logsMu    sync.Mutex
	updatedAt time.Time
}

func NewSpectateBroadcaster(config model.Config) *SpectateBroadcaster {
	sb := &SpectateBroadcaster{
		config: config,
	}
	if err := os.MkdirAll(sb.config.Broadcast.OutputDir, 0755); err != nil {
		slog.Error("出力ディレクトリの作成に失敗しました", "error", err)
		return nil
	}
	if err := os.WriteFile(filepath.Join(sb.config.Broadcast.OutputDir, "sessions.json"), []byte("[]"), 0644); err != nil {
		slog.Error("セッション一覧ファイルの初期化に失敗しました", "error", err)
		return nil
	}
	slog.Info("スペクテイトブロードキャスターを初期化しました", "output_dir", sb.config.Broadcast.OutputDir)
	return sb
}

func (sb *SpectateBroadcaster) TrackStartSession(id string, puuid string) {
	filename := strings.ReplaceAll(sb.config.Broadcast.Filename, "{session_id}", id)
	filename = strings.ReplaceAll(filename, "{timestamp}", fmt.Sprintf("%d", time.Now().Unix()))
	filename = strings.ReplaceAll(filename, "{puuid}", puuid)

	sessionLog := &spectateSessionLog{
		id:        id,
		filename:  filename,
		logs:      make([]string, 0),
		updatedAt: time.Now(),
	}
	sb.data.Store(id, sessionLog)
}

func (sb *SpectateBroadcaster) TrackEndSession(id string) {
	if sessionLogInterface, exists := sb.data.Load(id); exists {
		sessionLog := sessionLogInterface.(*spectateSessionLog)
		sessionLog.logsMu.Lock()
		logs := make([]string, len(sessionLog.logs))
		copy(logs, sessionLog.logs)
		filename := sessionLog.filename
		sessionLog.logsMu.Unlock()

		sb.writeSessionFile(filename, logs)
		sb.writeSessionsListFile()
		sb.data.Delete(id)
	}
}

func (sb *SpectateBroadcaster) AddViewer(conn *websocket.Conn) {
	sb.viewers.Store(conn, time.Now())
	slog.Info("ビューアが接続しました", "remote_addr", conn.RemoteAddr().String())
}

func (sb *SpectateBroadcaster) ViewerCount() int {
	count := 0
	sb.viewers.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

func (sb *SpectateBroadcaster) Broadcast(packet model.SpectatePacket) {
	data, err := json.Marshal(packet)
	if err != nil {
		slog.Error("パケットのJSON化に失敗しました", "error", err)
		return
	}

	sb.viewers.Range(func(key, _ any) bool {
		conn := key.(*websocket.Conn)
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Warn("ビューアへの送信に失敗しました", "error", err)
			conn.Close()
			sb.viewers.Delete(key)
		}
		return true
	})

	if sessionLogInterface, exists := sb.data.Load(packet.SessionID); exists {
		sessionLog := sessionLogInterface.(*spectateSessionLog)
		sessionLog.logsMu.Lock()
		sessionLog.logs = append(sessionLog.logs, string(data))
		sessionLog.updatedAt = time.Now()
		logs := make([]string, len(sessionLog.logs))
		copy(logs, sessionLog.logs)
		filename := sessionLog.filename
		sessionLog.logsMu.Unlock()

		sb.writeSessionFile(filename, logs)
		sb.writeSessionsListFile()
	}
}

func (sb *SpectateBroadcaster) writeSessionsListFile() {
	type Item struct {
		ID        string    `json:"id"`
		Filename  string    `json:"filename"`
		UpdatedAt time.Time `json:"updated_at"`
	}
	items := make([]Item, 0)
	sb.data.Range(func(_, value any) bool {
		sessionLog := value.(*spectateSessionLog)
		item := Item{
			ID:        sessionLog.id,
			Filename:  sessionLog.filename,
			UpdatedAt: sessionLog.updatedAt,
		}
		items = append(items, item)
		return true
	})

	data, err := json.Marshal(items)
	if err != nil {
		slog.Error("セッション一覧のJSON生成に失敗しました", "error", err)
		return
	}
	filePath := filepath.Join(sb.config.Broadcast.OutputDir, "sessions.json")
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		slog.Error("セッション一覧ファイルの作成に失敗しました", "error", err)
		return
	}
}

func (sb *SpectateBroadcaster) writeSessionFile(filename string, logs []string) {
	filePath := filepath.Join(sb.config.Broadcast.OutputDir, fmt.Sprintf("%s.jsonl", filename))
	content := strings.Join(logs, "\n")
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		slog.Error("セッションファイルの保存に失敗しました", "error", err, "path", filePath)
		return
	}
}
