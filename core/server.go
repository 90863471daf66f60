package core

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/aiwolfdial/lol-spectator-server/model"
	"github.com/aiwolfdial/lol-spectator-server/service"
	"github.com/aiwolfdial/lol-spectator-server/util"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Server struct {
	config        model.Config
	upgrader      websocket.Upgrader
	client        *service.RiotClient
	broadcaster   *service.SpectateBroadcaster
	monitor       *Monitor
	cancelMonitor context.CancelFunc
	signaled      atomic.Bool
}

func NewServer(config model.Config) (*Server, error) {
	if config.Riot.APIKey == "" {
		return nil, errors.New("RiotAPIキーが設定されていません")
	}
	server := &Server{
		config: config,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		client: service.NewRiotClient(config),
	}
	if config.Broadcast.Enable {
		server.broadcaster = service.NewSpectateBroadcaster(config)
	}
	if config.Monitor.Enable && config.Monitor.PUUID != "" {
		server.monitor = NewMonitor(config)
		if server.broadcaster != nil {
			server.monitor.SetBroadcaster(server.broadcaster)
		}
	}
	return server, nil
}

func (s *Server) Run() {
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Header("Server", "lol-spectator-server/"+Version.Version+" "+runtime.Version()+" ("+runtime.GOOS+"; "+runtime.GOARCH+")")

		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Ngrok-Skip-Browser-Warning")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := router.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/version", s.handleVersion)
	api.GET("/status", s.handleStatus)
	api.GET("/spectate/:puuid", s.handleSpectate)
	api.GET("/account/:game_name/:tag_line", s.handleAccount)

	wordsGroup := api.Group("/banned-words")
	if s.config.Server.Authentication.Enable {
		wordsGroup.Use(s.verifyMiddleware())
	}
	wordsGroup.GET("", s.handleGetBannedWords)
	wordsGroup.POST("", s.handlePostBannedWords)

	if s.broadcaster != nil {
		router.GET("/ws", func(c *gin.Context) {
			s.handleConnections(c.Writer, c.Request)
		})
		sessionsGroup := router.Group("/sessions")
		if s.config.Server.Authentication.Enable {
			sessionsGroup.Use(s.verifyMiddleware())
		}
		sessionsGroup.Static("/", s.config.Broadcast.OutputDir)
	}

	if s.monitor != nil {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancelMonitor = cancel
		go s.monitor.Run(ctx, s.config.Monitor.PUUID)
	}

	go func() {
		trap := make(chan os.Signal, 1)
		signal.Notify(trap, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGINT)
		sig := <-trap
		slog.Info("シグナルを受信しました", "signal", sig)
		s.signaled.Store(true)
		s.gracefullyShutdown()
		os.Exit(0)
	}()

	slog.Info("サーバを起動しました", "host", s.config.Server.Web.Host, "port", s.config.Server.Web.Port)
	err := router.Run(s.config.Server.Web.Host + ":" + strconv.Itoa(s.config.Server.Web.Port))
	if err != nil {
		slog.Error("サーバの起動に失敗しました", "error", err)
		return
	}
}

func (s *Server) gracefullyShutdown() {
	if s.cancelMonitor != nil {
		s.cancelMonitor()
	}
	time.Sleep(1 * time.Second)
	slog.Info("シャットダウンが完了しました")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, Version)
}

func (s *Server) handleStatus(c *gin.Context) {
	status := gin.H{
		"region":          s.config.Riot.Region,
		"monitor_enabled": s.monitor != nil,
	}
	if s.broadcaster != nil {
		status["viewers"] = s.broadcaster.ViewerCount()
	}
	if s.monitor != nil {
		if packet := s.monitor.LastPacket(); packet != nil {
			status["last_packet"] = packet
		}
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleSpectate(c *gin.Context) {
	puuid := c.Param("puuid")
	region := model.RegionFromString(c.DefaultQuery("region", s.config.Riot.Region))

	game, err := s.client.CurrentGameByPUUID(c.Request.Context(), region, puuid)
	if err != nil {
		if errors.Is(err, service.ErrNotInGame) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not in game"})
			return
		}
		slog.Error("アクティブゲームの取得に失敗しました", "error", err, "puuid", puuid)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"game_id":   game.GameID,
		"game_mode": game.GameMode,
		"region":    region.Name,
		"riot_ids":  util.DeriveRiotIDs(game),
	})
}

func (s *Server) handleAccount(c *gin.Context) {
	region := model.RegionFromString(c.DefaultQuery("region", s.config.Riot.Region))

	account, err := s.client.AccountByRiotID(c.Request.Context(), region, c.Param("game_name"), c.Param("tag_line"))
	if err != nil {
		if errors.Is(err, service.ErrNotInGame) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		slog.Error("アカウントの取得に失敗しました", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *Server) handleGetBannedWords(c *gin.Context) {
	if s.config.Monitor.BannedWordsPath == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "banned words path is not configured"})
		return
	}
	words, err := util.LoadBannedWords(s.config.Monitor.BannedWordsPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusOK, gin.H{"words": []string{}})
			return
		}
		slog.Error("禁止ワードリストの読み込みに失敗しました", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"words": words})
}

func (s *Server) handlePostBannedWords(c *gin.Context) {
	if s.config.Monitor.BannedWordsPath == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "banned words path is not configured"})
		return
	}
	var body struct {
		Words []string `json:"words"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := util.SaveBannedWords(s.config.Monitor.BannedWordsPath, body.Words); err != nil {
		slog.Error("禁止ワードリストの保存に失敗しました", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	slog.Info("禁止ワードリストを更新しました", "count", len(body.Words))
	c.JSON(http.StatusOK, gin.H{"words": body.Words})
}

func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	if s.signaled.Load() {
		slog.Warn("シグナルを受信したため、新しい接続を受け付けません")
		return
	}
	if s.config.Server.Authentication.Enable {
		token := r.URL.Query().Get("token")
		if token == "" {
			token = strings.ReplaceAll(r.Header.Get("Authorization"), "Bearer ", "")
		}
		if !util.IsValidReceiver(s.config.Server.Authentication.Secret, token) {
			slog.Warn("トークンが無効です", "remote_addr", r.RemoteAddr)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
	}
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("クライアントのアップグレードに失敗しました", "error", err)
		return
	}
	s.broadcaster.AddViewer(ws)
}

func (s *Server) verifyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = strings.ReplaceAll(c.GetHeader("Authorization"), "Bearer ", "")
		}
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !util.IsValidReceiver(s.config.Server.Authentication.Secret, token) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
