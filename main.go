package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aiwolfdial/lol-spectator-server/core"
	"github.com/aiwolfdial/lol-spectator-server/model"
	"github.com/aiwolfdial/lol-spectator-server/service"
	"github.com/joho/godotenv"
)

var (
	version  = "dev"
	revision = ""
	build    = ""
)

func main() {
	core.SetVersion(version, revision, build)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("lol-spectator-server", flag.ContinueOnError)
	fs.SetOutput(errOut)
	configPath := fs.String("c", "", "設定ファイルのパス")
	serveMode := fs.Bool("s", false, "WebAPIサーバを起動する")
	monitorMode := fs.Bool("m", false, "監視モードで起動する")
	fs.Usage = func() {
		fmt.Fprintln(errOut, "Usage: lol-spectator-server [-c config] [-s] [-m] <api_key> <puuid>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if err := godotenv.Load(); err == nil {
		slog.Info(".envファイルを読み込みました")
	}

	var config *model.Config
	if *configPath != "" {
		loaded, err := model.LoadFromPath(*configPath)
		if err != nil {
			return 1
		}
		config = loaded
	} else {
		config = model.DefaultConfig()
	}

	rest := fs.Args()
	if *serveMode && len(rest) == 0 {
		return serve(config)
	}
	if len(rest) != 2 {
		fs.Usage()
		return 1
	}
	config.Riot.APIKey = rest[0]
	puuid := rest[1]

	if *serveMode {
		config.Monitor.PUUID = puuid
		if *monitorMode {
			config.Monitor.Enable = true
		}
		return serve(config)
	}

	if *monitorMode {
		monitor := core.NewMonitor(*config)
		if config.Broadcast.Enable {
			if broadcaster := service.NewSpectateBroadcaster(*config); broadcaster != nil {
				monitor.SetBroadcaster(broadcaster)
			}
		}
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		monitor.Run(ctx, puuid)
		return 0
	}

	if err := core.RunLookup(config, puuid, out); err != nil {
		slog.Error("アクティブゲームの取得に失敗しました", "error", err)
		return 1
	}
	return 0
}

func serve(config *model.Config) int {
	server, err := core.NewServer(*config)
	if err != nil {
		slog.Error("サーバの作成に失敗しました", "error", err)
		return 1
	}
	server.Run()
	return 0
}
