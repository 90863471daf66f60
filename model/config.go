package model

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Web struct {
			Host string `yaml:"host"`
			Port int    `yaml:"port"`
		} `yaml:"web"`
		Authentication struct {
			Enable bool   `yaml:"enable"`
			Secret string `yaml:"secret"`
		} `yaml:"authentication"`
	} `yaml:"server"`
	Riot struct {
		APIKey         string `yaml:"api_key"`
		BaseURL        string `yaml:"base_url"`
		Region         string `yaml:"region"`
		RequestTimeout int    `yaml:"request_timeout"`
	} `yaml:"riot"`
	Monitor struct {
		Enable          bool   `yaml:"enable"`
		PUUID           string `yaml:"puuid"`
		Interval        int    `yaml:"interval"`
		BannedWordsPath string `yaml:"banned_words_path"`
	} `yaml:"monitor"`
	Broadcast struct {
		Enable    bool   `yaml:"enable"`
		OutputDir string `yaml:"output_dir"`
		Filename  string `yaml:"filename"`
	} `yaml:"broadcast"`
}

func DefaultConfig() *Config {
	var config Config
	config.Server.Web.Host = "127.0.0.1"
	config.Server.Web.Port = 8080
	config.Riot.Region = "jp1"
	config.Riot.RequestTimeout = 10
	config.Monitor.Interval = 1
	config.Broadcast.Filename = "{session_id}_{timestamp}"
	config.Riot.APIKey = os.Getenv("RIOT_API_KEY")
	return &config
}

func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("設定ファイルの読み込みに失敗しました", "error", err)
		return nil, err
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		slog.Error("設定ファイルのパースに失敗しました", "error", err)
		return nil, err
	}
	if config.Riot.APIKey == "" {
		config.Riot.APIKey = os.Getenv("RIOT_API_KEY")
	}
	return config, nil
}
