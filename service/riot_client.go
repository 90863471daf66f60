package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/aiwolfdial/lol-spectator-server/model"
)

var ErrNotInGame = errors.New("現在ゲームに参加していません")

type RiotClient struct {
	apiKey  string
	baseURL *url.URL
	client  *http.Client
}

func NewRiotClient(config model.Config) *RiotClient {
	rc := &RiotClient{
		apiKey: config.Riot.APIKey,
		client: &http.Client{
			Timeout: time.Duration(config.Riot.RequestTimeout) * time.Second,
		},
	}
	if config.Riot.BaseURL != "" {
		baseURL, err := url.Parse(config.Riot.BaseURL)
		if err != nil {
			slog.Error("RiotAPIのベースURLの解析に失敗しました", "error", err)
		} else {
			rc.baseURL = baseURL
		}
	}
	return rc
}

func (rc *RiotClient) CurrentGameByPUUID(ctx context.Context, region model.Region, puuid string) (*model.CurrentGameInfo, error) {
	endpoint := rc.endpoint(region.Host, "/lol/spectator/v5/active-games/by-summoner/"+url.PathEscape(puuid))
	body, err := rc.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var game model.CurrentGameInfo
	if err := json.Unmarshal(body, &game); err != nil {
		return nil, fmt.Errorf("アクティブゲームレスポンスのパースに失敗しました: %w", err)
	}
	return &game, nil
}

func (rc *RiotClient) AccountByRiotID(ctx context.Context, region model.Region, gameName string, tagLine string) (*model.Account, error) {
	endpoint := rc.endpoint(region.RouteHost(), "/riot/account/v1/accounts/by-riot-id/"+url.PathEscape(gameName)+"/"+url.PathEscape(tagLine))
	body, err := rc.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var account model.Account
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, fmt.Errorf("アカウントレスポンスのパースに失敗しました: %w", err)
	}
	return &account, nil
}

func (rc *RiotClient) endpoint(host string, path string) string {
	u := &url.URL{Scheme: "https", Host: host}
	if rc.baseURL != nil {
		u = rc.baseURL
	}
	// pathはエスケープ済みのセグメントで構成されるため、JoinPathで二重エスケープを避ける
	return u.JoinPath(path).String()
}

func (rc *RiotClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエスト作成に失敗しました: %w", err)
	}
	req.Header.Set("X-Riot-Token", rc.apiKey)

	resp, err := rc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("リクエスト送信に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotInGame
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("APIキーが拒否されました: ステータスコード %d", resp.StatusCode)
	default:
		return nil, fmt.Errorf("RiotAPIエラー: ステータスコード %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンス読み取りに失敗しました: %w", err)
	}
	return body, nil
}
