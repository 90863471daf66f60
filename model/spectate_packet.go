package model

import "time"

type SpectatePacket struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	PUUID      string    `json:"puuid"`
	Region     string    `json:"region"`
	GameID     int64     `json:"game_id"`
	GameMode   string    `json:"game_mode,omitempty"`
	RiotIDs    []string  `json:"riot_ids"`
	BannedWord *string   `json:"banned_word,omitempty"`
	InGame     bool      `json:"in_game"`
	ObservedAt time.Time `json:"observed_at"`
}
