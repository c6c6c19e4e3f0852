package telemetry

import (
	"fmt"
	"time"
)

// Session identifies one recording run. Captured once at engine start and
// stamped into every snapshot.
type Session struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	PlayerName string    `json:"player_name,omitempty"`
	WorldID    int       `json:"world_id,omitempty"`
}

// NewSession derives a session id from the player identity and start
// instant. Opaque to everything downstream.
func NewSession(playerName string, worldID int) Session {
	now := time.Now()
	return Session{
		ID:         fmt.Sprintf("s_%d_%s", now.UnixMilli(), shortName(playerName)),
		StartedAt:  now,
		PlayerName: playerName,
		WorldID:    worldID,
	}
}

func shortName(name string) string {
	if name == "" {
		return "anon"
	}
	out := make([]rune, 0, 8)
	for _, r := range name {
		if len(out) == 8 {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return "anon"
	}
	return string(out)
}
