// Package events holds the bounded buffers that absorb asynchronous host
// notifications between ticks, plus the record types stored in them.
//
// Producers run on the host's notification threads and must never block:
// a buffer at capacity evicts its oldest entry to admit the newest. That
// lossy-recency policy is deliberate; telemetry prefers fresh data over
// complete data. Each buffer is drained by exactly one phase per tick.
package events

import "time"

type ChatMessage struct {
	Timestamp time.Time `json:"timestamp"`
	Channel   string    `json:"channel"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
}

type StatChange struct {
	Timestamp time.Time `json:"timestamp"`
	Skill     string    `json:"skill"`
	Level     int       `json:"level"`
	Boosted   int       `json:"boosted"`
	XP        int64     `json:"xp"`
}

type Hitsplat struct {
	Timestamp time.Time `json:"timestamp"`
	TargetID  int       `json:"target_id"`
	OnLocal   bool      `json:"on_local"`
	Type      int       `json:"type"`
	Amount    int       `json:"amount"`
}

type AnimationChange struct {
	Timestamp   time.Time `json:"timestamp"`
	ActorID     int       `json:"actor_id"`
	AnimationID int       `json:"animation_id"`
}

type InteractionChange struct {
	Timestamp time.Time `json:"timestamp"`
	SourceID  int       `json:"source_id"`
	TargetID  int       `json:"target_id"`
}

type ProjectileMoved struct {
	Timestamp    time.Time `json:"timestamp"`
	ProjectileID int       `json:"projectile_id"`
	TargetID     int       `json:"target_id"`
}

type MenuClick struct {
	Timestamp time.Time `json:"timestamp"`
	Option    string    `json:"option"`
	Target    string    `json:"target"`
	ItemID    int       `json:"item_id"`
}

type KeyPress struct {
	Timestamp time.Time `json:"timestamp"`
	KeyCode   int       `json:"key_code"`
}

type MouseClick struct {
	Timestamp time.Time `json:"timestamp"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Button    int       `json:"button"`
}
