package telemetry

import (
	"time"

	"runewatch.ai/internal/hostapi"
	"runewatch.ai/internal/telemetry/diff"
	"runewatch.ai/internal/telemetry/events"
	"runewatch.ai/internal/telemetry/grounditems"
	"runewatch.ai/internal/telemetry/resolve"
)

// Snapshot is the complete structured record for one tick. It is built by
// the orchestrator, immutable once finalized, and owned by the storage
// collaborator after hand-off. A snapshot with Valid=false carries only
// identity fields plus a non-zero processing time so downstream consumers
// can tell "a tick happened but failed" from "no data".
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Tick      uint64    `json:"tick"`
	Timestamp time.Time `json:"timestamp"`

	Valid   bool    `json:"valid"`
	Quality float64 `json:"quality"`

	ProcessingNanos int64 `json:"processing_nanos"`

	PhaseErrors []string `json:"phase_errors,omitempty"`

	Player    PlayerSection    `json:"player"`
	World     WorldSection     `json:"world"`
	Input     InputSection     `json:"input"`
	Combat    CombatSection    `json:"combat"`
	Social    SocialSection    `json:"social"`
	Interface InterfaceSection `json:"interface"`
	System    SystemSection    `json:"system"`

	// TimingNanos is rebuilt every tick: phase name -> elapsed ns.
	TimingNanos map[string]int64 `json:"timing_nanos"`
}

type InventorySummary struct {
	UsedSlots     int   `json:"used_slots"`
	TotalQuantity int64 `json:"total_quantity"`
	NotedItems    int   `json:"noted_items"`
}

type NamedStack struct {
	hostapi.ItemStack
	Name  string       `json:"name"`
	Tier  resolve.Tier `json:"tier"`
	Noted bool         `json:"noted,omitempty"`
}

type PlayerSection struct {
	Present bool                `json:"present"`
	State   hostapi.PlayerState `json:"state"`

	Skills map[hostapi.Skill]hostapi.SkillLevel `json:"skills,omitempty"`

	Inventory        []NamedStack        `json:"inventory,omitempty"`
	InventorySummary InventorySummary    `json:"inventory_summary"`
	InventoryDelta   diff.InventoryDelta `json:"inventory_delta"`

	Equipment      map[hostapi.EquipmentSlot]int `json:"equipment,omitempty"`
	EquipmentDelta diff.EquipmentDelta           `json:"equipment_delta"`

	Movement diff.MovementDelta `json:"movement"`

	ActivePrayers []string `json:"active_prayers,omitempty"`
	SelectedSpell string   `json:"selected_spell,omitempty"`
}

type NamedObject struct {
	hostapi.GameObject
	Name string       `json:"name"`
	Tier resolve.Tier `json:"tier"`
}

type NamedNPC struct {
	hostapi.NPC
	ResolvedName string       `json:"resolved_name"`
	Tier         resolve.Tier `json:"tier"`
}

type GroundItemsSection struct {
	Visible []grounditems.Item `json:"visible,omitempty"`
	Stats   grounditems.Stats  `json:"stats"`
	Nearest *grounditems.Item  `json:"nearest,omitempty"`
}

type WorldSection struct {
	Info        hostapi.WorldInfo        `json:"info"`
	NPCs        []NamedNPC               `json:"npcs,omitempty"`
	Players     []hostapi.Player         `json:"players,omitempty"`
	Objects     []NamedObject            `json:"objects,omitempty"`
	GroundItems GroundItemsSection       `json:"ground_items"`
	Projectiles []events.ProjectileMoved `json:"projectiles,omitempty"`
}

type MovementAnalytics struct {
	TickDistance    float64 `json:"tick_distance"`
	SessionDistance float64 `json:"session_distance"`
	AverageSpeed    float64 `json:"average_speed"`
	TeleportCount   int     `json:"teleport_count"`
	IdleTicks       uint64  `json:"idle_ticks"`
}

type InputSection struct {
	Mouse  hostapi.Mouse  `json:"mouse"`
	Camera hostapi.Camera `json:"camera"`

	KeyPresses  []events.KeyPress   `json:"key_presses,omitempty"`
	MouseClicks []events.MouseClick `json:"mouse_clicks,omitempty"`
	MenuClicks  []events.MenuClick  `json:"menu_clicks,omitempty"`

	KeyPressCount   int `json:"key_press_count"`
	MouseClickCount int `json:"mouse_click_count"`
	MenuClickCount  int `json:"menu_click_count"`

	MenuEntries []hostapi.MenuEntry `json:"menu_entries,omitempty"`

	Movement MovementAnalytics `json:"movement"`
}

type CombatSection struct {
	InCombat bool `json:"in_combat"`

	TargetID   int    `json:"target_id,omitempty"`
	TargetName string `json:"target_name,omitempty"`

	Hitsplats    []events.Hitsplat          `json:"hitsplats,omitempty"`
	Animations   []events.AnimationChange   `json:"animations,omitempty"`
	Interactions []events.InteractionChange `json:"interactions,omitempty"`

	DamageDealt int `json:"damage_dealt"`
	DamageTaken int `json:"damage_taken"`

	StatChanges []events.StatChange `json:"stat_changes,omitempty"`
}

type SocialSection struct {
	Chat []events.ChatMessage `json:"chat,omitempty"`

	ChatCount int `json:"chat_count"`

	FriendsTotal  int `json:"friends_total"`
	FriendsOnline int `json:"friends_online"`

	Clan hostapi.ClanInfo `json:"clan"`

	TradeActive bool `json:"trade_active"`
}

type InterfaceSection struct {
	VisibleGroups []int `json:"visible_groups,omitempty"`

	BankOpen     bool `json:"bank_open"`
	ShopOpen     bool `json:"shop_open"`
	DialogueOpen bool `json:"dialogue_open"`
	TradeOpen    bool `json:"trade_open"`
}

type SystemSection struct {
	HeapAllocBytes uint64 `json:"heap_alloc_bytes"`
	HeapSysBytes   uint64 `json:"heap_sys_bytes"`
	NumGC          uint32 `json:"num_gc"`
	Goroutines     int    `json:"goroutines"`

	BufferedEvents uint64 `json:"buffered_events"`
	DroppedEvents  uint64 `json:"dropped_events"`

	UptimeSeconds int64 `json:"uptime_seconds"`
}

// Widget group ids for interface-open detection, matching the host's UI
// layout.
const (
	widgetGroupBank     = 12
	widgetGroupShop     = 300
	widgetGroupDialogue = 231
	widgetGroupTrade    = 335
)
