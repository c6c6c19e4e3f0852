// Package hostapi defines the read-only capability surface the telemetry
// engine queries each tick. The host client owns all of this state and
// mutates it between ticks; the engine only ever copies values out during
// a phase call and never retains references across ticks.
package hostapi

// Point is a world coordinate. Plane separates vertical map levels.
type Point struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Plane int `json:"plane"`
}

type GameState int

const (
	StateUnknown GameState = iota
	StateLoggedIn
	StateLoading
	StateLoginScreen
	StateHopping
)

type Skill string

const (
	SkillAttack    Skill = "attack"
	SkillStrength  Skill = "strength"
	SkillDefence   Skill = "defence"
	SkillHitpoints Skill = "hitpoints"
	SkillRanged    Skill = "ranged"
	SkillPrayer    Skill = "prayer"
	SkillMagic     Skill = "magic"
	SkillCooking   Skill = "cooking"
	SkillWoodcut   Skill = "woodcutting"
	SkillFishing   Skill = "fishing"
	SkillMining    Skill = "mining"
	SkillAgility   Skill = "agility"
	SkillThieving  Skill = "thieving"
	SkillSlayer    Skill = "slayer"
	SkillFarming   Skill = "farming"
	SkillRunecraft Skill = "runecraft"
	SkillHunter    Skill = "hunter"
	SkillSmithing  Skill = "smithing"
	SkillCrafting  Skill = "crafting"
	SkillFletching Skill = "fletching"
	SkillHerblore  Skill = "herblore"
	SkillFiremake  Skill = "firemaking"
	SkillConstruct Skill = "construction"
)

type SkillLevel struct {
	Level   int   `json:"level"`
	Boosted int   `json:"boosted"`
	XP      int64 `json:"xp"`
}

type ItemStack struct {
	Slot     int `json:"slot"`
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

type EquipmentSlot string

const (
	SlotHead   EquipmentSlot = "head"
	SlotCape   EquipmentSlot = "cape"
	SlotAmulet EquipmentSlot = "amulet"
	SlotWeapon EquipmentSlot = "weapon"
	SlotBody   EquipmentSlot = "body"
	SlotShield EquipmentSlot = "shield"
	SlotLegs   EquipmentSlot = "legs"
	SlotGloves EquipmentSlot = "gloves"
	SlotBoots  EquipmentSlot = "boots"
	SlotRing   EquipmentSlot = "ring"
	SlotAmmo   EquipmentSlot = "ammo"
)

// EquipmentSlots lists every slot in a fixed, stable order.
var EquipmentSlots = []EquipmentSlot{
	SlotHead, SlotCape, SlotAmulet, SlotWeapon, SlotBody, SlotShield,
	SlotLegs, SlotGloves, SlotBoots, SlotRing, SlotAmmo,
}

type PlayerState struct {
	Name          string `json:"name"`
	CombatLevel   int    `json:"combat_level"`
	Pos           Point  `json:"pos"`
	AnimationID   int    `json:"animation_id"`
	PoseAnimation int    `json:"pose_animation"`
	HealthRatio   int    `json:"health_ratio"`
	HealthScale   int    `json:"health_scale"`
	Prayer        int    `json:"prayer"`
	Energy        int    `json:"energy"`
	SpecialEnergy int    `json:"special_energy"`
	RunEnabled    bool   `json:"run_enabled"`
	SkullIcon     int    `json:"skull_icon"`
	OverheadIcon  int    `json:"overhead_icon"`
	InteractingID int    `json:"interacting_id"`
}

type NPC struct {
	Index       int    `json:"index"`
	ID          int    `json:"id"`
	Name        string `json:"name"`
	CombatLevel int    `json:"combat_level"`
	Pos         Point  `json:"pos"`
	AnimationID int    `json:"animation_id"`
	HealthRatio int    `json:"health_ratio"`
	Interacting int    `json:"interacting"`
}

type Player struct {
	Name        string `json:"name"`
	CombatLevel int    `json:"combat_level"`
	Pos         Point  `json:"pos"`
	AnimationID int    `json:"animation_id"`
	Team        int    `json:"team"`
	SkullIcon   int    `json:"skull_icon"`
}

type GameObject struct {
	ID  int   `json:"id"`
	Pos Point `json:"pos"`
}

type Projectile struct {
	ID       int   `json:"id"`
	Origin   Point `json:"origin"`
	TargetID int   `json:"target_id"`
	EndCycle int   `json:"end_cycle"`
}

type Camera struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Z     int `json:"z"`
	Pitch int `json:"pitch"`
	Yaw   int `json:"yaw"`
	Zoom  int `json:"zoom"`
}

type Mouse struct {
	X          int   `json:"x"`
	Y          int   `json:"y"`
	IdleMillis int64 `json:"idle_millis"`
}

type MenuEntry struct {
	Option string `json:"option"`
	Target string `json:"target"`
	ID     int    `json:"id"`
}

type WorldInfo struct {
	WorldID     int  `json:"world_id"`
	Members     bool `json:"members"`
	PlayerCount int  `json:"player_count"`
}

type Friend struct {
	Name   string `json:"name"`
	Online bool   `json:"online"`
	World  int    `json:"world,omitempty"`
}

type ClanInfo struct {
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
	OnlineCount int    `json:"online_count"`
	InClan      bool   `json:"in_clan"`
}

type ItemComposition struct {
	ID           int
	Name         string
	Stackable    bool
	Tradeable    bool
	NoteTargetID int // -1 when the item has no noted form
	StorePrice   int
}

type ObjectComposition struct {
	ID         int
	Name       string
	ImpostorID int // -1 when the object has no state-dependent form
}

type NPCComposition struct {
	ID   int
	Name string
}

// Client is the host's live state surface. All methods are only safe to
// call from the host's simulation thread during a tick, and every returned
// value is a copy the caller may keep.
//
// Implementations may panic on transient host faults; the engine's phase
// guard is the recovery boundary.
type Client interface {
	GameState() GameState
	LocalPlayer() (PlayerState, bool)
	Skills() map[Skill]SkillLevel
	Inventory() []ItemStack
	Equipment() map[EquipmentSlot]int
	ActivePrayers() []string
	SelectedSpell() string
	Varbit(id int) int

	NearbyNPCs() []NPC
	NearbyPlayers() []Player
	GameObjects() []GameObject
	Projectiles() []Projectile

	Camera() Camera
	Mouse() Mouse
	MenuEntries() []MenuEntry
	VisibleWidgetGroups() []int
	World() WorldInfo
	Friends() []Friend
	Clan() ClanInfo

	ItemComposition(id int) (ItemComposition, bool)
	ObjectComposition(id int) (ObjectComposition, bool)
	NPCComposition(id int) (NPCComposition, bool)
}
