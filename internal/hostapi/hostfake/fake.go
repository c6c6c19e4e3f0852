// Package hostfake provides a scriptable in-memory host client for tests
// and the demo driver. Fields are plain data; set them between ticks to
// stage whatever state the next collection should observe.
package hostfake

import "runewatch.ai/internal/hostapi"

type Client struct {
	State       hostapi.GameState
	Player      hostapi.PlayerState
	HasPlayer   bool
	SkillLevels map[hostapi.Skill]hostapi.SkillLevel
	Inv         []hostapi.ItemStack
	Equipped    map[hostapi.EquipmentSlot]int
	Prayers     []string
	Spell       string
	Varbits     map[int]int

	NPCs       []hostapi.NPC
	Players    []hostapi.Player
	Objects    []hostapi.GameObject
	Projs      []hostapi.Projectile
	Cam        hostapi.Camera
	Pointer    hostapi.Mouse
	Menu       []hostapi.MenuEntry
	Widgets    []int
	WorldState hostapi.WorldInfo
	FriendList []hostapi.Friend
	ClanState  hostapi.ClanInfo

	Items   map[int]hostapi.ItemComposition
	ObjDefs map[int]hostapi.ObjectComposition
	NPCDefs map[int]hostapi.NPCComposition

	// Fail makes the named accessor panic, to exercise phase isolation.
	// Keys match the hostapi.Client method names.
	Fail map[string]bool
}

func New() *Client {
	return &Client{
		State:       hostapi.StateLoggedIn,
		HasPlayer:   true,
		SkillLevels: map[hostapi.Skill]hostapi.SkillLevel{},
		Equipped:    map[hostapi.EquipmentSlot]int{},
		Varbits:     map[int]int{},
		Items:       map[int]hostapi.ItemComposition{},
		ObjDefs:     map[int]hostapi.ObjectComposition{},
		NPCDefs:     map[int]hostapi.NPCComposition{},
		Fail:        map[string]bool{},
	}
}

func (c *Client) failIf(name string) {
	if c.Fail[name] {
		panic("hostfake: induced fault in " + name)
	}
}

func (c *Client) GameState() hostapi.GameState { c.failIf("GameState"); return c.State }

func (c *Client) LocalPlayer() (hostapi.PlayerState, bool) {
	c.failIf("LocalPlayer")
	return c.Player, c.HasPlayer
}

func (c *Client) Skills() map[hostapi.Skill]hostapi.SkillLevel {
	c.failIf("Skills")
	out := make(map[hostapi.Skill]hostapi.SkillLevel, len(c.SkillLevels))
	for k, v := range c.SkillLevels {
		out[k] = v
	}
	return out
}

func (c *Client) Inventory() []hostapi.ItemStack {
	c.failIf("Inventory")
	return append([]hostapi.ItemStack(nil), c.Inv...)
}

func (c *Client) Equipment() map[hostapi.EquipmentSlot]int {
	c.failIf("Equipment")
	out := make(map[hostapi.EquipmentSlot]int, len(c.Equipped))
	for k, v := range c.Equipped {
		out[k] = v
	}
	return out
}

func (c *Client) ActivePrayers() []string {
	c.failIf("ActivePrayers")
	return append([]string(nil), c.Prayers...)
}

func (c *Client) SelectedSpell() string { c.failIf("SelectedSpell"); return c.Spell }

func (c *Client) Varbit(id int) int { c.failIf("Varbit"); return c.Varbits[id] }

func (c *Client) NearbyNPCs() []hostapi.NPC {
	c.failIf("NearbyNPCs")
	return append([]hostapi.NPC(nil), c.NPCs...)
}

func (c *Client) NearbyPlayers() []hostapi.Player {
	c.failIf("NearbyPlayers")
	return append([]hostapi.Player(nil), c.Players...)
}

func (c *Client) GameObjects() []hostapi.GameObject {
	c.failIf("GameObjects")
	return append([]hostapi.GameObject(nil), c.Objects...)
}

func (c *Client) Projectiles() []hostapi.Projectile {
	c.failIf("Projectiles")
	return append([]hostapi.Projectile(nil), c.Projs...)
}

func (c *Client) Camera() hostapi.Camera { c.failIf("Camera"); return c.Cam }

func (c *Client) Mouse() hostapi.Mouse { c.failIf("Mouse"); return c.Pointer }

func (c *Client) MenuEntries() []hostapi.MenuEntry {
	c.failIf("MenuEntries")
	return append([]hostapi.MenuEntry(nil), c.Menu...)
}

func (c *Client) VisibleWidgetGroups() []int {
	c.failIf("VisibleWidgetGroups")
	return append([]int(nil), c.Widgets...)
}

func (c *Client) World() hostapi.WorldInfo { c.failIf("World"); return c.WorldState }

func (c *Client) Friends() []hostapi.Friend {
	c.failIf("Friends")
	return append([]hostapi.Friend(nil), c.FriendList...)
}

func (c *Client) Clan() hostapi.ClanInfo { c.failIf("Clan"); return c.ClanState }

func (c *Client) ItemComposition(id int) (hostapi.ItemComposition, bool) {
	c.failIf("ItemComposition")
	def, ok := c.Items[id]
	return def, ok
}

func (c *Client) ObjectComposition(id int) (hostapi.ObjectComposition, bool) {
	c.failIf("ObjectComposition")
	def, ok := c.ObjDefs[id]
	return def, ok
}

func (c *Client) NPCComposition(id int) (hostapi.NPCComposition, bool) {
	c.failIf("NPCComposition")
	def, ok := c.NPCDefs[id]
	return def, ok
}
