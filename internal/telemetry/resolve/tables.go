package resolve

// Curated tables for high-traffic ids the composition surface sometimes
// cannot serve (host not fully loaded, transient nulls). Small on purpose:
// only entities that show up constantly in collected data.

type tableEntry struct {
	name     string
	category string
}

var wellKnownItems = map[int]tableEntry{
	995:   {"Coins", "currency"},
	314:   {"Feather", "material"},
	554:   {"Fire rune", "rune"},
	555:   {"Water rune", "rune"},
	556:   {"Air rune", "rune"},
	557:   {"Earth rune", "rune"},
	558:   {"Mind rune", "rune"},
	560:   {"Death rune", "rune"},
	561:   {"Nature rune", "rune"},
	562:   {"Chaos rune", "rune"},
	565:   {"Blood rune", "rune"},
	385:   {"Shark", "food"},
	379:   {"Lobster", "food"},
	333:   {"Trout", "food"},
	2434:  {"Prayer potion(4)", "potion"},
	12695: {"Super combat potion(4)", "potion"},
	4151:  {"Abyssal whip", "weapon"},
	11802: {"Armadyl godsword", "weapon"},
	1511:  {"Logs", "material"},
	1515:  {"Yew logs", "material"},
	440:   {"Iron ore", "material"},
	453:   {"Coal", "material"},
	1963:  {"Banana", "food"},
	952:   {"Spade", "tool"},
	1349:  {"Iron axe", "tool"},
	1265:  {"Bronze pickaxe", "tool"},
}

var wellKnownObjects = map[int]tableEntry{
	10060: {"Bank booth", "bank"},
	10355: {"Bank chest", "bank"},
	1276:  {"Tree", "tree"},
	10820: {"Yew tree", "tree"},
	11744: {"Rocks", "rock"},
	11366: {"Coal rocks", "rock"},
	2030:  {"Furnace", "crafting"},
	114:   {"Range", "cooking"},
	879:   {"Box of health", "misc"},
}

var wellKnownNPCs = map[int]tableEntry{
	3080: {"Banker", "banker"},
	2042: {"Zulrah", "boss"},
	8195: {"Vorkath", "boss"},
	239:  {"King Black Dragon", "boss"},
	3010: {"Man", "citizen"},
	3014: {"Woman", "citizen"},
}

// objectIDBands maps contiguous id ranges to coarse categories. These are
// the weakest tier before giving up: good enough to say "a door" without
// claiming which door. First match wins, so narrower bands precede the
// wider ones that contain them.
var objectIDBands = []struct {
	lo, hi   int
	category string
}{
	{1530, 1540, "gate"},
	{1516, 1600, "door"},
	{11727, 11730, "door"},
	{16671, 16680, "ladder"},
	{1746, 1764, "ladder"},
	{1497, 1515, "fishing_spot"},
	{4316, 4330, "altar"},
	{23271, 23280, "obstacle"},
}
