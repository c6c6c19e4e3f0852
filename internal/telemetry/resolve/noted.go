package resolve

import (
	"log"
	"strings"

	"runewatch.ai/internal/hostapi"
)

// NotedVerdict carries the outcome of every noted-item check. The item is
// classified noted when any single check fires; the individual verdicts
// are kept so disagreements between heuristics stay observable.
type NotedVerdict struct {
	Noted bool `json:"noted"`

	ByName    bool `json:"by_name"`
	ByTarget  bool `json:"by_target"`
	ByTable   bool `json:"by_table"`
	BySibling bool `json:"by_sibling"`
}

// knownNotedIDs: curated noted variants of high-traffic tradeables.
var knownNotedIDs = map[int]bool{
	386:  true, // Shark (noted)
	380:  true, // Lobster (noted)
	1512: true, // Logs (noted)
	441:  true, // Iron ore (noted)
	454:  true, // Coal (noted)
	4152: true, // Abyssal whip (noted)
}

// ClassifyNoted applies four independent checks. Checks never short
// circuit: each one is evaluated so a disagreement can be logged, and a
// single positive signal is authoritative.
func (r *Resolver) ClassifyNoted(id int, logger *log.Logger) NotedVerdict {
	var v NotedVerdict

	name := r.Name(KindItem, id).Name
	v.ByName = strings.Contains(strings.ToLower(name), "(noted)")

	var def hostapi.ItemComposition
	var haveDef bool
	if r.client != nil {
		func() {
			defer func() { _ = recover() }()
			def, haveDef = r.client.ItemComposition(id)
		}()
	}
	if haveDef {
		v.ByTarget = def.Stackable && def.NoteTargetID >= 0 && def.NoteTargetID != id
	}

	v.ByTable = knownNotedIDs[id]

	// Noted variants conventionally sit at unnoted id + 1; confirm by
	// asking whether the presumed sibling notes back to this id.
	if r.client != nil && id%2 == 0 {
		func() {
			defer func() { _ = recover() }()
			if sib, ok := r.client.ItemComposition(id - 1); ok {
				v.BySibling = sib.NoteTargetID == id
			}
		}()
	}

	v.Noted = v.ByName || v.ByTarget || v.ByTable || v.BySibling

	if logger != nil {
		fired := 0
		for _, b := range []bool{v.ByName, v.ByTarget, v.ByTable, v.BySibling} {
			if b {
				fired++
			}
		}
		if v.Noted && fired < 4 {
			logger.Printf("noted classifier disagreement for item %d: name=%t target=%t table=%t sibling=%t",
				id, v.ByName, v.ByTarget, v.ByTable, v.BySibling)
		}
	}
	return v
}
