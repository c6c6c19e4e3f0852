package resolve

import (
	"strings"
	"testing"

	"runewatch.ai/internal/hostapi"
	"runewatch.ai/internal/hostapi/hostfake"
)

func TestName_ExactTierWins(t *testing.T) {
	host := hostfake.New()
	host.Items[4151] = hostapi.ItemComposition{ID: 4151, Name: "Abyssal whip"}
	r := New(host)

	res := r.Name(KindItem, 4151)
	if res.Name != "Abyssal whip" || res.Tier != TierExact {
		t.Fatalf("got %+v, want exact Abyssal whip", res)
	}
}

func TestName_ImpostorFollowsVariant(t *testing.T) {
	host := hostfake.New()
	host.ObjDefs[5000] = hostapi.ObjectComposition{ID: 5000, Name: "", ImpostorID: 5001}
	host.ObjDefs[5001] = hostapi.ObjectComposition{ID: 5001, Name: "Open chest", ImpostorID: -1}
	r := New(host)

	res := r.Name(KindObject, 5000)
	if res.Name != "Open chest" || res.Tier != TierImpostor {
		t.Fatalf("got %+v, want impostor Open chest", res)
	}
}

func TestName_StaticTableFallback(t *testing.T) {
	r := New(hostfake.New())
	res := r.Name(KindItem, 995)
	if res.Name != "Coins" || res.Tier != TierTable {
		t.Fatalf("got %+v, want table Coins", res)
	}
}

func TestName_RangeHeuristic(t *testing.T) {
	r := New(hostfake.New())
	res := r.Name(KindObject, 1550)
	if res.Tier != TierRange || res.Category != "door" {
		t.Fatalf("got %+v, want door range heuristic", res)
	}
	if !strings.Contains(res.Name, "1550") {
		t.Fatalf("range label should embed the id: %q", res.Name)
	}
}

func TestName_UnresolvedNeverEmpty(t *testing.T) {
	r := New(hostfake.New())
	res := r.Name(KindItem, 999999999)
	if res.Name == "" {
		t.Fatalf("unresolved name must not be empty")
	}
	if res.Tier != TierUnresolved {
		t.Fatalf("tier = %q, want unresolved", res.Tier)
	}
	if !strings.Contains(res.Name, "999999999") {
		t.Fatalf("synthetic label should embed the raw id: %q", res.Name)
	}
}

func TestName_PanickingTierAdvancesChain(t *testing.T) {
	host := hostfake.New()
	host.Fail["ItemComposition"] = true
	r := New(host)

	res := r.Name(KindItem, 995)
	if res.Name != "Coins" || res.Tier != TierTable {
		t.Fatalf("host fault should fall through to the table: %+v", res)
	}
}

func TestName_NilClient(t *testing.T) {
	r := New(nil)
	if res := r.Name(KindNPC, 3080); res.Name != "Banker" {
		t.Fatalf("got %+v", res)
	}
}

func TestClassifyNoted_NameCheckAlone(t *testing.T) {
	host := hostfake.New()
	host.Items[7000] = hostapi.ItemComposition{
		ID: 7000, Name: "Dragon bones (noted)", NoteTargetID: -1,
	}
	r := New(host)

	v := r.ClassifyNoted(7000, nil)
	if !v.Noted || !v.ByName {
		t.Fatalf("name check alone must classify as noted: %+v", v)
	}
	if v.ByTarget || v.ByTable {
		t.Fatalf("other checks unexpectedly fired: %+v", v)
	}
}

func TestClassifyNoted_NoteTargetCheck(t *testing.T) {
	host := hostfake.New()
	host.Items[386] = hostapi.ItemComposition{
		ID: 386, Name: "Shark", Stackable: true, NoteTargetID: 385,
	}
	r := New(host)

	v := r.ClassifyNoted(386, nil)
	if !v.Noted || !v.ByTarget {
		t.Fatalf("note-target mismatch on a stackable must fire: %+v", v)
	}
}

func TestClassifyNoted_SiblingCheck(t *testing.T) {
	host := hostfake.New()
	host.Items[1512] = hostapi.ItemComposition{ID: 1512, Name: "Logs", NoteTargetID: -1}
	host.Items[1511] = hostapi.ItemComposition{ID: 1511, Name: "Logs", NoteTargetID: 1512}
	r := New(host)

	v := r.ClassifyNoted(1512, nil)
	if !v.BySibling {
		t.Fatalf("sibling back-reference should fire: %+v", v)
	}
}

func TestClassifyNoted_Negative(t *testing.T) {
	host := hostfake.New()
	host.Items[385] = hostapi.ItemComposition{ID: 385, Name: "Shark", NoteTargetID: -1}
	r := New(host)

	if v := r.ClassifyNoted(385, nil); v.Noted {
		t.Fatalf("plain shark misclassified as noted: %+v", v)
	}
}
