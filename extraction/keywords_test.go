package extraction

import (
	"testing"

	"github.com/archmap-ai/sdk/arch"
)

func TestKeywordsCoverAllComponentTypes(t *testing.T) {
	for _, ct := range arch.AllComponentTypes() {
		kws := Keywords(ct)
		if len(kws) == 0 {
			t.Errorf("component type %s has no keywords", ct)
		}
		for _, kw := range kws {
			if kw == "" {
				t.Errorf("component type %s has an empty keyword", ct)
			}
		}
	}
}

func TestKeywordsUnknownType(t *testing.T) {
	if kws := Keywords(arch.ComponentType("MAINFRAME")); kws != nil {
		t.Errorf("expected nil keywords for unknown type, got %v", kws)
	}
}

func TestKeywordsDisjointAcrossTypes(t *testing.T) {
	seen := make(map[string]arch.ComponentType)
	for _, ct := range arch.AllComponentTypes() {
		for _, kw := range Keywords(ct) {
			if owner, ok := seen[kw]; ok {
				t.Errorf("keyword %q belongs to both %s and %s", kw, owner, ct)
			}
			seen[kw] = ct
		}
	}
}

func TestKeywordsReturnsCopy(t *testing.T) {
	first := Keywords(arch.TypeDatabase)
	first[0] = "mutated"
	second := Keywords(arch.TypeDatabase)
	if second[0] == "mutated" {
		t.Error("Keywords exposed internal slice")
	}
}
