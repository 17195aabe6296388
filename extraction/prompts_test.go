package extraction

import (
	"strings"
	"testing"

	"github.com/archmap-ai/sdk/arch"
)

func TestPromptTemplates(t *testing.T) {
	for _, ct := range arch.AllComponentTypes() {
		prompt := PromptTemplate(ct)
		if len(prompt) < 50 {
			t.Errorf("prompt for %s is too short: %d chars", ct, len(prompt))
		}
		if !strings.Contains(prompt, "JSON") {
			t.Errorf("prompt for %s does not request JSON output", ct)
		}
		if !strings.Contains(prompt, "hasData") || !strings.Contains(prompt, "confidence") {
			t.Errorf("prompt for %s does not spell out the reply schema", ct)
		}
	}
}

func TestPromptTemplateUnknownType(t *testing.T) {
	if got := PromptTemplate(arch.ComponentType("MAINFRAME")); got != "" {
		t.Errorf("expected empty prompt for unknown type, got %q", got)
	}
}

func TestPromptTemplatesDistinct(t *testing.T) {
	seen := make(map[string]arch.ComponentType)
	for _, ct := range arch.AllComponentTypes() {
		prompt := PromptTemplate(ct)
		if owner, ok := seen[prompt]; ok {
			t.Errorf("types %s and %s share an identical prompt", owner, ct)
		}
		seen[prompt] = ct
	}
}
