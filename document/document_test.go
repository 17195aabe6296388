package document

import "testing"

func TestFindByID(t *testing.T) {
	docs := []Document{
		{ID: "doc-1", Filename: "architecture.md", Content: "the api gateway"},
		{ID: "doc-2", Filename: "runbook.md", Content: "the database"},
	}

	t.Run("finds an existing document", func(t *testing.T) {
		got := FindByID(docs, "doc-2")
		if got == nil {
			t.Fatal("FindByID(doc-2) = nil, want document")
		}
		if got.Filename != "runbook.md" {
			t.Errorf("Filename = %q, want %q", got.Filename, "runbook.md")
		}
	})

	t.Run("returns nil when absent", func(t *testing.T) {
		if got := FindByID(docs, "doc-9"); got != nil {
			t.Errorf("FindByID(doc-9) = %v, want nil", got)
		}
	})

	t.Run("returns nil on an empty corpus", func(t *testing.T) {
		if got := FindByID(nil, "doc-1"); got != nil {
			t.Errorf("FindByID on empty corpus = %v, want nil", got)
		}
	})
}
