// Package document defines the immutable source-document inputs consumed by
// the extraction engine. Documents arrive with their text already extracted;
// ingestion, chunking, and storage are owned by external collaborators.
package document

// Document is a single pre-extracted text source. The pipeline reads
// documents but never mutates or stores them.
type Document struct {
	// ID is the unique identifier assigned by the owning store.
	ID string `json:"id"`

	// Filename is the original name of the source file.
	Filename string `json:"filename"`

	// Content is the extracted plain text of the document.
	Content string `json:"content"`
}

// FindByID returns the document with the given ID, or nil if absent.
func FindByID(docs []Document, id string) *Document {
	for i := range docs {
		if docs[i].ID == id {
			return &docs[i]
		}
	}
	return nil
}
