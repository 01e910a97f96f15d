package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultDocumentTitle is used when a document is created without a title.
const DefaultDocumentTitle = "Untitled"

// Document is a piece of writing. Content is plain text; ContentHTML is the
// rich representation produced by the editor.
type Document struct {
	ID          uuid.UUID
	SessionID   uuid.UUID
	Title       string
	Content     string
	ContentHTML string
	WordCount   int
	Status      DocumentStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DocumentUpdate is a partial update. Nil fields are left untouched.
type DocumentUpdate struct {
	Title       *string
	Content     *string
	ContentHTML *string
	WordCount   *int
	Status      *DocumentStatus
}

// IsEmpty reports whether the update changes nothing.
func (u DocumentUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.ContentHTML == nil && u.WordCount == nil && u.Status == nil
}

// Annotation is a feedback item attached to a character range of a document's
// plain-text content. StartOffset is inclusive, EndOffset exclusive.
type Annotation struct {
	ID               uuid.UUID
	DocumentID       uuid.UUID
	StartOffset      int
	EndOffset        int
	Category         string
	Severity         Severity
	Message          string
	Suggestion       *string
	RewrittenVersion *string
	Principle        *string
	IsDismissed      bool
	CreatedAt        time.Time
}

// FitsWithin reports whether the annotation range addresses text of the given
// length (in characters).
func (a Annotation) FitsWithin(length int) bool {
	return a.StartOffset >= 0 && a.EndOffset <= length && a.StartOffset < a.EndOffset
}
