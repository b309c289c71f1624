package results

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
)

// MaxImages is the upload-side limit of images per entry.
const MaxImages = 5

var (
	ErrInvalidPosition = errors.New("invalid entry position")
	ErrUnknownField    = errors.New("unknown field")
	ErrEntryRemoved    = errors.New("entry is marked for removal")
	ErrUnknownKind     = errors.New("unknown result kind")
)

// Intent is what the server must do with an entry on submission.
type Intent string

const (
	Create Intent = "CREATE"
	Update Intent = "UPDATE"
	Remove Intent = "REMOVE"
)

// Kind selects one of the two independent result lists of a case.
type Kind string

const (
	Clinical     Kind = "clinical"
	Paraclinical Kind = "paraclinical"
)

// Kinds lists every kind in submission order.
var Kinds = []Kind{Clinical, Paraclinical}

// ParseKind accepts the kind name or its first letter.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clinical", "c":
		return Clinical, nil
	case "paraclinical", "p":
		return Paraclinical, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Field names an editable scalar of an entry.
type Field string

const (
	FieldCategory   Field = "categoryId"
	FieldTextResult Field = "textResult"
	FieldNotes      Field = "notes"
)

// ParseField maps user input to a Field. "category" and "testCategoryId"
// are accepted for the category.
func ParseField(s string) (Field, error) {
	switch s {
	case "categoryId", "category", "testCategoryId":
		return FieldCategory, nil
	case "textResult", "text", "result":
		return FieldTextResult, nil
	case "notes", "note":
		return FieldNotes, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Image is an uploaded image referenced by an entry.
type Image struct {
	ID  models.ID `json:"id"`
	URL string    `json:"url"`
}

// Entry is one test result under edit.
type Entry struct {
	// ID is the server identifier; zero until the entry is persisted.
	ID         models.ID `json:"id"`
	CategoryID models.ID `json:"testCategoryId"`
	TextResult string    `json:"textResult"`
	Notes      string    `json:"notes"`
	// Images are ordered newest first.
	Images []Image `json:"images"`
	Intent Intent  `json:"intent"`
	// Key is a client-side handle that survives position shifts. It is
	// never sent to the backend.
	Key string `json:"key"`
}

// Removed reports whether the entry is a tombstone.
func (e Entry) Removed() bool { return e.Intent == Remove }

// Persisted reports whether the server knows the entry.
func (e Entry) Persisted() bool { return !e.ID.IsZero() }

// ImageIDs returns the identifiers of the entry's images in order.
func (e Entry) ImageIDs() []models.ID {
	ids := make([]models.ID, len(e.Images))
	for i, img := range e.Images {
		ids[i] = img.ID
	}
	return ids
}

// Snapshot is a server record a Set is loaded from.
type Snapshot = models.TestResult

// Position pairs a visible entry with its index in the underlying Set.
type Position struct {
	Pos   int
	Entry Entry
}

// Operation is one record of the submission payload.
type Operation struct {
	Action     Intent      `json:"action"`
	ID         *models.ID  `json:"id,omitempty"`
	CategoryID models.ID   `json:"testCategoryId"`
	TextResult string      `json:"textResult"`
	Notes      string      `json:"notes"`
	ImageKeys  []models.ID `json:"imageKeys"`
}

// Payload is the body of a test-results submission.
type Payload struct {
	ClinicalTests     []Operation `json:"clinicalTests"`
	ParaclinicalTests []Operation `json:"paraclinicalTests"`
}

// Len is the total number of operations.
func (p Payload) Len() int { return len(p.ClinicalTests) + len(p.ParaclinicalTests) }
