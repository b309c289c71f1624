package models

import (
	"time"

	"github.com/goccy/go-json"
)

// Publication states reported by the backend.
const (
	StatusPublished   = "PUBLISHED"
	StatusUnpublished = "UNPUBLISHED"
)

// ImageRef is an image as the backend reports it on a test result.
type ImageRef struct {
	ID  ID     `json:"id"`
	URL string `json:"url"`
}

// TestResult is one persisted clinical or paraclinical result.
type TestResult struct {
	ID             ID         `json:"id"`
	TestCategoryID ID         `json:"testCategoryId"`
	Name           string     `json:"name,omitempty"`
	TextResult     string     `json:"textResult"`
	Notes          string     `json:"notes"`
	Images         []ImageRef `json:"images"`
}

type Diagnosis struct {
	DiagPrelim string `json:"diagPrelim"`
	DiagDiff   string `json:"diagDiff"`
	Notes      string `json:"notes"`
}

type Treatment struct {
	TreatmentNotes string `json:"treatmentNotes"`
}

// PatientCase is the detail view of a case. Raw keeps the full response
// body for export, including fields this client does not model.
type PatientCase struct {
	ID                    ID           `json:"id"`
	Name                  string       `json:"name"`
	Status                string       `json:"status"`
	RequestCounter        int          `json:"requestCounter"`
	Age                   int          `json:"age"`
	Gender                string       `json:"gender"`
	Occupation            string       `json:"occupation"`
	ReasonForVisit        string       `json:"reasonForVisit"`
	MedicalHistory        string       `json:"medicalHistory"`
	DentalHistory         string       `json:"dentalHistory"`
	ClinicalHistory       string       `json:"clinicalHistory"`
	Instruction           string       `json:"instruction"`
	SuggestedTests        []string     `json:"suggestedTests"`
	Diagnosis             *Diagnosis   `json:"diagnosis,omitempty"`
	Treatment             *Treatment   `json:"treatment,omitempty"`
	CreatedAt             *time.Time   `json:"createdAt,omitempty"`
	ClinicalExResults     []TestResult `json:"clinicalExResults"`
	ParaclinicalExResults []TestResult `json:"paraclinicalExResults"`

	Raw json.RawMessage `json:"-"`
}

// Published reports whether the case is visible to students.
func (c PatientCase) Published() bool { return c.Status == StatusPublished }

// CaseSummary is a row of the case list.
type CaseSummary struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	RequestCounter int    `json:"requestCounter"`
}
