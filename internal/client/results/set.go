package results

import (
	"slices"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/google/uuid"
)

// newKey issues client-side entry keys.
var newKey = uuid.NewString

// Set is the ordered list of entries for one result kind.
type Set []Entry

// Load builds a Set from server records. Every entry starts as UPDATE.
func Load(records []Snapshot) Set {
	s := make(Set, 0, len(records))
	for _, r := range records {
		imgs := make([]Image, 0, len(r.Images))
		for _, img := range r.Images {
			imgs = append(imgs, Image{ID: img.ID, URL: img.URL})
		}
		s = append(s, Entry{
			ID:         r.ID,
			CategoryID: r.TestCategoryID,
			TextResult: r.TextResult,
			Notes:      r.Notes,
			Images:     imgs,
			Intent:     Update,
			Key:        newKey(),
		})
	}
	return s
}

// clone copies the slice and the image list of every entry.
func (s Set) clone() Set {
	out := make(Set, len(s))
	for i, e := range s {
		e.Images = slices.Clone(e.Images)
		out[i] = e
	}
	return out
}

// At returns the entry at pos.
func (s Set) At(pos int) (Entry, error) {
	if pos < 0 || pos >= len(s) {
		return Entry{}, ErrInvalidPosition
	}
	return s[pos], nil
}

// IndexOfKey finds an entry by its client key, or -1.
func (s Set) IndexOfKey(key string) int {
	for i, e := range s {
		if e.Key == key {
			return i
		}
	}
	return -1
}

// editable returns the entry at pos if it may be mutated.
func (s Set) editable(pos int) (Entry, error) {
	e, err := s.At(pos)
	if err != nil {
		return Entry{}, err
	}
	if e.Removed() {
		return Entry{}, ErrEntryRemoved
	}
	return e, nil
}

// Add appends an empty CREATE entry.
func (s Set) Add() Set {
	out := s.clone()
	return append(out, Entry{Images: []Image{}, Intent: Create, Key: newKey()})
}

// UpdateField sets a text field. Category values are parsed with
// models.ParseID; use SetCategory to keep a server-typed identifier.
func (s Set) UpdateField(pos int, field Field, value string) (Set, error) {
	if field == FieldCategory {
		return s.SetCategory(pos, models.ParseID(value))
	}

	e, err := s.editable(pos)
	if err != nil {
		return s, err
	}

	switch field {
	case FieldTextResult:
		e.TextResult = value
	case FieldNotes:
		e.Notes = value
	default:
		return s, ErrUnknownField
	}

	out := s.clone()
	e.Images = out[pos].Images
	out[pos] = e
	return out, nil
}

// SetCategory points the entry at a category.
func (s Set) SetCategory(pos int, id models.ID) (Set, error) {
	e, err := s.editable(pos)
	if err != nil {
		return s, err
	}
	out := s.clone()
	e.Images = out[pos].Images
	e.CategoryID = id
	out[pos] = e
	return out, nil
}

// Accept returns how many of n offered files fit on the entry.
func (s Set) Accept(pos int, n int) (int, error) {
	e, err := s.editable(pos)
	if err != nil {
		return 0, err
	}
	free := MaxImages - len(e.Images)
	if free < 0 {
		free = 0
	}
	if n < 0 {
		n = 0
	}
	return min(n, free), nil
}

// PrependImages puts freshly uploaded images in front of the existing ones.
// Only as many as still fit are kept; existing images are never evicted.
func (s Set) PrependImages(pos int, imgs []Image) (Set, error) {
	e, err := s.editable(pos)
	if err != nil {
		return s, err
	}

	free := MaxImages - len(e.Images)
	if free <= 0 || len(imgs) == 0 {
		return s, nil
	}
	if len(imgs) > free {
		imgs = imgs[:free]
	}

	merged := make([]Image, 0, len(imgs)+len(e.Images))
	merged = append(merged, imgs...)
	merged = append(merged, e.Images...)

	out := s.clone()
	out[pos].Images = merged
	return out, nil
}

// RemoveImage drops the first image with the given id. A missing image is
// not an error.
func (s Set) RemoveImage(pos int, imageID models.ID) (Set, error) {
	e, err := s.editable(pos)
	if err != nil {
		return s, err
	}

	idx := -1
	for i, img := range e.Images {
		if img.ID.Equal(imageID) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, nil
	}

	out := s.clone()
	imgs := out[pos].Images
	out[pos].Images = append(imgs[:idx], imgs[idx+1:]...)
	return out, nil
}

// Remove deletes an unsaved entry or tombstones a persisted one. Removing a
// tombstone again is a no-op.
func (s Set) Remove(pos int) (Set, error) {
	e, err := s.At(pos)
	if err != nil {
		return s, err
	}
	if e.Removed() {
		return s, nil
	}

	out := s.clone()
	if !e.Persisted() {
		return append(out[:pos], out[pos+1:]...), nil
	}
	out[pos].Intent = Remove
	return out, nil
}

// ShiftsOnRemove reports whether removing pos would move later entries.
func (s Set) ShiftsOnRemove(pos int) bool {
	e, err := s.At(pos)
	if err != nil {
		return false
	}
	return !e.Persisted() && !e.Removed()
}

// Visible lists the entries a user should see, with their real positions.
func (s Set) Visible() []Position {
	out := make([]Position, 0, len(s))
	for i, e := range s {
		if e.Removed() {
			continue
		}
		out = append(out, Position{Pos: i, Entry: e})
	}
	return out
}

// Operations serializes the Set in collection order. An id-less REMOVE
// entry is never emitted.
func (s Set) Operations() []Operation {
	ops := make([]Operation, 0, len(s))
	for _, e := range s {
		if e.Removed() && !e.Persisted() {
			continue
		}
		op := Operation{
			Action:     e.Intent,
			CategoryID: e.CategoryID,
			TextResult: e.TextResult,
			Notes:      e.Notes,
			ImageKeys:  e.ImageIDs(),
		}
		if e.Persisted() {
			id := e.ID
			op.ID = &id
		}
		ops = append(ops, op)
	}
	return ops
}

// BuildPayload combines both kinds into a submission body.
func BuildPayload(clinical, paraclinical Set) Payload {
	return Payload{
		ClinicalTests:     clinical.Operations(),
		ParaclinicalTests: paraclinical.Operations(),
	}
}
