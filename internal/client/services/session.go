package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/casekeeper/internal/client/client"
	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/casekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/casekeeper/internal/client/results"
	"github.com/dmitrijs2005/casekeeper/internal/logging"
)

// Uploader stores image files and returns their identifiers. Both the API
// client and storage.S3Uploader implement it.
type Uploader interface {
	UploadImages(ctx context.Context, files []models.ImageFile) ([]models.UploadedImage, error)
}

// EditSession edits the clinical and paraclinical results of one patient
// case and submits them in a single request.
//
// Mutations address entries by kind and position (see results.Set). The
// session is safe for concurrent use: an image upload runs without holding
// the session lock, and while it is pending the uploading entry cannot be
// changed or removed, and no position in its kind may shift.
type EditSession interface {
	// Start fetches the case and category lists. On failure the previous
	// session (if any) is left as it was.
	Start(ctx context.Context, caseID models.ID) error
	// Resume restores a saved draft instead of fetching the case.
	Resume(ctx context.Context, caseID models.ID) error
	// Discard drops the session and its draft.
	Discard(ctx context.Context) error
	Drafts(ctx context.Context) ([]drafts.Summary, error)

	Active() bool
	CaseID() models.ID
	CaseName() string
	View(kind results.Kind) ([]results.Position, error)
	Categories(kind results.Kind) []models.Category
	CategoryName(kind results.Kind, id models.ID) string

	AddEntry(ctx context.Context, kind results.Kind) (int, error)
	UpdateField(ctx context.Context, kind results.Kind, pos int, field results.Field, value string) error
	// Capacity reports how many more images the entry at pos can hold.
	Capacity(kind results.Kind, pos int) (int, error)
	// AddImages uploads as many files as still fit on the entry and returns
	// how many were accepted.
	AddImages(ctx context.Context, kind results.Kind, pos int, files []models.ImageFile) (int, error)
	RemoveImage(ctx context.Context, kind results.Kind, pos int, imageID models.ID) error
	RemoveEntry(ctx context.Context, kind results.Kind, pos int) error

	Payload() (results.Payload, error)
	// Submit sends the payload. On failure the state is kept for a retry;
	// on success the session ends.
	Submit(ctx context.Context) error
}

type uploadKey struct {
	kind results.Kind
	key  string
}

type editSession struct {
	api      client.Client
	catalog  CatalogService
	uploader Uploader
	drafts   drafts.Repository
	meta     metadata.Repository
	log      logging.Logger

	mu         sync.Mutex
	active     bool
	caseID     models.ID
	caseName   string
	state      results.State
	categories map[results.Kind][]models.Category
	uploading  map[uploadKey]struct{}
}

// NewEditSession wires a session. drafts and meta may be nil, in which case
// nothing is persisted locally.
func NewEditSession(api client.Client, catalog CatalogService, uploader Uploader,
	draftRepo drafts.Repository, meta metadata.Repository, log logging.Logger) EditSession {
	return &editSession{
		api:       api,
		catalog:   catalog,
		uploader:  uploader,
		drafts:    draftRepo,
		meta:      meta,
		log:       log,
		uploading: make(map[uploadKey]struct{}),
	}
}

func (s *editSession) loadCategories(ctx context.Context) (map[results.Kind][]models.Category, error) {
	out := make(map[results.Kind][]models.Category, len(results.Kinds))
	for _, k := range results.Kinds {
		list, err := s.catalog.Lookup(ctx, k)
		if err != nil {
			return nil, err
		}
		out[k] = list
	}
	return out, nil
}

func (s *editSession) Start(ctx context.Context, caseID models.ID) error {
	cats, err := s.loadCategories(ctx)
	if err != nil {
		return err
	}

	pc, err := s.api.GetPatientCase(ctx, caseID)
	if err != nil {
		return fmt.Errorf("load case %s: %w", caseID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.uploading) > 0 {
		return ErrUploadInProgress
	}

	s.active = true
	s.caseID = caseID
	s.caseName = pc.Name
	s.state = results.LoadCase(*pc)
	s.categories = cats

	s.log.Info(ctx, "editing session started", "case", caseID,
		"clinical", len(s.state.Clinical), "paraclinical", len(s.state.Paraclinical))
	if s.meta != nil {
		if at, err := s.meta.LastSubmitted(ctx, caseID); err == nil {
			s.log.Info(ctx, "case was submitted before", "case", caseID, "last_submit", at)
		} else if !errors.Is(err, metadata.ErrKeyNotFound) {
			s.log.Warn(ctx, "failed to read submission time", "case", caseID, "error", err)
		}
	}
	return nil
}

func (s *editSession) Resume(ctx context.Context, caseID models.ID) error {
	if s.drafts == nil {
		return drafts.ErrDraftNotFound
	}
	d, err := s.drafts.Get(ctx, caseID)
	if err != nil {
		return err
	}

	cats, err := s.loadCategories(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.uploading) > 0 {
		return ErrUploadInProgress
	}

	s.active = true
	s.caseID = d.CaseID
	s.caseName = d.CaseName
	s.state = d.State
	s.categories = cats

	s.log.Info(ctx, "editing session resumed from draft", "case", caseID, "saved_at", d.SavedAt)
	return nil
}

func (s *editSession) Discard(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrSessionNotStarted
	}
	if len(s.uploading) > 0 {
		return ErrUploadInProgress
	}

	if s.drafts != nil {
		if err := s.drafts.Delete(ctx, s.caseID); err != nil {
			return err
		}
	}
	s.closeLocked()
	return nil
}

func (s *editSession) Drafts(ctx context.Context) ([]drafts.Summary, error) {
	if s.drafts == nil {
		return nil, nil
	}
	return s.drafts.List(ctx)
}

func (s *editSession) closeLocked() {
	s.active = false
	s.caseID = models.ID{}
	s.caseName = ""
	s.state = results.State{}
	s.categories = nil
}

func (s *editSession) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *editSession) CaseID() models.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caseID
}

func (s *editSession) CaseName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caseName
}

func (s *editSession) View(kind results.Kind) ([]results.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.setLocked(kind)
	if err != nil {
		return nil, err
	}
	return set.Visible(), nil
}

func (s *editSession) Categories(kind results.Kind) []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories[kind]
}

func (s *editSession) CategoryName(kind results.Kind, id models.ID) string {
	if id.IsZero() {
		return ""
	}
	for _, c := range s.Categories(kind) {
		if c.ID.Equal(id) {
			return c.Name
		}
	}
	return ""
}

func (s *editSession) setLocked(kind results.Kind) (results.Set, error) {
	if !s.active {
		return nil, ErrSessionNotStarted
	}
	return s.state.Get(kind)
}

// commitLocked replaces the Set of kind and saves a draft. A failing draft
// save is logged and does not undo the edit.
func (s *editSession) commitLocked(ctx context.Context, kind results.Kind, set results.Set) error {
	st, err := s.state.With(kind, set)
	if err != nil {
		return err
	}
	s.state = st

	if s.drafts != nil {
		d := drafts.Draft{CaseID: s.caseID, CaseName: s.caseName, State: st, SavedAt: time.Now().UTC()}
		if err := s.drafts.Save(ctx, d); err != nil {
			s.log.Warn(ctx, "failed to save draft", "case", s.caseID, "error", err)
		}
	}
	return nil
}

// busyLocked reports whether the entry at pos has a pending upload.
func (s *editSession) busyLocked(kind results.Kind, set results.Set, pos int) bool {
	e, err := set.At(pos)
	if err != nil {
		return false
	}
	_, ok := s.uploading[uploadKey{kind: kind, key: e.Key}]
	return ok
}

func (s *editSession) kindUploadingLocked(kind results.Kind) bool {
	for k := range s.uploading {
		if k.kind == kind {
			return true
		}
	}
	return false
}

func (s *editSession) AddEntry(ctx context.Context, kind results.Kind) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.setLocked(kind)
	if err != nil {
		return 0, err
	}
	next := set.Add()
	if err := s.commitLocked(ctx, kind, next); err != nil {
		return 0, err
	}
	return len(next) - 1, nil
}

func (s *editSession) UpdateField(ctx context.Context, kind results.Kind, pos int, field results.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.setLocked(kind)
	if err != nil {
		return err
	}
	if s.busyLocked(kind, set, pos) {
		return ErrUploadInProgress
	}

	var next results.Set
	if field == results.FieldCategory {
		id := models.ID{}
		if value != "" {
			c, ok := findCategory(s.categories[kind], value)
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownCategory, value)
			}
			id = c.ID
		}
		next, err = set.SetCategory(pos, id)
	} else {
		next, err = set.UpdateField(pos, field, value)
	}
	if err != nil {
		return err
	}
	return s.commitLocked(ctx, kind, next)
}

func (s *editSession) RemoveImage(ctx context.Context, kind results.Kind, pos int, imageID models.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.setLocked(kind)
	if err != nil {
		return err
	}
	if s.busyLocked(kind, set, pos) {
		return ErrUploadInProgress
	}

	next, err := set.RemoveImage(pos, imageID)
	if err != nil {
		return err
	}
	return s.commitLocked(ctx, kind, next)
}

func (s *editSession) RemoveEntry(ctx context.Context, kind results.Kind, pos int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.setLocked(kind)
	if err != nil {
		return err
	}
	if s.busyLocked(kind, set, pos) {
		return ErrUploadInProgress
	}
	if set.ShiftsOnRemove(pos) && s.kindUploadingLocked(kind) {
		return ErrUploadInProgress
	}

	next, err := set.Remove(pos)
	if err != nil {
		return err
	}
	return s.commitLocked(ctx, kind, next)
}

func (s *editSession) Capacity(kind results.Kind, pos int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.setLocked(kind)
	if err != nil {
		return 0, err
	}
	if s.busyLocked(kind, set, pos) {
		return 0, ErrUploadInProgress
	}
	return set.Accept(pos, results.MaxImages)
}

// beginUpload reserves the entry and returns its key and the accepted
// files.
func (s *editSession) beginUpload(kind results.Kind, pos int, files []models.ImageFile) (uploadKey, []models.ImageFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.setLocked(kind)
	if err != nil {
		return uploadKey{}, nil, err
	}
	if s.busyLocked(kind, set, pos) {
		return uploadKey{}, nil, ErrUploadInProgress
	}

	n, err := set.Accept(pos, len(files))
	if err != nil {
		return uploadKey{}, nil, err
	}
	if n == 0 {
		return uploadKey{}, nil, nil
	}

	k := uploadKey{kind: kind, key: set[pos].Key}
	s.uploading[k] = struct{}{}
	return k, files[:n], nil
}

func (s *editSession) endUpload(k uploadKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.uploading, k)
}

func (s *editSession) AddImages(ctx context.Context, kind results.Kind, pos int, files []models.ImageFile) (int, error) {
	k, accepted, err := s.beginUpload(kind, pos, files)
	if err != nil || len(accepted) == 0 {
		return 0, err
	}
	defer s.endUpload(k)

	if dropped := len(files) - len(accepted); dropped > 0 {
		s.log.Info(ctx, "image limit reached, extra files skipped",
			"kind", kind, "pos", pos, "skipped", dropped, "limit", results.MaxImages)
	}

	uploaded, err := s.uploader.UploadImages(ctx, accepted)
	if err != nil {
		return 0, fmt.Errorf("upload images: %w", err)
	}

	imgs := make([]results.Image, len(uploaded))
	for i, u := range uploaded {
		imgs[i] = results.Image{ID: u.ID, URL: u.URL}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.setLocked(kind)
	if err != nil {
		return 0, err
	}
	at := set.IndexOfKey(k.key)
	if at < 0 {
		return 0, fmt.Errorf("entry disappeared during upload: %w", results.ErrInvalidPosition)
	}
	next, err := set.PrependImages(at, imgs)
	if err != nil {
		return 0, err
	}
	if err := s.commitLocked(ctx, kind, next); err != nil {
		return 0, err
	}
	s.log.Debug(ctx, "images attached", "kind", kind, "pos", at, "images", models.IDs(next[at].ImageIDs()))
	return len(imgs), nil
}

func (s *editSession) Payload() (results.Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return results.Payload{}, ErrSessionNotStarted
	}
	return s.state.Payload(), nil
}

// validateLocked checks every live entry has a category.
func (s *editSession) validateLocked() error {
	for _, k := range results.Kinds {
		set, err := s.state.Get(k)
		if err != nil {
			return err
		}
		for _, p := range set.Visible() {
			if p.Entry.CategoryID.IsZero() {
				return fmt.Errorf("%w: %s #%d", ErrMissingCategory, k, p.Pos)
			}
		}
	}
	return nil
}

func (s *editSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrSessionNotStarted
	}
	if len(s.uploading) > 0 {
		return ErrUploadInProgress
	}
	if err := s.validateLocked(); err != nil {
		return err
	}

	payload := s.state.Payload()
	if err := s.api.UpdateTestResults(ctx, s.caseID, payload); err != nil {
		s.log.Error(ctx, "test results submission failed", "case", s.caseID, "error", err)
		return fmt.Errorf("submit test results: %w", err)
	}

	s.log.Info(ctx, "test results submitted", "case", s.caseID,
		"clinical", len(payload.ClinicalTests), "paraclinical", len(payload.ParaclinicalTests))

	if s.drafts != nil {
		if err := s.drafts.Delete(ctx, s.caseID); err != nil && !errors.Is(err, drafts.ErrDraftNotFound) {
			s.log.Warn(ctx, "failed to delete draft", "case", s.caseID, "error", err)
		}
	}
	if s.meta != nil {
		if err := s.meta.MarkSubmitted(ctx, s.caseID, time.Now()); err != nil {
			s.log.Warn(ctx, "failed to record submission time", "case", s.caseID, "error", err)
		}
	}

	s.closeLocked()
	return nil
}
