// Package workspacetest provides in-memory stand-ins for the repositories and
// remote services a workspace is built from.
package workspacetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/writemate-backend/internal/domain"
)

// Storage is per-device key/value storage keyed by client id.
type Storage struct {
	mu   sync.Mutex
	data map[uuid.UUID]map[string]string
}

func NewStorage() *Storage {
	return &Storage{data: make(map[uuid.UUID]map[string]string)}
}

// For returns the storage of one device.
func (s *Storage) For(clientID uuid.UUID) *Local {
	return &Local{parent: s, clientID: clientID}
}

type Local struct {
	parent   *Storage
	clientID uuid.UUID
}

func (l *Local) Get(_ context.Context, key string) (string, bool, error) {
	l.parent.mu.Lock()
	defer l.parent.mu.Unlock()
	v, ok := l.parent.data[l.clientID][key]
	return v, ok, nil
}

func (l *Local) Set(_ context.Context, key, value string) error {
	l.parent.mu.Lock()
	defer l.parent.mu.Unlock()
	m, ok := l.parent.data[l.clientID]
	if !ok {
		m = make(map[string]string)
		l.parent.data[l.clientID] = m
	}
	m[key] = value
	return nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	l.parent.mu.Lock()
	defer l.parent.mu.Unlock()
	delete(l.parent.data[l.clientID], key)
	return nil
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

type Sessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.Session
	personas map[uuid.UUID]domain.Persona
}

func NewSessions() *Sessions {
	return &Sessions{
		sessions: make(map[uuid.UUID]domain.Session),
		personas: make(map[uuid.UUID]domain.Persona),
	}
}

// Put inserts a session as-is.
func (s *Sessions) Put(sess domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

func (s *Sessions) Create(context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	sess := domain.Session{ID: uuid.New(), CreatedAt: now, LastActiveAt: now}
	s.sessions[sess.ID] = sess
	return &sess, nil
}

func (s *Sessions) GetByID(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sess, nil
}

func (s *Sessions) Touch(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	sess.LastActiveAt = time.Now()
	s.sessions[id] = sess
	return nil
}

func (s *Sessions) GetPersona(_ context.Context, sessionID uuid.UUID) (*domain.Persona, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.personas[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *Sessions) CreatePersona(_ context.Context, p domain.Persona) (*domain.Persona, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.personas[p.SessionID]; ok {
		return nil, domain.ErrAlreadyExists
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.personas[p.SessionID] = p
	return &p, nil
}

func (s *Sessions) UpdatePersona(_ context.Context, p domain.Persona) (*domain.Persona, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.personas[p.SessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.ID = old.ID
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = time.Now()
	s.personas[p.SessionID] = p
	return &p, nil
}

// ---------------------------------------------------------------------------
// Documents
// ---------------------------------------------------------------------------

// Documents stores documents and records every content save.
type Documents struct {
	mu    sync.Mutex
	docs  map[uuid.UUID]domain.Document
	saves map[uuid.UUID][]string
}

func NewDocuments(docs ...domain.Document) *Documents {
	m := &Documents{docs: make(map[uuid.UUID]domain.Document), saves: make(map[uuid.UUID][]string)}
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return m
}

// Put inserts or replaces a document as-is.
func (m *Documents) Put(d domain.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[d.ID] = d
}

func (m *Documents) GetByID(_ context.Context, sessionID, id uuid.UUID) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok || d.SessionID != sessionID {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (m *Documents) ListBySession(_ context.Context, sessionID uuid.UUID) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Document
	for _, d := range m.docs {
		if d.SessionID == sessionID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *Documents) Create(_ context.Context, sessionID uuid.UUID, title string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	d := domain.Document{
		ID:        uuid.New(),
		SessionID: sessionID,
		Title:     title,
		Status:    domain.DocumentStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.docs[d.ID] = d
	return &d, nil
}

func (m *Documents) Update(_ context.Context, sessionID, id uuid.UUID, upd domain.DocumentUpdate) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok || d.SessionID != sessionID {
		return nil, domain.ErrNotFound
	}
	if upd.Title != nil {
		d.Title = *upd.Title
	}
	if upd.Content != nil {
		d.Content = *upd.Content
		m.saves[id] = append(m.saves[id], *upd.Content)
	}
	if upd.ContentHTML != nil {
		d.ContentHTML = *upd.ContentHTML
	}
	if upd.WordCount != nil {
		d.WordCount = *upd.WordCount
	}
	if upd.Status != nil {
		d.Status = *upd.Status
	}
	d.UpdatedAt = time.Now()
	m.docs[id] = d
	return &d, nil
}

func (m *Documents) Delete(_ context.Context, sessionID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok || d.SessionID != sessionID {
		return domain.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

// Saves returns the contents written to a document, oldest first.
func (m *Documents) Saves(id uuid.UUID) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.saves[id]...)
}

// ---------------------------------------------------------------------------
// Annotations
// ---------------------------------------------------------------------------

type Annotations struct {
	mu    sync.Mutex
	docs  *Documents
	items map[uuid.UUID][]domain.Annotation
}

// NewAnnotations checks dismiss ownership against docs.
func NewAnnotations(docs *Documents) *Annotations {
	return &Annotations{docs: docs, items: make(map[uuid.UUID][]domain.Annotation)}
}

func (a *Annotations) ListActive(_ context.Context, documentID uuid.UUID) ([]domain.Annotation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []domain.Annotation
	for _, it := range a.items[documentID] {
		if !it.IsDismissed {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartOffset < out[j].StartOffset })
	return out, nil
}

func (a *Annotations) CreateBatch(_ context.Context, documentID uuid.UUID, items []domain.Annotation) ([]domain.Annotation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.Annotation, len(items))
	for i, it := range items {
		it.ID = uuid.New()
		it.DocumentID = documentID
		it.CreatedAt = time.Now()
		out[i] = it
	}
	a.items[documentID] = append(a.items[documentID], out...)
	return out, nil
}

func (a *Annotations) Dismiss(ctx context.Context, sessionID, id uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for docID, list := range a.items {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			if _, err := a.docs.GetByID(ctx, sessionID, docID); err != nil {
				return domain.ErrNotFound
			}
			list[i].IsDismissed = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (a *Annotations) DeleteByDocument(_ context.Context, documentID uuid.UUID) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := int64(len(a.items[documentID]))
	delete(a.items, documentID)
	return n, nil
}

// ---------------------------------------------------------------------------
// Progress
// ---------------------------------------------------------------------------

type Progress struct {
	mu       sync.Mutex
	metrics  []domain.ProgressMetric
	patterns map[uuid.UUID]map[string]*domain.WritingPattern
	analyses int
}

func NewProgress() *Progress {
	return &Progress{patterns: make(map[uuid.UUID]map[string]*domain.WritingPattern)}
}

func (p *Progress) ListMetrics(_ context.Context, sessionID uuid.UUID) ([]domain.ProgressMetric, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []domain.ProgressMetric
	for _, m := range p.metrics {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (p *Progress) ListPatterns(_ context.Context, sessionID uuid.UUID) ([]domain.WritingPattern, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []domain.WritingPattern
	for _, wp := range p.patterns[sessionID] {
		out = append(out, *wp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OccurrenceCount != out[j].OccurrenceCount {
			return out[i].OccurrenceCount > out[j].OccurrenceCount
		}
		return out[i].LastOccurrenceAt.After(out[j].LastOccurrenceAt)
	})
	return out, nil
}

func (p *Progress) CreateMetric(_ context.Context, m domain.ProgressMetric) (*domain.ProgressMetric, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	p.metrics = append(p.metrics, m)
	return &m, nil
}

func (p *Progress) UpsertPattern(_ context.Context, sessionID uuid.UUID, dp domain.DetectedPattern) (*domain.WritingPattern, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	bySession, ok := p.patterns[sessionID]
	if !ok {
		bySession = make(map[string]*domain.WritingPattern)
		p.patterns[sessionID] = bySession
	}
	wp, ok := bySession[dp.PatternType]
	if !ok {
		wp = &domain.WritingPattern{ID: uuid.New(), SessionID: sessionID, PatternType: dp.PatternType, Description: dp.Description}
		bySession[dp.PatternType] = wp
	}
	wp.OccurrenceCount++
	wp.LastOccurrenceAt = time.Now()
	out := *wp
	return &out, nil
}

func (p *Progress) RecordAnalysis(context.Context, uuid.UUID, uuid.UUID, string, []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.analyses++
	return nil
}

// Analyses is the number of recorded analysis runs.
func (p *Progress) Analyses() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.analyses
}

// ---------------------------------------------------------------------------
// Vocabulary
// ---------------------------------------------------------------------------

type Vocabulary struct {
	mu    sync.Mutex
	words map[uuid.UUID]domain.VocabularyWord
}

func NewVocabulary() *Vocabulary {
	return &Vocabulary{words: make(map[uuid.UUID]domain.VocabularyWord)}
}

func (v *Vocabulary) ListBySession(_ context.Context, sessionID uuid.UUID) ([]domain.VocabularyWord, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []domain.VocabularyWord
	for _, w := range v.words {
		if w.SessionID == sessionID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (v *Vocabulary) Create(_ context.Context, w domain.VocabularyWord) (*domain.VocabularyWord, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	w.WordNormalized = domain.NormalizeText(w.Word)
	for _, existing := range v.words {
		if existing.SessionID == w.SessionID && existing.WordNormalized == w.WordNormalized {
			return nil, domain.ErrAlreadyExists
		}
	}
	w.ID = uuid.New()
	w.CreatedAt = time.Now()
	v.words[w.ID] = w
	return &w, nil
}

func (v *Vocabulary) Update(_ context.Context, sessionID, id uuid.UUID, upd domain.VocabularyUpdate) (*domain.VocabularyWord, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	w, ok := v.words[id]
	if !ok || w.SessionID != sessionID {
		return nil, domain.ErrNotFound
	}
	if upd.Definition != nil {
		w.Definition = *upd.Definition
	}
	if upd.PartOfSpeech != nil {
		w.PartOfSpeech = *upd.PartOfSpeech
	}
	if upd.ExampleSentence != nil {
		w.ExampleSentence = upd.ExampleSentence
	}
	if upd.IsLearned != nil {
		w.IsLearned = *upd.IsLearned
	}
	v.words[id] = w
	return &w, nil
}

func (v *Vocabulary) IncrementReviewCount(_ context.Context, sessionID, id uuid.UUID) (*domain.VocabularyWord, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	w, ok := v.words[id]
	if !ok || w.SessionID != sessionID {
		return nil, domain.ErrNotFound
	}
	w.ReviewCount++
	v.words[id] = w
	return &w, nil
}

func (v *Vocabulary) Delete(_ context.Context, sessionID, id uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	w, ok := v.words[id]
	if !ok || w.SessionID != sessionID {
		return domain.ErrNotFound
	}
	delete(v.words, id)
	return nil
}

// Tx runs the callback inline.
type Tx struct{}

func (Tx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
