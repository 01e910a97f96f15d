// Package editor holds the open document of a workspace: its text and
// formatting, the debounced autosave, the annotation overlay and the
// analysis gate.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/writemate-backend/internal/domain"
	"github.com/heartmarshall/writemate-backend/internal/service/document"
)

var (
	ErrNoDocument       = errors.New("no document is open")
	ErrAnalysisInFlight = errors.New("analysis already in progress")

	// ErrOtherDocument rejects an edit addressed to a document that is no
	// longer the open one.
	ErrOtherDocument = fmt.Errorf("edit is for a document that is not open: %w", domain.ErrConflict)
)

type documentStore interface {
	Snapshot() document.Snapshot
	Subscribe(fn func(document.Snapshot)) (unsubscribe func())
	UpdateDocument(ctx context.Context, id uuid.UUID, upd domain.DocumentUpdate) (*domain.Document, error)
	ApplyAnalysis(ctx context.Context, documentID uuid.UUID, result domain.AnalysisResult) (*domain.Document, error)
}

type analyzer interface {
	AnalyzeDocument(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
	QuickCheck(ctx context.Context, content string) (*domain.QuickCheckResult, error)
}

// Config controls autosave and the analysis gate.
type Config struct {
	SaveDebounce    time.Duration
	SaveRetryDelay  time.Duration
	MaxSaveRetries  int
	MinAnalyzeWords int
}

type SaveState string

const (
	SaveIdle   SaveState = "idle"
	SaveDirty  SaveState = "dirty"
	SaveSaving SaveState = "saving"
)

type AnalysisState string

const (
	AnalysisReady     AnalysisState = "ready"
	AnalysisAnalyzing AnalysisState = "analyzing"
	AnalysisAnnotated AnalysisState = "annotated"
)

// Decoration is an annotation drawn over the text.
type Decoration struct {
	AnnotationID uuid.UUID       `json:"annotation_id"`
	From         int             `json:"from"`
	To           int             `json:"to"`
	Category     string          `json:"category"`
	Severity     domain.Severity `json:"severity"`
}

// saved is what the store holds for the open document.
type saved struct {
	content string
	html    string
}

// Editor is the single editor of a workspace. Its methods are safe for
// concurrent use; save timers lock the editor only.
type Editor struct {
	cfg      Config
	docs     documentStore
	analyzer analyzer
	clock    clockwork.Clock
	log      *slog.Logger
	baseCtx  context.Context

	saveMu   sync.Mutex
	debounce *debouncer

	mu            sync.Mutex
	doc           *domain.Document
	content       string
	marks         []Mark
	lastSaved     saved
	saveState     SaveState
	saveErr       error
	saveRetries   int
	analysisState AnalysisState
	analysisErr   string
	lastScores    *domain.Scores
	lastSummary   string
	annotations   []domain.Annotation
	storeVersion  uint64
	annVersion    uint64
	overlay       []Decoration
	selection     Selection
	scrollTarget  *int
	selected      *uuid.UUID

	unsubscribe func()
}

// New creates an editor following the current document of docs. baseCtx
// bounds background saves.
func New(baseCtx context.Context, cfg Config, docs documentStore, an analyzer, clock clockwork.Clock, log *slog.Logger) *Editor {
	e := &Editor{
		cfg:           cfg,
		docs:          docs,
		analyzer:      an,
		clock:         clock,
		log:           log.With("component", "editor"),
		baseCtx:       baseCtx,
		debounce:      newDebouncer(clock),
		saveState:     SaveIdle,
		analysisState: AnalysisReady,
	}
	e.onSnapshot(docs.Snapshot())
	e.unsubscribe = docs.Subscribe(e.onSnapshot)
	return e
}

// onSnapshot follows the document store. Content is only taken from the
// store when the open document changes; afterwards the editor owns it.
// Notifications come from several goroutines, so a snapshot older than the
// last one applied is dropped.
func (e *Editor) onSnapshot(snap document.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if snap.Version < e.storeVersion {
		return
	}
	e.storeVersion = snap.Version

	cur := snap.Current
	switch {
	case cur == nil:
		if e.doc != nil {
			e.debounce.Cancel()
			e.resetLocked()
		}
		return
	case e.doc == nil || e.doc.ID != cur.ID:
		e.debounce.Cancel()
		e.resetLocked()
		e.openLocked(*cur)
		e.annotations = slices.Clone(snap.Annotations)
		e.annVersion = snap.AnnotationsVersion
		if cur.Status == domain.DocumentStatusAnalyzed && len(e.annotations) > 0 {
			e.analysisState = AnalysisAnnotated
		}
		e.rebuildOverlayLocked()
		return
	}

	d := *cur
	e.doc = &d
	if snap.AnnotationsVersion > e.annVersion {
		e.annotations = slices.Clone(snap.Annotations)
		e.annVersion = snap.AnnotationsVersion
		e.rebuildOverlayLocked()
	}
}

func (e *Editor) openLocked(doc domain.Document) {
	e.doc = &doc
	e.content = doc.Content
	e.marks = nil

	if doc.ContentHTML != "" {
		text, marks, err := ParseHTML(doc.ContentHTML)
		switch {
		case err != nil:
			e.log.Warn("stored html unreadable", slog.String("document_id", doc.ID.String()), slog.String("error", err.Error()))
		case text != doc.Content:
			e.log.Warn("stored html does not match content", slog.String("document_id", doc.ID.String()))
		default:
			e.marks = marks
		}
	}
	// Stored html in another dialect is not a pending change.
	e.lastSaved = saved{content: doc.Content, html: RenderHTML(e.content, e.marks)}
}

func (e *Editor) resetLocked() {
	e.doc = nil
	e.content = ""
	e.marks = nil
	e.lastSaved = saved{}
	e.saveState = SaveIdle
	e.saveErr = nil
	e.saveRetries = 0
	e.analysisState = AnalysisReady
	e.analysisErr = ""
	e.lastScores = nil
	e.lastSummary = ""
	e.annotations = nil
	e.overlay = nil
	e.selection = Selection{}
	e.scrollTarget = nil
	e.selected = nil
}

// Close stops the save timer and detaches from the document store. Call
// Flush first to keep pending edits.
func (e *Editor) Close() {
	e.debounce.Cancel()
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

// DocumentID returns the open document id.
func (e *Editor) DocumentID() (uuid.UUID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return uuid.Nil, false
	}
	return e.doc.ID, true
}

// State is a read-only view of the editor.
type State struct {
	Document           *domain.Document
	Content            string
	ContentHTML        string
	Marks              []Mark
	WordCount          int
	SaveState          SaveState
	SaveError          string
	AnalysisState      AnalysisState
	AnalysisError      string
	CanAnalyze         bool
	Scores             *domain.Scores
	Summary            string
	Annotations        []domain.Annotation
	Overlay            []Decoration
	Selection          Selection
	ScrollTarget       *int
	SelectedAnnotation *uuid.UUID
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := State{
		Content:            e.content,
		ContentHTML:        RenderHTML(e.content, e.marks),
		Marks:              slices.Clone(e.marks),
		WordCount:          domain.CountWords(e.content),
		SaveState:          e.saveState,
		AnalysisState:      e.analysisState,
		AnalysisError:      e.analysisErr,
		CanAnalyze:         e.canAnalyzeLocked(),
		Summary:            e.lastSummary,
		Annotations:        slices.Clone(e.annotations),
		Overlay:            slices.Clone(e.overlay),
		Selection:          e.selection,
		ScrollTarget:       e.scrollTarget,
		SelectedAnnotation: e.selected,
	}
	if e.doc != nil {
		d := *e.doc
		st.Document = &d
	}
	if e.saveErr != nil {
		st.SaveError = e.saveErr.Error()
	}
	if e.lastScores != nil {
		sc := *e.lastScores
		st.Scores = &sc
	}
	if st.Marks == nil {
		st.Marks = []Mark{}
	}
	if st.Annotations == nil {
		st.Annotations = []domain.Annotation{}
	}
	if st.Overlay == nil {
		st.Overlay = []Decoration{}
	}
	return st
}
