package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/dgallion1/batnadoc/internal/export"
	"github.com/dgallion1/batnadoc/internal/form"
	"github.com/dgallion1/batnadoc/internal/generate"
	"github.com/dgallion1/batnadoc/internal/history"
	"github.com/dgallion1/batnadoc/internal/prompt"
	"github.com/dgallion1/batnadoc/internal/segment"
)

var (
	// ErrGenerationFailure is matched by every *GenerationError.
	ErrGenerationFailure = errors.New("generation failure")

	// ErrBusy is returned when a session submits while a generation is
	// still outstanding.
	ErrBusy = errors.New("a document is already being generated")

	// ErrNoDocument is returned by Export when nothing is on display.
	ErrNoDocument = errors.New("no document to export")

	errEmptyResponse = errors.New("empty response")
)

// GenerationError wraps the cause of a failed generation call.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("document generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func (e *GenerationError) Is(target error) bool { return target == ErrGenerationFailure }

// Controller runs the user-facing operations against a session.
type Controller struct {
	gen        generate.Generator
	tmpl       *prompt.Template
	opts       export.Options
	classifier segment.Classifier
	timeout    time.Duration
	log        *slog.Logger
	now        func() time.Time
}

// ControllerConfig wires a Controller. Timeout 0 means the generation call
// has no deadline of its own.
type ControllerConfig struct {
	Generator  generate.Generator
	Template   *prompt.Template
	Export     export.Options
	Classifier segment.Classifier
	Timeout    time.Duration
	Log        *slog.Logger
}

func NewController(cfg ControllerConfig) *Controller {
	c := &Controller{
		gen:        cfg.Generator,
		tmpl:       cfg.Template,
		opts:       cfg.Export,
		classifier: cfg.Classifier,
		timeout:    cfg.Timeout,
		log:        cfg.Log,
		now:        time.Now,
	}
	if c.classifier == nil {
		c.classifier = segment.Default
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// Submit validates the form values, generates a document and records it.
// Unless the session is busy, the live form keeps what was submitted
// whatever the outcome. On failure the history is untouched.
func (c *Controller) Submit(ctx context.Context, s *Session, values map[string]string) (history.Entry, error) {
	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return history.Entry{}, ErrBusy
	}
	s.setFormLocked(values)
	snap, err := form.Validate(values)
	if err != nil {
		s.mu.Unlock()
		return history.Entry{}, err
	}
	s.generating = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.generating = false
		s.mu.Unlock()
	}()

	text, err := c.tmpl.Build(snap)
	if err != nil {
		return history.Entry{}, fmt.Errorf("build prompt: %w", err)
	}

	log := c.log.With("session_id", s.ID, "prompt_version", c.tmpl.Version)
	log.Debug("generating document", "prompt_tokens_est", prompt.EstimateTokens(text))
	start := time.Now()

	doc, err := c.call(ctx, text)
	if err != nil {
		log.Warn("generation failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return history.Entry{}, &GenerationError{Err: err}
	}

	s.mu.Lock()
	entry := s.history.Insert(doc, snap)
	cur := entry
	s.current = &cur
	s.mu.Unlock()

	log.Info("document generated",
		"entry_id", entry.ID,
		"response_tokens_est", prompt.EstimateTokens(doc),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return entry, nil
}

func (c *Controller) call(ctx context.Context, text string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	doc, err := c.gen.Generate(ctx, text)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(doc) == "" {
		return "", errEmptyResponse
	}
	return doc, nil
}

// View puts a history entry on display and restores the inputs it was
// generated from into the form.
func (c *Controller) View(s *Session, id string) (history.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, err := s.history.Get(id)
	if err != nil {
		return history.Entry{}, err
	}
	cur := entry
	s.current = &cur
	s.form = maps.Clone(entry.Input)
	return entry, nil
}

// NewDocument leaves the document view and empties the form.
func (c *Controller) NewDocument(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.form = map[string]string{}
}

// History lists the session's entries, newest first.
func (c *Controller) History(s *Session) []history.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.List()
}

// Remove deletes one history entry. A document already on display stays
// there.
func (c *Controller) Remove(s *Session, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.history.Remove(id); err != nil {
		return err
	}
	c.log.Info("history entry removed", "session_id", s.ID, "entry_id", id)
	return nil
}

// Clear empties the session's history.
func (c *Controller) Clear(s *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Clear()
	c.log.Info("history cleared", "session_id", s.ID)
}

// Download is a rendered export ready to send.
type Download struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Export renders the displayed document, or the history entry named by
// entryID, in the given format. A failure leaves session state untouched.
func (c *Controller) Export(s *Session, format, entryID string) (Download, error) {
	ex, err := export.New(format, c.opts)
	if err != nil {
		return Download{}, err
	}

	doc, err := c.document(s, entryID)
	if err != nil {
		return Download{}, err
	}

	at := c.now()
	data, err := ex.Export(segment.Split(doc, c.classifier), at)
	if err != nil {
		c.log.Warn("export failed", "session_id", s.ID, "format", ex.Format().Name, "error", err)
		return Download{}, err
	}
	return Download{
		Data:        data,
		ContentType: ex.Format().ContentType,
		Filename:    ex.Format().Filename(at),
	}, nil
}

func (c *Controller) document(s *Session, entryID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entryID != "" {
		entry, err := s.history.Get(entryID)
		if err != nil {
			return "", err
		}
		return entry.Document, nil
	}
	if s.current == nil {
		return "", ErrNoDocument
	}
	return s.current.Document, nil
}
