// Package session orchestrates the edit workflow: loading a container or
// document, mutating inventory values through catalog keys, and committing
// or exporting the result. Every destructive write is backup-guarded.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"saveforge/internal/backup"
	"saveforge/internal/catalog"
	"saveforge/internal/history"
	"saveforge/internal/logging"
	"saveforge/internal/savedoc"
	"saveforge/internal/services"
	"saveforge/internal/services/uesave"
)

// State tracks the session lifecycle.
type State int

const (
	StateEmpty State = iota
	StateLoaded
	StateModified
	StateCommitted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateModified:
		return "modified"
	case StateCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// Options bundles the session's collaborators.
type Options struct {
	Catalog   *catalog.Catalog
	Converter *uesave.Client
	Backups   *backup.Manager
	Journal   *history.Store
	Logger    *slog.Logger
}

// Session owns one save document at a time. Loading a new container or
// document discards unsaved edits without warning; that mirrors the
// reference tool's last-write-wins policy and is a documented non-goal.
type Session struct {
	id        string
	catalog   *catalog.Catalog
	converter *uesave.Client
	backups   *backup.Manager
	journal   *history.Store
	logger    *slog.Logger

	state  State
	doc    *savedoc.Document
	lock   *flock.Flock
	edited []string
}

// New constructs a session. Catalog and Backups are required; Converter is
// only needed for container loads and exports, Journal is optional.
func New(opts Options) (*Session, error) {
	if opts.Catalog == nil {
		return nil, services.Wrap(services.ErrConfiguration, "session", "new", "catalog required", nil)
	}
	if opts.Backups == nil {
		return nil, services.Wrap(services.ErrConfiguration, "session", "new", "backup manager required", nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Session{
		id:        uuid.NewString(),
		catalog:   opts.Catalog,
		converter: opts.Converter,
		backups:   opts.Backups,
		journal:   opts.Journal,
		logger:    logger,
		state:     StateEmpty,
	}, nil
}

// log returns the session logger enriched with the session identifier and
// any fields carried on the context.
func (s *Session) log(ctx context.Context) *slog.Logger {
	return logging.WithContext(logging.WithSession(ctx, s.id), s.logger)
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Document returns the loaded document, or nil in the empty state.
func (s *Session) Document() *savedoc.Document { return s.doc }

// Catalog returns the catalog the session was built with.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// LoadContainer backs up the container, converts it to its document form,
// and loads the result. Requires a converter.
func (s *Session) LoadContainer(ctx context.Context, containerPath string) error {
	if s.converter == nil {
		return services.Wrap(services.ErrConfiguration, "session", "load container", "converter not configured", nil)
	}

	backupPath, err := s.backups.Backup(containerPath)
	if err != nil {
		return err
	}
	s.record(ctx, history.EventBackup, containerPath, backupPath)

	documentPath, err := s.converter.ToDocument(ctx, containerPath)
	if err != nil {
		return err
	}

	if err := s.loadDocument(ctx, documentPath); err != nil {
		return err
	}
	s.log(ctx).Info("container loaded",
		logging.String("container", containerPath),
		logging.String("document", documentPath),
		logging.String("backup", backupPath))
	return nil
}

// LoadDocument loads an already-converted document directly.
func (s *Session) LoadDocument(ctx context.Context, documentPath string) error {
	if err := s.loadDocument(ctx, documentPath); err != nil {
		return err
	}
	s.log(ctx).Info("document loaded", logging.String("document", documentPath))
	return nil
}

func (s *Session) loadDocument(ctx context.Context, documentPath string) error {
	doc, err := savedoc.Load(documentPath)
	if err != nil {
		return err
	}

	// Unsaved edits on a previously loaded document are discarded here. The
	// old lock goes first: flock is per file description, so re-locking the
	// same document from this session would otherwise deadlock against
	// itself.
	s.releaseLock()

	lock := flock.New(documentPath + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire document lock: %w", err)
	}
	if !ok {
		return services.Wrap(services.ErrConfiguration, "session", "load",
			fmt.Sprintf("another session is editing %s", documentPath), nil)
	}
	s.doc = doc
	s.lock = lock
	s.edited = nil
	s.state = StateLoaded
	s.record(ctx, history.EventLoad, documentPath, fmt.Sprintf("%d inventory entries", doc.EntryCount()))
	return nil
}

// Get returns the current value for a save key. The second return
// distinguishes absence from zero.
func (s *Session) Get(key string) (int64, bool) {
	if s.doc == nil {
		return 0, false
	}
	return s.doc.Get(key)
}

// SetString parses and applies one edit. A non-integer value yields a
// ValueFormatError and leaves the document untouched, so one bad field
// never spoils the others.
func (s *Session) SetString(key, raw string) error {
	if s.doc == nil {
		return services.Wrap(services.ErrConfiguration, "session", "set", "no document loaded", nil)
	}
	raw = strings.TrimSpace(raw)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return services.Wrap(services.ErrValueFormat, "session", "set",
			fmt.Sprintf("%s=%q is not an integer", key, raw), nil)
	}
	s.Set(key, value)
	return nil
}

// Set applies one integer edit and marks the session modified.
func (s *Session) Set(key string, value int64) {
	if s.doc == nil {
		return
	}
	s.doc.Set(key, value)
	s.edited = append(s.edited, key)
	s.state = StateModified
}

// Commit re-embeds the edited entries into every inventory property, backs
// up the live document file, and writes the new document. Valid from the
// loaded state too: a no-op resave is allowed.
func (s *Session) Commit(ctx context.Context) error {
	if s.doc == nil {
		return services.Wrap(services.ErrConfiguration, "session", "commit", "no document loaded", nil)
	}

	s.doc.Flush()

	backupPath, err := s.backups.Backup(s.doc.Path())
	if err != nil {
		return err
	}
	s.record(ctx, history.EventBackup, s.doc.Path(), backupPath)

	if err := os.WriteFile(s.doc.Path(), s.doc.Serialize(), 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}

	detail := fmt.Sprintf("%d edits", len(s.edited))
	s.record(ctx, history.EventCommit, s.doc.Path(), detail)
	s.log(ctx).Info("document committed",
		logging.String("document", s.doc.Path()),
		logging.Int("edits", len(s.edited)),
		logging.String("backup", backupPath))

	s.edited = nil
	s.state = StateCommitted
	return nil
}

// Export converts the loaded document back into a container. Valid from any
// state with a loaded document and does not change the session's state.
func (s *Session) Export(ctx context.Context) (string, error) {
	if s.doc == nil {
		return "", services.Wrap(services.ErrConfiguration, "session", "export", "no document loaded", nil)
	}
	if s.converter == nil {
		return "", services.Wrap(services.ErrConfiguration, "session", "export", "converter not configured", nil)
	}

	containerPath, err := s.converter.FromDocument(ctx, s.doc.Path())
	if err != nil {
		return "", err
	}
	s.record(ctx, history.EventExport, s.doc.Path(), containerPath)
	s.log(ctx).Info("container exported",
		logging.String("document", s.doc.Path()),
		logging.String("container", containerPath))
	return containerPath, nil
}

// Close releases the document lock.
func (s *Session) Close() error {
	s.releaseLock()
	return nil
}

func (s *Session) releaseLock() {
	if s.lock == nil {
		return
	}
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release document lock", logging.Error(err))
	}
	s.lock = nil
}

func (s *Session) record(ctx context.Context, eventType history.EventType, savePath, detail string) {
	if s.journal == nil {
		return
	}
	if _, err := s.journal.Record(ctx, eventType, savePath, detail); err != nil {
		s.log(ctx).Warn("failed to journal event",
			logging.String("event", string(eventType)),
			logging.Error(err))
	}
}
