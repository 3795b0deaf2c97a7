package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/domain"
	"github.com/madeBeine/fastcomand-all-v1-sub001/internal/ports"

	"github.com/rs/zerolog"
)

// File names under the data directory. Each file is an independent JSON
// document created on first write.
const (
	publishedFile = "published.json"
	versionsFile  = "versions.json"
	auditFile     = "audit-log.json"
)

// Store persists the settings state as three flat JSON files. Every write is
// a whole-file read-modify-write, so each file carries its own mutex: two
// concurrent writers to the same file would otherwise lose an update.
type Store struct {
	dir    string
	logger zerolog.Logger

	publishedMu sync.Mutex
	versionsMu  sync.Mutex
	auditMu     sync.Mutex
}

// New creates a file store rooted at dir, creating the directory if needed.
func New(dir string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	logger.Debug().Str("dir", dir).Msg("Settings file store ready")
	return &Store{dir: dir, logger: logger}, nil
}

// Versions returns the version history repository backed by versions.json.
func (s *Store) Versions() ports.VersionRepository { return &versionRepo{s} }

// Audit returns the audit-log repository backed by audit-log.json.
func (s *Store) Audit() ports.AuditRepository { return &auditRepo{s} }

// Published returns the published-document store backed by published.json.
func (s *Store) Published() ports.PublishedStore { return &publishedStore{s} }

func (s *Store) readJSON(name string, out any) (bool, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return true, nil
}

// writeJSON writes through a temp file and renames it into place so a crash
// mid-write never leaves a truncated document behind.
func (s *Store) writeJSON(name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

type versionRepo struct{ s *Store }

func (r *versionRepo) Insert(ctx context.Context, version *domain.SettingsVersion) error {
	r.s.versionsMu.Lock()
	defer r.s.versionsMu.Unlock()

	var versions []*domain.SettingsVersion
	if _, err := r.s.readJSON(versionsFile, &versions); err != nil {
		return err
	}
	// Newest first: creation always prepends.
	versions = append([]*domain.SettingsVersion{version}, versions...)
	return r.s.writeJSON(versionsFile, versions)
}

func (r *versionRepo) Get(ctx context.Context, id string) (*domain.SettingsVersion, error) {
	r.s.versionsMu.Lock()
	defer r.s.versionsMu.Unlock()

	var versions []*domain.SettingsVersion
	if _, err := r.s.readJSON(versionsFile, &versions); err != nil {
		return nil, err
	}
	for _, v := range versions {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, nil
}

func (r *versionRepo) List(ctx context.Context) ([]*domain.SettingsVersion, error) {
	r.s.versionsMu.Lock()
	defer r.s.versionsMu.Unlock()

	versions := []*domain.SettingsVersion{}
	if _, err := r.s.readJSON(versionsFile, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

func (r *versionRepo) MarkPublished(ctx context.Context, id string, at time.Time) error {
	r.s.versionsMu.Lock()
	defer r.s.versionsMu.Unlock()

	var versions []*domain.SettingsVersion
	if _, err := r.s.readJSON(versionsFile, &versions); err != nil {
		return err
	}
	for _, v := range versions {
		if v.ID == id {
			v.Status = domain.VersionStatusPublished
			v.PublishedAt = &at
			return r.s.writeJSON(versionsFile, versions)
		}
	}
	return domain.ErrVersionNotFound
}

type auditRepo struct{ s *Store }

func (r *auditRepo) Append(ctx context.Context, entry *domain.AuditLogEntry) error {
	r.s.auditMu.Lock()
	defer r.s.auditMu.Unlock()

	var entries []*domain.AuditLogEntry
	if _, err := r.s.readJSON(auditFile, &entries); err != nil {
		return err
	}
	entries = append([]*domain.AuditLogEntry{entry}, entries...)
	return r.s.writeJSON(auditFile, entries)
}

func (r *auditRepo) List(ctx context.Context) ([]*domain.AuditLogEntry, error) {
	r.s.auditMu.Lock()
	defer r.s.auditMu.Unlock()

	entries := []*domain.AuditLogEntry{}
	if _, err := r.s.readJSON(auditFile, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

type publishedStore struct{ s *Store }

func (p *publishedStore) Get(ctx context.Context) (*domain.ConfigurationDocument, error) {
	p.s.publishedMu.Lock()
	defer p.s.publishedMu.Unlock()

	var doc domain.ConfigurationDocument
	found, err := p.s.readJSON(publishedFile, &doc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &doc, nil
}

func (p *publishedStore) Set(ctx context.Context, doc domain.ConfigurationDocument) error {
	p.s.publishedMu.Lock()
	defer p.s.publishedMu.Unlock()

	return p.s.writeJSON(publishedFile, doc)
}
