// Package casestore is the durable store for saved atendimentos.
// JSON-backed: a single file, human-readable, portable. The whole
// collection is loaded at open and rewritten on every mutation; no
// locking beyond the in-process mutex, fine for a local single-user
// tool.
package casestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/previdlabs/ppp/internal/model"
	"github.com/previdlabs/ppp/pkg/log"
)

// Fields are the editable parts of a case: everything except id and
// timestamps, which the store owns.
type Fields struct {
	ClientName     string
	ClientCPF      string
	BenefitID      string
	BenefitName    string
	ChecklistItems []model.ChecklistItem
}

// Store owns the case collection, most-recently-created first.
type Store struct {
	mu     sync.Mutex
	path   string
	cases  []model.Atendimento
	loaded bool
	logger log.Logger
	now    func() time.Time
}

// Open loads the collection from path. A missing, empty, or corrupt
// file yields an empty collection with a logged warning; the store must
// always come up. Only unexpected I/O failures are returned.
func Open(path string, logger log.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		logger: logger,
		now:    time.Now,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	ctx := context.Background()
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.cases = []model.Atendimento{}
			s.loaded = true
			return nil
		}
		return fmt.Errorf("read cases file: %w", err)
	}
	if len(b) == 0 {
		s.cases = []model.Atendimento{}
		s.loaded = true
		return nil
	}
	var cases []model.Atendimento
	if err := json.Unmarshal(b, &cases); err != nil {
		// Corrupt data is dropped rather than blocking startup.
		s.logger.Warnf(ctx, "cases file %s is not valid JSON, starting empty: %v", s.path, err)
		s.cases = []model.Atendimento{}
		s.loaded = true
		return nil
	}
	s.cases = cases
	s.loaded = true
	return nil
}

// Create saves a new case: fresh id, createdAt == updatedAt == now,
// prepended so the newest case lists first. Returns the new id.
func (s *Store) Create(fields Fields) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	a := model.Atendimento{
		ID:             model.NewCaseID(),
		ClientName:     fields.ClientName,
		ClientCPF:      fields.ClientCPF,
		BenefitID:      fields.BenefitID,
		BenefitName:    fields.BenefitName,
		ChecklistItems: cloneItems(fields.ChecklistItems),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.cases = append([]model.Atendimento{a}, s.cases...)
	if err := s.persist(); err != nil {
		return "", err
	}
	return a.ID, nil
}

// Update merges fields into the case with the given id and refreshes
// updatedAt. Unknown ids are a no-op, not an error.
func (s *Store) Update(id string, fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cases {
		if s.cases[i].ID != id {
			continue
		}
		s.cases[i].ClientName = fields.ClientName
		s.cases[i].ClientCPF = fields.ClientCPF
		s.cases[i].BenefitID = fields.BenefitID
		s.cases[i].BenefitName = fields.BenefitName
		s.cases[i].ChecklistItems = cloneItems(fields.ChecklistItems)
		s.cases[i].UpdatedAt = s.now()
		return s.persist()
	}
	return nil
}

// Delete removes the case with the given id. Unknown ids are a no-op.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cases {
		if s.cases[i].ID == id {
			s.cases = append(s.cases[:i], s.cases[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// Get returns the case with the given id, or false.
func (s *Store) Get(id string) (model.Atendimento, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.cases {
		if a.ID == id {
			a.ChecklistItems = cloneItems(a.ChecklistItems)
			return a, true
		}
	}
	return model.Atendimento{}, false
}

// All returns the collection, newest first.
func (s *Store) All() []model.Atendimento {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Atendimento, len(s.cases))
	for i, a := range s.cases {
		a.ChecklistItems = cloneItems(a.ChecklistItems)
		out[i] = a
	}
	return out
}

// Loaded reports whether the initial load has run.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// persist rewrites the whole collection. Caller holds the mutex.
func (s *Store) persist() error {
	b, err := json.MarshalIndent(s.cases, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write cases file: %w", err)
	}
	return nil
}

func cloneItems(items []model.ChecklistItem) []model.ChecklistItem {
	if items == nil {
		return []model.ChecklistItem{}
	}
	out := make([]model.ChecklistItem, len(items))
	copy(out, items)
	return out
}
