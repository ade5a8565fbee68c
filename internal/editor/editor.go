// Package editor holds the one case currently being composed. It is a
// working copy, decoupled from the store until saved; every mutation
// marks it dirty and (re)arms a debounced autosave.
package editor

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/previdlabs/ppp/internal/model"
	"github.com/previdlabs/ppp/internal/store/casestore"
	"github.com/previdlabs/ppp/pkg/log"
)

// BenefitLookup resolves a benefit id to its display name and ordered
// document template. ok is false for unknown ids.
type BenefitLookup func(id string) (name string, documents []string, ok bool)

// Options tune the editor.
type Options struct {
	// AutosaveDelay is the debounce window; edits within it coalesce
	// into a single save. Zero means the 2s default.
	AutosaveDelay time.Duration
	Logger        log.Logger
}

// Editor is the per-session editing state for a single case.
type Editor struct {
	mu     sync.Mutex
	store  *casestore.Store
	lookup BenefitLookup
	logger log.Logger
	delay  time.Duration

	activeID    string
	clientName  string
	clientCPF   string
	benefitID   string
	benefitName string
	items       []model.ChecklistItem
	dirty       bool

	timer *time.Timer
}

// Snapshot is a point-in-time copy of the editor, safe to render from.
type Snapshot struct {
	ActiveID    string
	ClientName  string
	ClientCPF   string
	BenefitID   string
	BenefitName string
	Items       []model.ChecklistItem
	Dirty       bool
}

// New builds an editor over the given store and benefit catalog.
func New(store *casestore.Store, lookup BenefitLookup, opts Options) *Editor {
	delay := opts.AutosaveDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	return &Editor{
		store:  store,
		lookup: lookup,
		logger: logger,
		delay:  delay,
	}
}

// SetClientName replaces the client name.
func (e *Editor) SetClientName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clientName = name
	e.markDirtyLocked()
}

// SetClientCPF stores the CPF with the display mask applied.
func (e *Editor) SetClientCPF(cpf string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clientCPF = model.FormatCPF(cpf)
	e.markDirtyLocked()
}

// SelectBenefit switches the case to the given benefit and replaces the
// whole checklist with that benefit's document template, all unchecked,
// in template order. Any manual edits to the previous checklist are
// discarded; callers that want a confirmation step must ask before
// calling. Unknown ids keep the current checklist.
func (e *Editor) SelectBenefit(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.benefitID = id
	if name, docs, ok := e.lookup(id); ok {
		e.benefitName = name
		items := make([]model.ChecklistItem, 0, len(docs))
		for _, doc := range docs {
			items = append(items, model.ChecklistItem{ID: model.NewItemID(), Text: doc})
		}
		e.items = items
	} else {
		e.benefitName = ""
	}
	e.markDirtyLocked()
}

// ToggleItem flips the delivered flag of the matching item.
func (e *Editor) ToggleItem(itemID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID == itemID {
			e.items[i].Checked = !e.items[i].Checked
			break
		}
	}
	e.markDirtyLocked()
}

// EditItemText replaces the matching item's text. Text that trims to
// empty is rejected and the item keeps its old text.
func (e *Editor) EditItemText(itemID, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID == itemID {
			e.items[i].Text = text
			break
		}
	}
	e.markDirtyLocked()
}

// RemoveItem deletes the matching item.
func (e *Editor) RemoveItem(itemID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ID == itemID {
			e.items = append(e.items[:i], e.items[i+1:]...)
			break
		}
	}
	e.markDirtyLocked()
}

// AddItem appends a new unchecked item. Text that trims to empty is
// rejected; reports whether the item was added.
func (e *Editor) AddItem(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = append(e.items, model.ChecklistItem{ID: model.NewItemID(), Text: text})
	e.markDirtyLocked()
	return true
}

// AddBulkItems appends each text as a new unchecked item, preserving
// the given order. Used by the rural-proofs picker.
func (e *Editor) AddBulkItems(texts []string) {
	if len(texts) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, t := range texts {
		e.items = append(e.items, model.ChecklistItem{ID: model.NewItemID(), Text: t})
	}
	e.markDirtyLocked()
}

// Save commits the working copy. A case with no id yet is created and
// adopts the new id; otherwise the existing case is updated. The dirty
// flag clears on success.
func (e *Editor) Save() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saveLocked()
}

func (e *Editor) saveLocked() error {
	e.cancelAutosaveLocked()

	fields := casestore.Fields{
		ClientName:     e.clientName,
		ClientCPF:      e.clientCPF,
		BenefitID:      e.benefitID,
		BenefitName:    e.benefitName,
		ChecklistItems: e.items,
	}
	if e.activeID == "" {
		id, err := e.store.Create(fields)
		if err != nil {
			return err
		}
		e.activeID = id
	} else {
		if err := e.store.Update(e.activeID, fields); err != nil {
			return err
		}
	}
	e.dirty = false
	return nil
}

// LoadCase replaces the editor with the stored case. Unknown ids leave
// the editor untouched. A pending autosave is cancelled first so stale
// edits cannot land in the newly loaded case.
func (e *Editor) LoadCase(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := e.store.Get(id)
	if !ok {
		return false
	}
	e.cancelAutosaveLocked()
	e.activeID = a.ID
	e.clientName = a.ClientName
	e.clientCPF = a.ClientCPF
	e.benefitID = a.BenefitID
	e.benefitName = a.BenefitName
	e.items = a.ChecklistItems
	e.dirty = false
	return true
}

// Reset clears the editor back to the blank new-case state, cancelling
// any pending autosave.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

func (e *Editor) resetLocked() {
	e.cancelAutosaveLocked()
	e.activeID = ""
	e.clientName = ""
	e.clientCPF = ""
	e.benefitID = ""
	e.benefitName = ""
	e.items = nil
	e.dirty = false
}

// DeleteCase removes a case from the store. Deleting the case being
// edited resets the editor to the blank state.
func (e *Editor) DeleteCase(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Delete(id); err != nil {
		return err
	}
	if e.activeID == id {
		e.resetLocked()
	}
	return nil
}

// Dirty reports whether unsaved changes exist.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// ActiveID returns the id of the case being edited, empty for a new
// unsaved case.
func (e *Editor) ActiveID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeID
}

// Snapshot copies the current state for rendering.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]model.ChecklistItem, len(e.items))
	copy(items, e.items)
	return Snapshot{
		ActiveID:    e.activeID,
		ClientName:  e.clientName,
		ClientCPF:   e.clientCPF,
		BenefitID:   e.benefitID,
		BenefitName: e.benefitName,
		Items:       items,
		Dirty:       e.dirty,
	}
}

// Stop cancels any pending autosave. Call on shutdown.
func (e *Editor) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelAutosaveLocked()
}

// markDirtyLocked flags unsaved changes and re-arms the debounce while
// there is something worth saving. Rapid edits keep pushing the timer
// forward so they coalesce into one save.
func (e *Editor) markDirtyLocked() {
	e.dirty = true
	e.cancelAutosaveLocked()
	if !e.hasContentLocked() {
		// An edit that emptied the editor must not let an earlier
		// timer fire and persist a blank case.
		return
	}
	e.timer = time.AfterFunc(e.delay, e.autosave)
}

func (e *Editor) cancelAutosaveLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Editor) hasContentLocked() bool {
	return e.clientName != "" || e.benefitID != "" || len(e.items) > 0
}

// autosave runs on timer expiry, on its own goroutine.
func (e *Editor) autosave() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.dirty {
		return
	}
	if err := e.saveLocked(); err != nil {
		// Best effort; the next explicit save will retry.
		e.logger.Errorf(context.Background(), "autosave failed: %v", err)
	}
}
