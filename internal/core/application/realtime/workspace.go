package realtime

import (
	"sort"
	"sync"

	"shipments/internal/core/domain/model/shipment"
)

// Workspace is the in-memory working set of shipments kept live by the
// reconciler. Reads and writes may come from any goroutine; all access is
// guarded by one RWMutex.
//
// The workspace also tracks a selection: the shipment an operator currently
// has open. The selection survives updates to the selected shipment (it is
// repointed at the fresh aggregate) and is cleared when that shipment is
// removed.
type Workspace struct {
	mu        sync.RWMutex
	shipments map[string]*shipment.Shipment
	selected  string
}

// NewWorkspace creates an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{
		shipments: make(map[string]*shipment.Shipment),
	}
}

// Replace installs the aggregate as the sole state for its id, discarding
// whatever version was held before. Last writer wins: no field-level merging
// is attempted.
func (w *Workspace) Replace(aggregate *shipment.Shipment) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shipments[aggregate.ID().String()] = aggregate
}

// Remove drops the shipment from the working set. If it was selected the
// selection is cleared. Removing an absent id is a no-op.
func (w *Workspace) Remove(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.shipments, id)
	if w.selected == id {
		w.selected = ""
	}
}

// Get returns the held aggregate for the id.
func (w *Workspace) Get(id string) (*shipment.Shipment, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	aggregate, ok := w.shipments[id]
	return aggregate, ok
}

// All returns the held shipments ordered newest first.
func (w *Workspace) All() []*shipment.Shipment {
	w.mu.RLock()
	defer w.mu.RUnlock()

	all := make([]*shipment.Shipment, 0, len(w.shipments))
	for _, aggregate := range w.shipments {
		all = append(all, aggregate)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt().After(all[j].CreatedAt())
	})
	return all
}

// Select marks the shipment as the operator's current focus. Selecting an
// id not present in the working set fails silently by clearing the selection.
func (w *Workspace) Select(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.shipments[id]; !ok {
		w.selected = ""
		return
	}
	w.selected = id
}

// Selection returns the currently selected shipment, if any.
func (w *Workspace) Selection() (*shipment.Shipment, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.selected == "" {
		return nil, false
	}
	aggregate, ok := w.shipments[w.selected]
	return aggregate, ok
}

// ClearSelection drops the current selection.
func (w *Workspace) ClearSelection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selected = ""
}

// Len returns the number of held shipments.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.shipments)
}
