package realtime

import (
	"sync"

	"shelfapi/internal/library"
)

// Projection is a client-side, insertion-ordered view of the catalog. A
// client applies its own optimistic mutations and direct responses through
// Upsert/Remove, and every broadcast event through Apply; all applications
// are idempotent, so the direct response and the echoed broadcast of the
// same mutation converge instead of double-inserting.
type Projection struct {
	mu    sync.Mutex
	order []string
	byID  map[string]library.Book
}

func NewProjection() *Projection {
	return &Projection{byID: make(map[string]library.Book)}
}

// Apply reconciles one broadcast event into the projection.
func (p *Projection) Apply(e Event) {
	switch e.Type {
	case EventBookAdded:
		if e.Book != nil {
			p.Upsert(*e.Book)
		}
	case EventBookUpdated:
		if e.Book != nil {
			p.replace(*e.Book)
		}
	case EventBookDeleted:
		p.Remove(e.ID)
	}
}

// Upsert inserts b, or replaces it in place when the id is already present.
// Replaying the same record is a no-op in effect.
func (p *Projection) Upsert(b library.Book) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byID[b.ID]; !ok {
		p.order = append(p.order, b.ID)
	}
	p.byID[b.ID] = b
}

// replace swaps the stored record for b.ID; unknown ids are ignored, since
// an update for a record this client never saw carries nothing to reconcile.
func (p *Projection) replace(b library.Book) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byID[b.ID]; ok {
		p.byID[b.ID] = b
	}
}

// Remove deletes the record by id; unknown ids are a no-op.
func (p *Projection) Remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byID[id]; !ok {
		return
	}
	delete(p.byID, id)
	for i, other := range p.order {
		if other == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Get returns the record for id.
func (p *Projection) Get(id string) (library.Book, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.byID[id]
	return b, ok
}

// Books returns the projection in insertion order.
func (p *Projection) Books() []library.Book {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]library.Book, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.byID[id])
	}
	return out
}

// Len reports the number of records in the projection.
func (p *Projection) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.order)
}
