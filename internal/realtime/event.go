// Package realtime fans catalog mutations out to every connected websocket
// client and provides the projection those clients reconcile against.
package realtime

import "shelfapi/internal/library"

// Event types on the realtime channel.
const (
	EventBookAdded   = "book:added"
	EventBookUpdated = "book:updated"
	EventBookDeleted = "book:deleted"
)

// Event is one catalog mutation as seen on the wire. Added and updated carry
// the full record; deleted carries only the id.
type Event struct {
	Type string        `json:"type"`
	Book *library.Book `json:"book,omitempty"`
	ID   string        `json:"id,omitempty"`
}
