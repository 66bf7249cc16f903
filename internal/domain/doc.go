// Package domain contains the core entities exposed from the Anki
// collection (decks, cards, notes, reviews) and their validation logic,
// independent of the protocol layer and the collection gateway.
//
// Identifiers are the epoch-millisecond integers the host application
// assigns. Scheduling state (interval, ease factor, due date) is owned by
// the external scheduler and treated as read-only here; review outcomes
// are relayed back to it, never applied locally.
package domain
