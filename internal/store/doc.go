// Package store defines the persistence interfaces for the Anki
// collection together with the error taxonomy implementations must map
// onto.
//
// Collection state lives entirely in the external application; a store
// implementation is a gateway to it, not a database of its own. The
// canonical implementation talks to the host app's AnkiConnect endpoint
// (internal/platform/ankiconnect).
package store
