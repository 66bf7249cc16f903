// Package ankiconnect implements the store interfaces against the
// AnkiConnect HTTP endpoint exposed by the running Anki desktop
// application.
//
// Every call is a POST of an {action, version, params} envelope to the
// endpoint, answered by a {result, error} envelope. The package maps
// AnkiConnect's stringly-typed errors onto the store package's sentinel
// errors so that callers never see transport details.
//
// AnkiConnect is the boundary that keeps scheduling and the collection
// file format inside the host application: answering a card here asks
// Anki's own scheduler to grade it, and no SQL ever touches the
// .anki2 database from this process.
package ankiconnect
