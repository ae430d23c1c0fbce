// Package fleet implements the coordinator's world state: mirrors of robot
// and shelf status, the pending-order queue, the station lock set, and the
// active assignments.
//
// Mirrors are best-effort copies of state owned by other actors, updated only
// by the coordinator's message handlers and corrected by each authoritative
// report. The coordinator is the single writer for all resource locks; the
// State type serializes every mutation internally, which substitutes for a
// distributed lock service.
//
// State methods are pure with respect to I/O: matching and compensation
// return effect values (dispatch and restock intents, recovery records) that
// the application layer publishes to the bus.
package fleet
