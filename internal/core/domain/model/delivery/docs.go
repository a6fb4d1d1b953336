// Package delivery contains the Delivery aggregate root and its lifecycle
// state machine.
//
// A delivery enters the system already matched to a courier (matching happens
// upstream) and moves through a fixed status graph until it reaches a terminal
// outcome. The aggregate owns every mutation of delivery state: status
// transitions are validated against the transition table, and client
// validation is a dedicated finalization step that bypasses the table at the
// single IN_TRANSIT checkpoint.
//
// The aggregate carries an optimistic concurrency version. Repositories match
// on it when persisting so that concurrent mutations of the same delivery
// cannot both succeed.
package delivery
