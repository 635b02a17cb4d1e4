// Package order implements the Order aggregate and its lifecycle state machine.
//
// Lifecycle:
//
//	pending ──> confirmed ──> processing ──> shipped ──> delivered
//	   │            │
//	   └────────────┴──> cancelled
//
// Only the immediate successor on the happy path is reachable, a same-state
// request is illegal, and nothing leaves delivered or cancelled. Entering
// delivered stamps DeliveredAt. Courier assignment is a separate field that an
// admin may change on any non-terminal order; AssignedAt is present exactly
// when AssignedTo is.
//
// Every accepted change is recorded as a domain event that the unit of work
// publishes after commit.
package order
