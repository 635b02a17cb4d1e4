// Package queries holds the read side. Handlers run plain SQL against the
// tables written by the postgres adapters and return flat read models.
// Handlers serving a caller take the actor and narrow the rows it may see.
package queries
