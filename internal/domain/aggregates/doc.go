// Package aggregates holds the building blocks shared by every aggregate root:
// the coded Error result, audit columns and the pending event queue drained by
// the unit of work after commit.
package aggregates
