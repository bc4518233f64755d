// Package memory provides in-memory implementations of the store interfaces.
// They back the DB-free development mode and the unit tests; data does not
// survive a process restart.
package memory
