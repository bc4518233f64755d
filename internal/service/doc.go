// Package service implements the application's business operations on top of
// the store interfaces: goal lifecycle management, study session logging with
// referential checks, and the chat history log. Services coordinate
// transactions where a database is available and add operation context to
// errors; they contain no transport concerns.
package service
