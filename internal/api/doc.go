// Package api implements the HTTP handlers that adapt the transport layer
// to the goal, study, chat, and progress services. Handlers decode and
// validate requests, delegate to services, and project domain entities into
// per-endpoint response shapes wrapped in the {success, ...} envelope.
package api
