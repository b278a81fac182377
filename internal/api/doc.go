// Package api handles incoming HTTP requests for the vocabulary service:
// path and body parsing, request validation, and mapping service results and
// errors onto JSON responses. Routing lives in cmd/server.
package api
