// Package api provides HTTP handlers for the API. Handlers are a thin
// translation layer: they decode and validate requests, call into the
// service layer, and map service errors to HTTP status codes. No business
// rules live here.
package api
