// Package handler is the HTTP layer, the first stop after the router.
//
// It binds and validates requests, calls the service layer and writes
// the response. Errors are returned to the global error handler.
package handler
