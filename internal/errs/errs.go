// Package errs defines the error shapes returned to API clients.
//
// Every failure leaves the HTTP layer as an HTTPError so clients see
// one consistent JSON structure:
//
//	{ "code": "NOT_FOUND", "message": "Word with ID: 7 not found", "status": 404, ... }
//
// Validation failures additionally carry a list of FieldError values.
package errs
