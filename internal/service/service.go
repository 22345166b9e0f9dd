// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, leases one pooled
// connection per operation, and calls repository methods on it.
package service
