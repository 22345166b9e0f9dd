// Package repository handles all interactions with the database.
//
// It builds SQL with squirrel and scans rows with pgxscan. Every method
// takes the leased connection it must run on, so one request's statements
// always execute in order on a single connection.
//
// Structural query tokens (sort column, sort direction) never reach the
// SQL text as raw client input: they are parsed into closed enums first.
// Client content (search terms, field values) is always parameter-bound.
package repository
