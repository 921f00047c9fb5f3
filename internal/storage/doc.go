// Package storage defines the persistence contracts for the submission
// ledger. The site runs without it; when configured, every lead submission
// is recorded with its relay outcome.
//
// # Error Types
//
//   - ErrAlreadyExists: a record with the same id was already stored.
package storage
