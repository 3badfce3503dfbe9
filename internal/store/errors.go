// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned when a record addressed by its local id
	// does not exist for the given user, or is already a tombstone.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrLengthMismatch is returned by AssignRemoteIDs when the number of
	// identifiers differs from the number of records.
	ErrLengthMismatch = errors.New("identifier count does not match record count")

	// ErrDuplicateRemoteID is returned when a remote id is already bound to
	// another local record of the same user and data type.
	ErrDuplicateRemoteID = errors.New("remote id is already assigned to another record")

	// ErrInvalidDataType is returned for data types the store does not know.
	ErrInvalidDataType = errors.New("invalid data type")

	// ErrUnsupportedRead is returned when reading a data type that is never
	// exposed to the application (sensor readings).
	ErrUnsupportedRead = errors.New("data type is not readable")

	// ErrInvalidRemoteRecord is returned when a downloaded record cannot be
	// applied (missing id, unparsable timestamps).
	ErrInvalidRemoteRecord = errors.New("invalid remote record")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan record row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("failed to scan record rows")
)
