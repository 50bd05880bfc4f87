package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new
	// user fails because a user with the same email already exists in the
	// database, regardless of the existing account's verification state.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrOTPInvalidOrExpired is returned when OTP consumption fails: the
	// presented code does not match the stored one, no code is pending, or
	// the code's expiry instant has passed. The three cases are
	// deliberately indistinguishable.
	ErrOTPInvalidOrExpired = errors.New("invalid or expired verification code")

	// ErrRefreshTokenMismatch is returned when the compare-and-swap update
	// of the stored refresh token value matches zero rows: the presented
	// token has been superseded by rotation, cleared by logout, or never
	// belonged to the user. This mismatch is the account's sole revocation
	// mechanism.
	ErrRefreshTokenMismatch = errors.New("refresh token does not match stored value")

	// ErrNoFieldsToUpdate is returned when a profile update carries no
	// changed fields.
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
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

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
