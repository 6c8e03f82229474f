package feature

// Error represents a kind of failure of the operations on features,
// datasets and their gains. Errors returned by those operations wrap
// one of the Err constants below, so callers can classify them with
// errors.Is.
type Error string

const (
	// ErrInvalidArgument is wrapped by errors caused by arguments that
	// can never produce a meaningful result, such as thresholds with
	// x1 > x2 or selecting a root among zero attributes.
	ErrInvalidArgument = Error("invalid argument")

	// ErrSchemaMismatch is wrapped by errors caused by data that does not
	// conform to its declared columns, such as a row lacking a value for
	// one of them.
	ErrSchemaMismatch = Error("schema mismatch")
)

func (e Error) Error() string {
	return string(e)
}
