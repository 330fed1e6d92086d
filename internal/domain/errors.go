package domain

// ErrValidation carries the string used verbatim as the API cause field.
type ErrValidation struct {
	Cause string
}

func (e *ErrValidation) Error() string { return e.Cause }
