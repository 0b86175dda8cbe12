package trace

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is returned for a state that is not Start, End or an
	// iteration index.
	ErrInvalidState = errors.New(`state should be "S" for the start of a function, "N" for the end of a function, or an integer loop iteration`)

	// ErrInvalidTimestamp is returned when only one of the date/time
	// overrides is supplied.
	ErrInvalidTimestamp = errors.New("date and time overrides must be given together or not at all")
)

func invalidState(s State) error {
	return fmt.Errorf("%w: got %v", ErrInvalidState, s)
}
