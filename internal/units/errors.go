package units

import "fmt"

// MalformedUnitError reports a token whose numeric part could not be read.
type MalformedUnitError struct {
	Token  string
	Suffix string
	Err    error
}

func (e *MalformedUnitError) Error() string {
	if e.Suffix != "" {
		return fmt.Sprintf("units: malformed token %q (unit %s): no numeric magnitude", e.Token, e.Suffix)
	}
	return fmt.Sprintf("units: malformed token %q: not a number", e.Token)
}

func (e *MalformedUnitError) Unwrap() error {
	return e.Err
}
