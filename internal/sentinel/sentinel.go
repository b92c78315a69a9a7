package sentinel

var _ error = Error("")

// Error is a string-backed error that can be declared as a const.
// errors.Is works through wrapped chains because Error is comparable.
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}
