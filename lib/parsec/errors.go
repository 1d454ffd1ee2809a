package parsec

import (
	"fmt"
	"strings"
)

// ErrUnsupportedVersion is returned by NewClient when the requested cmd
// version predates the oldest form schema this client can speak.
var ErrUnsupportedVersion = fmt.Errorf("unknown cmd version")

// ErrConflict is returned by the cmd 2.x translator when both age and
// metallicity resolve to arrays. The legacy form only accepts a range in
// one dimension per query.
var ErrConflict = fmt.Errorf("at most one array is allowed for 't' and 'Z'")

// UnsupportedControlTypeError means the service's form now carries an input
// type this client has no introspection rule for, i.e. the form schema has
// changed underneath us.
type UnsupportedControlTypeError struct {
	Type string
}

func (e *UnsupportedControlTypeError) Error() string {
	return fmt.Sprintf("unknown input type: %s", e.Type)
}

// MissingParameterError means neither member of a mutually exclusive
// parameter pair was supplied.
type MissingParameterError struct {
	Params []string
}

func (e *MissingParameterError) Error() string {
	quoted := make([]string, len(e.Params))
	for i, p := range e.Params {
		quoted[i] = fmt.Sprintf("'%s'", p)
	}
	return fmt.Sprintf("must provide one of %s", strings.Join(quoted, " or "))
}

// QueryError means the service's response did not contain a downloadable
// output artifact. Message carries whatever diagnostic text could be
// extracted from the rendered page, verbatim.
type QueryError struct {
	Message string
	Hint    string
}

func (e *QueryError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("query failed, error message:\n%s\n%s", e.Message, e.Hint)
	}
	return fmt.Sprintf("query failed: %s", e.Message)
}
