package db

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoFields is returned when a partial update is requested with no
// fields set. Handlers map it to a 400 response.
var ErrNoFields = errors.New("no fields to update")

// Field is a single column assignment in a partial update. Fields are
// carried in a slice so the caller's ordering is preserved; positional
// parameter numbers depend on it.
type Field struct {
	Name  string
	Value any
}

// BuildPartialUpdate turns an ordered list of field assignments into a
// SET clause with positional parameters starting at $1, plus the values
// in matching order. The columns map translates external field names to
// column names; names absent from the map are used as-is. Callers append
// WHERE parameters continuing at $len(values)+1.
//
// The only validation performed here is rejecting an empty field list.
// Column name legality and value types are the caller's problem.
func BuildPartialUpdate(fields []Field, columns map[string]string) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, ErrNoFields
	}

	assignments := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields))

	for i, f := range fields {
		col, ok := columns[f.Name]
		if !ok {
			col = f.Name
		}
		assignments = append(assignments, fmt.Sprintf("%q = $%d", col, i+1))
		values = append(values, f.Value)
	}

	return strings.Join(assignments, ", "), values, nil
}
