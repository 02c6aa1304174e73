package frame

import "fmt"

// TypeError is returned by Records for values it cannot turn into rows.
type TypeError struct {
	Got any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("cannot convert %T to a row sequence", e.Got)
}

// Records returns the rows of v in order. A []Row is returned unchanged; a
// Table yields copies of its rows.
func Records(v any) ([]Row, error) {
	switch x := v.(type) {
	case []Row:
		return x, nil
	case *Table:
		if x == nil {
			return nil, &TypeError{Got: v}
		}
		return x.Rows(), nil
	case Table:
		return x.Rows(), nil
	default:
		return nil, &TypeError{Got: v}
	}
}
