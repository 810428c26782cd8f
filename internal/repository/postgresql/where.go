package postgresql

import (
	"fmt"
	"strings"
)

// whereClause collects AND-ed conditions with positional arguments.
// Every ? in a condition refers to that condition's argument.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return "TRUE"
	}
	return strings.Join(w.conds, " AND ")
}

// next returns the placeholder index of the next argument.
func (w *whereClause) next() int {
	return len(w.args) + 1
}
