package sqlstore

import (
	"strings"

	"lifeos/domain/core"
)

// dateRange builds an inclusive date predicate. Zero bounds are open.
func dateRange(column string, from, to core.Day) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if !from.IsZero() {
		conds = append(conds, column+" >= ?")
		args = append(args, from.String())
	}
	if !to.IsZero() {
		conds = append(conds, column+" <= ?")
		args = append(args, to.String())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
