package store

// DateRange is a half-open-or-closed date filter. An empty bound means
// unbounded on that side. Bounds compare inclusively (>= / <=) against the
// YYYY-MM-DD entry date.
type DateRange struct {
	Start string
	End   string
}

// IsZero reports whether no bound is set.
func (r DateRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

// Predicate returns a SQL fragment for col ("" when unbounded) and the
// matching arguments. The fragment starts with " AND " so it composes into a
// larger WHERE or JOIN clause without string surgery at the call site.
func (r DateRange) Predicate(col string) (string, []interface{}) {
	var clause string
	var args []interface{}

	if r.Start != "" {
		clause += " AND " + col + " >= ?"
		args = append(args, r.Start)
	}
	if r.End != "" {
		clause += " AND " + col + " <= ?"
		args = append(args, r.End)
	}

	return clause, args
}
