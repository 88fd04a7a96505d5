package postgres

import (
	"strings"
)

// sortDirection maps the Ascending flag to SQL
func sortDirection(ascending bool) string {
	if ascending {
		return "ASC"
	}
	return "DESC"
}

// whereClause joins conditions with AND, or returns "" when there are none
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conds, " AND ")
}
