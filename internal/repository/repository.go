package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// buildUpdate assembles a partial UPDATE from the subset of whitelisted
// columns present in fields. Iterating the whitelist (not the map) keeps the
// generated SQL deterministic. Callers must ensure fields is non-empty.
func buildUpdate(table string, whitelist []string, fields map[string]any, id, returning string) (string, []any) {
	set := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, col := range whitelist {
		v, ok := fields[col]
		if !ok {
			continue
		}
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(set, ", "), len(args), returning)
	return query, args
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (code 23505).
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
