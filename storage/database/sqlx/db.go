// Package sqlxrepos implements the domain repositories over Postgres.
package sqlxrepos

import (
	"database/sql"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core"
)

// Wrap upgrades a plain connection to an sqlx handle for the repositories.
func Wrap(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, "postgres")
}

func itoa(n int) string { return strconv.Itoa(n) }

// orderClause renders an ORDER BY from the first requested ordering whose
// field maps to a known column; defCol applies when nothing matches.
func orderClause(ordering []core.DBOrdering, cols map[string]string, defCol string) string {
	col := defCol
	dir := " DESC"
	if len(ordering) > 0 {
		if c, ok := cols[ordering[0].Field]; ok {
			col = c
		}
		if ordering[0].Ascending {
			dir = " ASC"
		}
	}
	return " ORDER BY " + col + dir
}
