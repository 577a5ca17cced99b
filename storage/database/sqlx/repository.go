package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/AliAlWahayb/Advanced-Programming-Language-Project/core"
)

var errUnknownOrderingField = errors.New("unknown ordering field")

// orderBy renders an ORDER BY clause, only accepting the allowed columns.
func orderBy(ordering []core.DBOrdering, allowed ...string) (string, error) {
	if len(ordering) == 0 {
		return "", nil
	}
	orderList := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		known := false
		for _, col := range allowed {
			if ord.Field == col {
				known = true
				break
			}
		}
		if !known {
			return "", errors.Wrapf(errUnknownOrderingField, "%q", ord.Field)
		}
		orderList = append(orderList, ord.String())
	}
	return " ORDER BY " + strings.Join(orderList, ", "), nil
}

// likeContains returns a LIKE pattern matching values containing s.
func likeContains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// inQuery expands the `IN (?)` args of query and rebinds it for exec's driver.
func inQuery(exec core.DBExecutor, query string, args ...interface{}) (string, []interface{}, error) {
	q, a, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, errors.Wrap(err, "expanding query")
	}
	return exec.Rebind(q), a, nil
}

// withTx runs fn in a transaction, rolling back on error.
func withTx(ctx context.Context, db core.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

func rowsAffected(res sql.Result, msg string) (int, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, msg)
	}
	return int(n), nil
}
