package database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Domain error vocabulary of the storage gateway. Callers discriminate with
// errors.Is; anything not matching one of these sentinels is an
// infrastructure failure carrying the underlying cause.
var (
	ErrDuplicateUser   = errors.New("user name already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrTodoNotFound    = errors.New("todo not found")
)

// MySQL/MariaDB server error numbers this gateway maps onto the domain
// vocabulary.
const (
	mysqlErrDuplicateEntry = 1062
	mysqlErrFKViolation    = 1452
)

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}

func isFKViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrFKViolation
}
