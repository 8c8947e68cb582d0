package progress

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// errorIsDuplicate reports whether an insert failed on a unique constraint.
// Checks both gorm's translated error and the raw MySQL duplicate-entry
// code, since translation depends on driver configuration.
func errorIsDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
