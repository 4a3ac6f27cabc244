package moments

import (
	"database/sql/driver"

	"github.com/dmitrijs2005/baconnect/internal/models"
	"modernc.org/sqlite"
)

// foldFunc exposes models.Fold to SQLite connections.
const foldFunc = "connect_fold"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(foldFunc, 1, foldValue)
}

func foldValue(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return models.Fold(v), nil
	case []byte:
		return models.Fold(string(v)), nil
	default:
		return v, nil
	}
}
