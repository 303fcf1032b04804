package telemetry

// Blank imports register the default (non-cgo) driver set with
// database/sql. github.com/mattn/go-sqlite3 is the cgo alternative to
// modernc.org/sqlite for the sqlite3:// scheme and lives in
// drivers_cgo.go behind the cgo_sqlite build tag instead, so a default
// build of this module never requires cgo.
import (
	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)
