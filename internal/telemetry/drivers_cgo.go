//go:build cgo_sqlite

package telemetry

import _ "github.com/mattn/go-sqlite3"
