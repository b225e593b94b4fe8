// SPDX-License-Identifier: MIT

package probe

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // Pure Go driver
)

// SQLiteChecker opens a metadata database read-only and runs PRAGMA quick_check.
type SQLiteChecker struct {
	name string
	path string
}

// NewSQLiteChecker creates a checker for the database file at path.
func NewSQLiteChecker(name, path string) *SQLiteChecker {
	return &SQLiteChecker{name: name, path: path}
}

func (c *SQLiteChecker) Name() string {
	return c.name
}

func (c *SQLiteChecker) Check(ctx context.Context) Result {
	if c.path == ":memory:" {
		return Result{Status: StatusSkipped, Addr: c.path, Message: "in-memory database"}
	}

	// mode=ro fails on a missing file instead of creating an empty database.
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(2000)", c.path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return down(c.path, fmt.Errorf("sqlite open: %w", err))
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return down(c.path, fmt.Errorf("sqlite ping: %w", err))
	}

	var res string
	if err := db.QueryRowContext(ctx, "PRAGMA quick_check;").Scan(&res); err != nil {
		return down(c.path, fmt.Errorf("sqlite quick_check: %w", err))
	}
	if !strings.EqualFold(res, "ok") {
		return down(c.path, fmt.Errorf("sqlite quick_check: %s", res))
	}
	return Result{Status: StatusUp, Addr: c.path, Message: "quick_check ok"}
}

// sqlitePath extracts the file path from an SQLAlchemy-style sqlite URI:
// sqlite:////abs/path.db, sqlite:///relative.db or sqlite:// (in-memory).
func sqlitePath(uri string) (string, bool) {
	rest, ok := strings.CutPrefix(uri, "sqlite://")
	if !ok {
		return "", false
	}
	rest, _, _ = strings.Cut(rest, "?")
	switch rest {
	case "", "/", "/:memory:":
		return ":memory:", true
	}
	return strings.TrimPrefix(rest, "/"), true
}
