package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// readDDLDir returns the statements of every *.sql file in dir, files in
// lexical order.
func readDDLDir(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var out []string
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		out = append(out, splitDDL(string(b))...)
	}
	return out, nil
}

// splitDDL drops "--" comments and splits on ";". Spanner DDL carries no
// string literals containing either, so no quoting is handled.
func splitDDL(sql string) []string {
	sql = strings.ReplaceAll(sql, "\r\n", "\n")

	var b strings.Builder
	for _, line := range strings.Split(sql, "\n") {
		if i := strings.Index(line, "--"); i >= 0 {
			line = line[:i]
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	parts := strings.Split(b.String(), ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if stmt := strings.TrimSpace(p); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// splitDatabase splits projects/P/instances/I/databases/D into the instance
// path and the database id.
func splitDatabase(db string) (instance, id string, err error) {
	parts := strings.Split(db, "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" {
		return "", "", fmt.Errorf("database %q is not projects/P/instances/I/databases/D", db)
	}
	for _, p := range []string{parts[1], parts[3], parts[5]} {
		if p == "" {
			return "", "", fmt.Errorf("database %q has an empty segment", db)
		}
	}
	return strings.Join(parts[:4], "/"), parts[5], nil
}
