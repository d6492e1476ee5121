// Package mutation builds Spanner mutations from column maps. Columns are
// sorted so the same values always produce the same mutation.
package mutation

import (
	"sort"

	"cloud.google.com/go/spanner"
)

// Key is one primary key column and its value.
type Key struct {
	Column string
	Value  interface{}
}

// Insert builds a spanner.Insert for the given values.
func Insert(table string, values map[string]interface{}) *spanner.Mutation {
	cols, vals := split(values)
	return spanner.Insert(table, cols, vals)
}

// Update builds a spanner.Update. The key columns come first, followed by
// the updated columns. The values map must not contain the key columns.
func Update(table string, keys []Key, values map[string]interface{}) *spanner.Mutation {
	cols := make([]string, 0, len(keys)+len(values))
	vals := make([]interface{}, 0, len(keys)+len(values))
	for _, k := range keys {
		cols = append(cols, k.Column)
		vals = append(vals, k.Value)
	}
	c, v := split(values)
	return spanner.Update(table, append(cols, c...), append(vals, v...))
}

// Delete removes a single row by its full primary key.
func Delete(table string, keys ...Key) *spanner.Mutation {
	k := make(spanner.Key, 0, len(keys))
	for _, key := range keys {
		k = append(k, key.Value)
	}
	return spanner.Delete(table, k)
}

func split(values map[string]interface{}) ([]string, []interface{}) {
	cols := make([]string, 0, len(values))
	for c := range values {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	vals := make([]interface{}, 0, len(cols))
	for _, c := range cols {
		vals = append(vals, values[c])
	}
	return cols, vals
}
