// Package properties publishes RepositoryInfo values as named build variables.
//
// Build produces an ordered Set of prefixed keys; Render writes a Set as text,
// Java-style properties, shell exports, JSON, YAML, TOML, an ASCII table, or
// go build -ldflags assignments.
package properties
