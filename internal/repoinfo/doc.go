// Package repoinfo derives build provenance from resolved repository facts.
//
// RepositoryInfo is an immutable value built once per build invocation from
// the current branch, last commit, working copy state, and the nearest tag.
// It exposes the facts unchanged together with a three line summary and the
// version postfix used to stamp artifacts.
package repoinfo
