// Package gitreader resolves repository facts with go-git and turns them into
// repoinfo.RepositoryInfo values.
//
// Reader opens a repository (or any directory inside one), reads HEAD, the
// working tree status and the nearest tag reachable from HEAD. Dirty working
// trees reported by go-git are optionally confirmed with `git status
// --porcelain` through an execshell-backed GitExecutor.
package gitreader
