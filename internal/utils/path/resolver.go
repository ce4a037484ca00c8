// Package pathutils resolves user supplied filesystem paths.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	homeShortcutConstant                = "~"
	homeShortcutSlashPrefixConstant     = "~/"
	homeShortcutBackslashPrefixConstant = `~\`
)

// HomeDirectoryProvider resolves the current user's home directory.
type HomeDirectoryProvider func() (string, error)

// Resolver trims paths, expands a leading ~ and cleans the result.
// The home directory is looked up at most once per Resolver.
type Resolver struct {
	homeDirectoryProvider HomeDirectoryProvider
	homeDirectory         string
	homeDirectoryError    error
	lookupGuard           sync.Once
}

// NewResolver constructs a Resolver backed by os.UserHomeDir.
func NewResolver() *Resolver {
	return NewResolverWithProvider(os.UserHomeDir)
}

// NewResolverWithProvider constructs a Resolver with a custom home directory lookup.
func NewResolverWithProvider(provider HomeDirectoryProvider) *Resolver {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &Resolver{homeDirectoryProvider: provider}
}

// Resolve returns candidatePath with whitespace trimmed, the home shortcut
// expanded and redundant separators removed. Blank input stays blank, and
// ~user forms are left untouched.
func (resolver *Resolver) Resolve(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return ""
	}
	if resolver == nil || !strings.HasPrefix(trimmedPath, homeShortcutConstant) {
		return filepath.Clean(trimmedPath)
	}

	var relativePath string
	switch {
	case trimmedPath == homeShortcutConstant:
	case strings.HasPrefix(trimmedPath, homeShortcutSlashPrefixConstant):
		relativePath = strings.TrimPrefix(trimmedPath, homeShortcutSlashPrefixConstant)
	case os.PathSeparator == '\\' && strings.HasPrefix(trimmedPath, homeShortcutBackslashPrefixConstant):
		relativePath = strings.TrimPrefix(trimmedPath, homeShortcutBackslashPrefixConstant)
	default:
		return filepath.Clean(trimmedPath)
	}

	homeDirectory := resolver.lookupHomeDirectory()
	if len(homeDirectory) == 0 {
		return filepath.Clean(trimmedPath)
	}
	return filepath.Join(homeDirectory, relativePath)
}

func (resolver *Resolver) lookupHomeDirectory() string {
	resolver.lookupGuard.Do(func() {
		resolver.homeDirectory, resolver.homeDirectoryError = resolver.homeDirectoryProvider()
	})
	if resolver.homeDirectoryError != nil {
		return ""
	}
	return resolver.homeDirectory
}
