package properties

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/temirov/gitstamp/internal/repoinfo"
)

// Property keys without prefix.
const (
	KeyBranch             = "branch"
	KeyLastCommit         = "last_commit"
	KeyLastCommitShort    = "last_commit_short"
	KeyLastCommitDate     = "last_commit_date"
	KeyWorkingCopyDirty   = "working_copy_dirty"
	KeyLastTag            = "last_tag"
	KeyLastTagHash        = "last_tag_hash"
	KeyLastTagDirty       = "last_tag_dirty"
	KeyLastTagAuthorName  = "last_tag_author_name"
	KeyLastTagAuthorEmail = "last_tag_author_email"
	KeyVersionPostfix     = "version_postfix"
	KeyDisplayString      = "display_string"
)

const (
	// DefaultPrefix is prepended to every key unless configured otherwise.
	DefaultPrefix = "git."
	// DefaultDateLayout renders commit dates.
	DefaultDateLayout = time.RFC3339
)

const unknownKeyErrorTemplateConstant = "%w: %q"

// ErrUnknownKey indicates a selection names a key that Build never publishes.
var ErrUnknownKey = errors.New("unknown property key")

// Property is a single build variable.
type Property struct {
	Name  string
	Key   string
	Value string
}

// Set is an ordered collection of build variables.
type Set struct {
	Prefix     string
	Properties []Property
}

// Build projects a RepositoryInfo onto the published build variables.
func Build(info repoinfo.RepositoryInfo, prefix string, dateLayout string) Set {
	if len(strings.TrimSpace(dateLayout)) == 0 {
		dateLayout = DefaultDateLayout
	}

	commitDate := ""
	if !info.LastCommitDate().IsZero() {
		commitDate = info.LastCommitDate().UTC().Format(dateLayout)
	}

	orderedValues := []struct {
		key   string
		value string
	}{
		{KeyBranch, info.CurrentBranch()},
		{KeyLastCommit, info.LastCommitHash()},
		{KeyLastCommitShort, info.LastCommitShortHash()},
		{KeyLastCommitDate, commitDate},
		{KeyWorkingCopyDirty, strconv.FormatBool(info.WorkingCopyDirty())},
		{KeyLastTag, info.LastTagName()},
		{KeyLastTagHash, info.LastTagHash()},
		{KeyLastTagDirty, strconv.FormatBool(info.LastTagDirty())},
		{KeyLastTagAuthorName, info.LastTagAuthorName()},
		{KeyLastTagAuthorEmail, info.LastTagAuthorEmail()},
		{KeyVersionPostfix, info.VersionPostfix()},
		{KeyDisplayString, info.DisplayString()},
	}

	set := Set{Prefix: prefix, Properties: make([]Property, 0, len(orderedValues))}
	for _, orderedValue := range orderedValues {
		set.Properties = append(set.Properties, Property{
			Name:  prefix + orderedValue.key,
			Key:   orderedValue.key,
			Value: orderedValue.value,
		})
	}
	return set
}

// Lookup returns the value stored under the unprefixed key.
func (set Set) Lookup(key string) (string, bool) {
	for _, property := range set.Properties {
		if property.Key == key {
			return property.Value, true
		}
	}
	return "", false
}

// Select keeps the properties whose unprefixed keys are listed, preserving the
// published order. An empty selection keeps everything.
func (set Set) Select(keys []string) (Set, error) {
	requested := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		trimmedKey := strings.TrimSpace(key)
		if len(trimmedKey) == 0 {
			continue
		}
		if _, published := set.Lookup(trimmedKey); !published {
			return Set{}, fmt.Errorf(unknownKeyErrorTemplateConstant, ErrUnknownKey, trimmedKey)
		}
		requested[trimmedKey] = struct{}{}
	}
	if len(requested) == 0 {
		return set, nil
	}

	selected := Set{Prefix: set.Prefix, Properties: make([]Property, 0, len(requested))}
	for _, property := range set.Properties {
		if _, keep := requested[property.Key]; keep {
			selected.Properties = append(selected.Properties, property)
		}
	}
	return selected, nil
}
