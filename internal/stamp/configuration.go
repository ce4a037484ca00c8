package stamp

import (
	"strings"
	"time"

	"github.com/temirov/gitstamp/internal/properties"
)

const (
	defaultRepositoryPathConstant            = "."
	defaultShortHashLengthConstant           = 7
	configurationRepositoryKeyConstant       = "repository"
	configurationFormatKeyConstant           = "format"
	configurationPrefixKeyConstant           = "prefix"
	configurationKeysKeyConstant             = "keys"
	configurationDateLayoutKeyConstant       = "date_layout"
	configurationOutputKeyConstant           = "output"
	configurationLinkerPackageKeyConstant    = "linker_package"
	configurationShortHashLengthKeyConstant  = "short_hash_length"
	configurationIncludeUntrackedKeyConstant = "include_untracked"
	configurationVerifyWithGitKeyConstant    = "verify_with_git"
	configurationTimeoutKeyConstant          = "timeout"
	configurationKeySeparatorConstant        = "."
)

// CommandConfiguration captures configuration values shared by describe and postfix.
type CommandConfiguration struct {
	Repository       string            `mapstructure:"repository"`
	Format           properties.Format `mapstructure:"format"`
	Prefix           string            `mapstructure:"prefix"`
	Keys             []string          `mapstructure:"keys"`
	DateLayout       string            `mapstructure:"date_layout"`
	Output           string            `mapstructure:"output"`
	LinkerPackage    string            `mapstructure:"linker_package"`
	ShortHashLength  int               `mapstructure:"short_hash_length"`
	IncludeUntracked bool              `mapstructure:"include_untracked"`
	VerifyWithGit    bool              `mapstructure:"verify_with_git"`
	Timeout          time.Duration     `mapstructure:"timeout"`
}

// DefaultCommandConfiguration provides baseline configuration values.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Repository:       defaultRepositoryPathConstant,
		Format:           properties.FormatText,
		Prefix:           properties.DefaultPrefix,
		Keys:             nil,
		DateLayout:       properties.DefaultDateLayout,
		Output:           "",
		LinkerPackage:    "",
		ShortHashLength:  defaultShortHashLengthConstant,
		IncludeUntracked: false,
		VerifyWithGit:    true,
		Timeout:          0,
	}
}

// DefaultConfigurationValues produces Viper defaults rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	prefixed := func(key string) string {
		return rootKey + configurationKeySeparatorConstant + key
	}
	return map[string]any{
		prefixed(configurationRepositoryKeyConstant):       defaults.Repository,
		prefixed(configurationFormatKeyConstant):           string(defaults.Format),
		prefixed(configurationPrefixKeyConstant):           defaults.Prefix,
		prefixed(configurationKeysKeyConstant):             []string{},
		prefixed(configurationDateLayoutKeyConstant):       defaults.DateLayout,
		prefixed(configurationOutputKeyConstant):           defaults.Output,
		prefixed(configurationLinkerPackageKeyConstant):    defaults.LinkerPackage,
		prefixed(configurationShortHashLengthKeyConstant):  defaults.ShortHashLength,
		prefixed(configurationIncludeUntrackedKeyConstant): defaults.IncludeUntracked,
		prefixed(configurationVerifyWithGitKeyConstant):    defaults.VerifyWithGit,
		prefixed(configurationTimeoutKeyConstant):          defaults.Timeout.String(),
	}
}

// Sanitize trims values and restores defaults for fields that cannot be blank.
// The prefix is kept verbatim so an empty prefix stays empty.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Repository = strings.TrimSpace(configuration.Repository)
	if len(sanitized.Repository) == 0 {
		sanitized.Repository = defaultRepositoryPathConstant
	}
	if len(strings.TrimSpace(string(configuration.Format))) == 0 {
		sanitized.Format = properties.FormatText
	}
	sanitized.Keys = sanitizeKeys(configuration.Keys)
	if len(strings.TrimSpace(configuration.DateLayout)) == 0 {
		sanitized.DateLayout = properties.DefaultDateLayout
	}
	sanitized.Output = strings.TrimSpace(configuration.Output)
	sanitized.LinkerPackage = strings.TrimSpace(configuration.LinkerPackage)
	if sanitized.ShortHashLength <= 0 {
		sanitized.ShortHashLength = defaultShortHashLengthConstant
	}
	if sanitized.Timeout < 0 {
		sanitized.Timeout = 0
	}

	return sanitized
}

func sanitizeKeys(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}
