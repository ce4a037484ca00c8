package stamp

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitstamp/internal/gitreader"
	"github.com/temirov/gitstamp/internal/properties"
	"github.com/temirov/gitstamp/internal/repoinfo"
	"github.com/temirov/gitstamp/internal/utils"
	"github.com/temirov/gitstamp/internal/utils/flags"
	pathutils "github.com/temirov/gitstamp/internal/utils/path"
)

const (
	flagFormatNameConstant                  = "format"
	flagFormatDescriptionConstant           = "Output format"
	flagFormatLabelConstant                 = "output format"
	flagPrefixNameConstant                  = "prefix"
	flagPrefixDescriptionConstant           = "Prefix prepended to every property name"
	flagKeysNameConstant                    = "keys"
	flagKeysDescriptionConstant             = "Publish only these property keys (unprefixed, comma separated)"
	flagDateLayoutNameConstant              = "date-layout"
	flagDateLayoutDescriptionConstant       = "Go time layout used for the last commit date"
	flagOutputNameConstant                  = "output"
	flagOutputShorthandConstant             = "o"
	flagOutputDescriptionConstant           = "Write the result to this file instead of standard output"
	flagLinkerPackageNameConstant           = "linker-package"
	flagLinkerPackageDescriptionConstant    = "Go package receiving -X assignments in ldflags output"
	flagShortHashLengthNameConstant         = "short-hash-length"
	flagShortHashLengthDescriptionConstant  = "Number of hex digits in the abbreviated commit hash"
	flagIncludeUntrackedNameConstant        = "include-untracked"
	flagIncludeUntrackedDescriptionConstant = "Treat untracked files as uncommitted changes"
	flagVerifyWithGitNameConstant           = "verify-with-git"
	flagVerifyWithGitDescriptionConstant    = "Confirm a dirty working copy with git status --porcelain"
	flagTimeoutNameConstant                 = "timeout"
	flagTimeoutDescriptionConstant          = "Abort reading the repository after this duration (0 disables)"
	readRepositoryErrorTemplateConstant     = "unable to read repository %s: %w"
	writeOutputErrorTemplateConstant        = "unable to write output %s: %w"
	parseFormatErrorTemplateConstant        = "invalid --%s value: %w"
	repositoryReadMessageConstant           = "repository read"
	logFieldRepositoryConstant              = "repository"
	logFieldVersionPostfixConstant          = "version_postfix"
	logFieldOutputConstant                  = "output"
	logFieldConfigFileConstant              = "config_file"
	logFieldApplicationVersionConstant      = "gitstamp_version"
	standardOutputNameConstant              = "stdout"
)

// registerRepositoryFlags attaches the flags that control how a repository is read.
func registerRepositoryFlags(command *cobra.Command) {
	defaults := DefaultCommandConfiguration()
	command.Flags().StringP(flagOutputNameConstant, flagOutputShorthandConstant, "", flagOutputDescriptionConstant)
	command.Flags().Int(flagShortHashLengthNameConstant, defaults.ShortHashLength, flagShortHashLengthDescriptionConstant)
	command.Flags().Bool(flagIncludeUntrackedNameConstant, defaults.IncludeUntracked, flagIncludeUntrackedDescriptionConstant)
	command.Flags().Bool(flagVerifyWithGitNameConstant, defaults.VerifyWithGit, flagVerifyWithGitDescriptionConstant)
	command.Flags().Duration(flagTimeoutNameConstant, defaults.Timeout, flagTimeoutDescriptionConstant)
}

// registerPublishingFlags attaches the flags that shape the rendered property set.
func registerPublishingFlags(command *cobra.Command) {
	defaults := DefaultCommandConfiguration()
	formatChoice := flags.NewChoiceValue(flagFormatLabelConstant, string(defaults.Format), properties.SupportedFormats())
	command.Flags().Var(formatChoice, flagFormatNameConstant, formatChoice.Usage(flagFormatDescriptionConstant))
	command.Flags().String(flagPrefixNameConstant, defaults.Prefix, flagPrefixDescriptionConstant)
	command.Flags().StringSlice(flagKeysNameConstant, nil, flagKeysDescriptionConstant)
	command.Flags().String(flagDateLayoutNameConstant, defaults.DateLayout, flagDateLayoutDescriptionConstant)
	command.Flags().String(flagLinkerPackageNameConstant, defaults.LinkerPackage, flagLinkerPackageDescriptionConstant)
}

// applyFlagOverrides layers explicitly set flags and the positional repository
// argument over the loaded configuration.
func applyFlagOverrides(command *cobra.Command, arguments []string, configuration CommandConfiguration) (CommandConfiguration, error) {
	resolved := configuration
	commandFlags := command.Flags()

	if len(arguments) > 0 && len(strings.TrimSpace(arguments[0])) > 0 {
		resolved.Repository = strings.TrimSpace(arguments[0])
	}
	if commandFlags.Changed(flagOutputNameConstant) {
		resolved.Output, _ = commandFlags.GetString(flagOutputNameConstant)
	}
	if commandFlags.Changed(flagShortHashLengthNameConstant) {
		resolved.ShortHashLength, _ = commandFlags.GetInt(flagShortHashLengthNameConstant)
	}
	if commandFlags.Changed(flagIncludeUntrackedNameConstant) {
		resolved.IncludeUntracked, _ = commandFlags.GetBool(flagIncludeUntrackedNameConstant)
	}
	if commandFlags.Changed(flagVerifyWithGitNameConstant) {
		resolved.VerifyWithGit, _ = commandFlags.GetBool(flagVerifyWithGitNameConstant)
	}
	if commandFlags.Changed(flagTimeoutNameConstant) {
		resolved.Timeout, _ = commandFlags.GetDuration(flagTimeoutNameConstant)
	}

	if commandFlags.Changed(flagFormatNameConstant) {
		formatValue := commandFlags.Lookup(flagFormatNameConstant).Value.String()
		parsedFormat, parseError := properties.ParseFormat(formatValue)
		if parseError != nil {
			return CommandConfiguration{}, fmt.Errorf(parseFormatErrorTemplateConstant, flagFormatNameConstant, parseError)
		}
		resolved.Format = parsedFormat
	}
	if commandFlags.Changed(flagPrefixNameConstant) {
		resolved.Prefix, _ = commandFlags.GetString(flagPrefixNameConstant)
	}
	if commandFlags.Changed(flagKeysNameConstant) {
		resolved.Keys, _ = commandFlags.GetStringSlice(flagKeysNameConstant)
	}
	if commandFlags.Changed(flagDateLayoutNameConstant) {
		resolved.DateLayout, _ = commandFlags.GetString(flagDateLayoutNameConstant)
	}
	if commandFlags.Changed(flagLinkerPackageNameConstant) {
		resolved.LinkerPackage, _ = commandFlags.GetString(flagLinkerPackageNameConstant)
	}

	sanitized := resolved.Sanitize()
	pathResolver := pathutils.NewResolver()
	sanitized.Repository = pathResolver.Resolve(sanitized.Repository)
	sanitized.Output = pathResolver.Resolve(sanitized.Output)

	return sanitized, nil
}

// readRepository resolves RepositoryInfo for the configured repository.
func readRepository(command *cobra.Command, dependencies dependencySet, logger *zap.Logger, configuration CommandConfiguration) (repoinfo.RepositoryInfo, error) {
	gitExecutor, executorError := dependencies.resolveGitExecutor(logger, configuration.VerifyWithGit)
	if executorError != nil {
		return repoinfo.RepositoryInfo{}, executorError
	}

	readerOptions := gitreader.Options{
		ShortHashLength:  configuration.ShortHashLength,
		IncludeUntracked: configuration.IncludeUntracked,
		VerifyWithGitCLI: configuration.VerifyWithGit,
	}
	reader, readerError := dependencies.resolveReader(logger, gitExecutor, readerOptions)
	if readerError != nil {
		return repoinfo.RepositoryInfo{}, readerError
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}
	if configuration.Timeout > 0 {
		var cancel context.CancelFunc
		executionContext, cancel = context.WithTimeout(executionContext, configuration.Timeout)
		defer cancel()
	}

	info, readError := reader.Read(executionContext, configuration.Repository)
	if readError != nil {
		return repoinfo.RepositoryInfo{}, fmt.Errorf(readRepositoryErrorTemplateConstant, configuration.Repository, readError)
	}

	invocationDetails, _ := utils.InvocationDetailsFromContext(executionContext)
	logger.Info(
		repositoryReadMessageConstant,
		zap.String(logFieldRepositoryConstant, configuration.Repository),
		zap.String(logFieldVersionPostfixConstant, info.VersionPostfix()),
		zap.String(logFieldOutputConstant, outputName(configuration.Output)),
		zap.String(logFieldConfigFileConstant, invocationDetails.ConfigurationFilePath),
		zap.String(logFieldApplicationVersionConstant, invocationDetails.ApplicationVersion),
	)

	return info, nil
}

// writeOutput sends content to the configured file or to the command's standard output.
func writeOutput(command *cobra.Command, outputPath string, content []byte) error {
	if writeError := utils.WriteOutput(command.OutOrStdout(), outputPath, content); writeError != nil {
		return fmt.Errorf(writeOutputErrorTemplateConstant, outputName(outputPath), writeError)
	}
	return nil
}

func outputName(outputPath string) string {
	if len(outputPath) == 0 {
		return standardOutputNameConstant
	}
	return outputPath
}
