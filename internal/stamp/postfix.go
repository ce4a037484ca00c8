package stamp

import (
	"github.com/spf13/cobra"

	"github.com/temirov/gitstamp/internal/gitreader"
)

const (
	postfixCommandUseConstant              = "postfix [repository]"
	postfixCommandShortDescriptionConstant = "Print the version postfix for the repository"
	postfixCommandLongDescriptionConstant  = "postfix prints SNAPSHOT for a dirty working copy, the last tag for a clean tagged commit, or tag-hash-SNAPSHOT when commits follow the last tag."
	postfixLineTerminatorConstant          = "\n"
)

// PostfixCommandBuilder assembles the postfix command.
type PostfixCommandBuilder struct {
	LoggerProvider        LoggerProvider
	GitExecutor           gitreader.GitExecutor
	ReaderFactory         ReaderFactory
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the postfix command.
func (builder *PostfixCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   postfixCommandUseConstant,
		Short: postfixCommandShortDescriptionConstant,
		Long:  postfixCommandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	registerRepositoryFlags(command)

	return command, nil
}

func (builder *PostfixCommandBuilder) run(command *cobra.Command, arguments []string) error {
	dependencies := dependencySet{
		loggerProvider:        builder.LoggerProvider,
		gitExecutor:           builder.GitExecutor,
		readerFactory:         builder.ReaderFactory,
		configurationProvider: builder.ConfigurationProvider,
	}
	logger := dependencies.resolveLogger()

	configuration, configurationError := applyFlagOverrides(command, arguments, dependencies.resolveConfiguration())
	if configurationError != nil {
		return configurationError
	}

	info, readError := readRepository(command, dependencies, logger, configuration)
	if readError != nil {
		return readError
	}

	return writeOutput(command, configuration.Output, []byte(info.VersionPostfix()+postfixLineTerminatorConstant))
}
