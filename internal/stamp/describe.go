package stamp

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/gitstamp/internal/gitreader"
	"github.com/temirov/gitstamp/internal/properties"
)

const (
	describeCommandUseConstant              = "describe [repository]"
	describeCommandShortDescriptionConstant = "Publish branch, commit and tag details as build properties"
	describeCommandLongDescriptionConstant  = "describe reads the Git repository containing the given path (default: the current directory) and prints its branch, last commit, last tag, dirty flags and version postfix in the selected format."
	describeCommandExampleConstant          = "  gitstamp describe\n  gitstamp describe --format env ../service\n  go build -ldflags \"$(gitstamp describe --format ldflags --linker-package example.com/app/version)\""
	selectKeysErrorTemplateConstant         = "unable to select properties: %w"
	renderErrorTemplateConstant             = "unable to render %s output: %w"
)

// DescribeCommandBuilder assembles the describe command.
type DescribeCommandBuilder struct {
	LoggerProvider        LoggerProvider
	GitExecutor           gitreader.GitExecutor
	ReaderFactory         ReaderFactory
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the describe command.
func (builder *DescribeCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     describeCommandUseConstant,
		Short:   describeCommandShortDescriptionConstant,
		Long:    describeCommandLongDescriptionConstant,
		Example: describeCommandExampleConstant,
		Args:    cobra.MaximumNArgs(1),
		RunE:    builder.run,
	}

	registerRepositoryFlags(command)
	registerPublishingFlags(command)

	return command, nil
}

func (builder *DescribeCommandBuilder) run(command *cobra.Command, arguments []string) error {
	dependencies := builder.dependencies()
	logger := dependencies.resolveLogger()

	configuration, configurationError := applyFlagOverrides(command, arguments, dependencies.resolveConfiguration())
	if configurationError != nil {
		return configurationError
	}

	info, readError := readRepository(command, dependencies, logger, configuration)
	if readError != nil {
		return readError
	}

	propertySet, selectError := properties.Build(info, configuration.Prefix, configuration.DateLayout).Select(configuration.Keys)
	if selectError != nil {
		return fmt.Errorf(selectKeysErrorTemplateConstant, selectError)
	}

	var rendered bytes.Buffer
	renderOptions := properties.RenderOptions{Format: configuration.Format, LinkerPackage: configuration.LinkerPackage}
	if renderError := properties.Render(&rendered, propertySet, renderOptions); renderError != nil {
		return fmt.Errorf(renderErrorTemplateConstant, configuration.Format, renderError)
	}

	return writeOutput(command, configuration.Output, rendered.Bytes())
}

func (builder *DescribeCommandBuilder) dependencies() dependencySet {
	return dependencySet{
		loggerProvider:        builder.LoggerProvider,
		gitExecutor:           builder.GitExecutor,
		readerFactory:         builder.ReaderFactory,
		configurationProvider: builder.ConfigurationProvider,
	}
}
