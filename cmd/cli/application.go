package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/gitstamp/internal/stamp"
	"github.com/temirov/gitstamp/internal/utils"
	"github.com/temirov/gitstamp/internal/utils/flags"
)

const (
	applicationNameConstant                 = "gitstamp"
	applicationShortDescriptionConstant     = "Stamp builds with Git repository provenance"
	applicationLongDescriptionConstant      = "gitstamp reads the branch, last commit, last tag and dirty state of a Git repository and publishes them as build properties or a version postfix."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	logFormatFlagLabelConstant              = "log format"
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "GITSTAMP"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	userConfigurationDirectoryNameConstant  = "gitstamp"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	commandBuildErrorTemplateConstant       = "unable to build %s command: %w"
	defaultConfigurationSearchPathConstant  = "."
	toolsConfigurationKeyConstant           = "tools"
	describeConfigurationKeyConstant        = toolsConfigurationKeyConstant + ".describe"
	versionTemplateConstant                 = "{{.Name}} version: {{.Version}}\n"
	developmentVersionConstant              = "dev"
	develBuildVersionConstant               = "(devel)"
)

// Version is the release reported by --version. Release builds set it with
// -ldflags "-X github.com/temirov/gitstamp/cmd/cli.Version=...".
var Version = developmentVersionConstant

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands.
type ApplicationToolsConfiguration struct {
	Describe stamp.CommandConfiguration `mapstructure:"describe"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand           *cobra.Command
	configurationLoader   *utils.ConfigurationLoader
	loggerFactory         *utils.LoggerFactory
	logger                *zap.Logger
	configuration         ApplicationConfiguration
	configurationMetadata utils.LoadedConfiguration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlag         *flags.ChoiceValue
	buildErrors           []error
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader: configurationLoader,
		loggerFactory:       utils.NewLoggerFactory(),
		logger:              zap.NewNop(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       resolveVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	cobraCommand.SetVersionTemplate(versionTemplateConstant)
	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	application.logFormatFlag = flags.NewChoiceValue(logFormatFlagLabelConstant, string(utils.LogFormatConsole), utils.SupportedLogFormats())
	cobraCommand.PersistentFlags().Var(application.logFormatFlag, logFormatFlagNameConstant, application.logFormatFlag.Usage(logFormatFlagUsageConstant))

	loggerProvider := func() *zap.Logger {
		return application.logger
	}
	configurationProvider := func() stamp.CommandConfiguration {
		return application.configuration.Tools.Describe
	}

	describeBuilder := stamp.DescribeCommandBuilder{
		LoggerProvider:        loggerProvider,
		ConfigurationProvider: configurationProvider,
	}
	application.addCommand(cobraCommand, describeBuilder.Build)

	postfixBuilder := stamp.PostfixCommandBuilder{
		LoggerProvider:        loggerProvider,
		ConfigurationProvider: configurationProvider,
	}
	application.addCommand(cobraCommand, postfixBuilder.Build)

	application.rootCommand = cobraCommand

	return application
}

func (application *Application) addCommand(rootCommand *cobra.Command, build func() (*cobra.Command, error)) {
	subcommand, buildError := build()
	if buildError != nil {
		application.buildErrors = append(application.buildErrors, buildError)
		return
	}
	rootCommand.AddCommand(subcommand)
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	if len(application.buildErrors) > 0 {
		return fmt.Errorf(commandBuildErrorTemplateConstant, applicationNameConstant, errors.Join(application.buildErrors...))
	}

	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, userConfigurationDirectoryNameConstant))
	}
	return searchPaths
}

func resolveVersion() string {
	if trimmedVersion := strings.TrimSpace(Version); len(trimmedVersion) > 0 && trimmedVersion != developmentVersionConstant {
		return trimmedVersion
	}
	if buildInformation, available := debug.ReadBuildInfo(); available {
		moduleVersion := strings.TrimSpace(buildInformation.Main.Version)
		if len(moduleVersion) > 0 && moduleVersion != develBuildVersionConstant {
			return moduleVersion
		}
	}
	return developmentVersionConstant
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range stamp.DefaultConfigurationValues(describeConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	application.configuration = ApplicationConfiguration{}
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlag.String()
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := utils.WithInvocationDetails(command.Context(), utils.InvocationDetails{
			ConfigurationFilePath: application.configurationMetadata.ConfigFileUsed,
			ApplicationVersion:    command.Root().Version,
		})
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
