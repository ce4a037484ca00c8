package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/gitstamp/internal/properties"
	"github.com/temirov/gitstamp/internal/repoinfo"
	"github.com/temirov/gitstamp/internal/stamp"
	"github.com/temirov/gitstamp/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	readmeSnippetTestNameConstant    = "readme_describe_configuration"
	readmeSnippetFileNameConstant    = "config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
	describeConfigurationKeyConstant = "tools.describe"
	readmeEnvironmentPrefixConstant  = "GITSTAMPREADME"
	readmeConfigurationNameConstant  = "config"
	readmeConfigurationTypeConstant  = "yaml"
)

type readmeApplicationConfiguration struct {
	Common readmeCommonConfiguration `mapstructure:"common"`
	Tools  readmeToolsConfiguration  `mapstructure:"tools"`
}

type readmeCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

type readmeToolsConfiguration struct {
	Describe stamp.CommandConfiguration `mapstructure:"describe"`
}

func extractReadmeConfiguration(testInstance *testing.T) string {
	testInstance.Helper()

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	return strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])
}

func TestReadmeDescribeConfigurationLoads(testInstance *testing.T) {
	snippetContent := extractReadmeConfiguration(testInstance)

	testCases := []struct {
		name          string
		configuration string
	}{
		{
			name:          readmeSnippetTestNameConstant,
			configuration: snippetContent,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			var rawDocument map[string]any
			require.NoError(subtest, yaml.Unmarshal([]byte(testCase.configuration), &rawDocument))

			configurationPath := filepath.Join(subtest.TempDir(), readmeSnippetFileNameConstant)
			require.NoError(subtest, os.WriteFile(configurationPath, []byte(testCase.configuration), 0o600))

			loader := utils.NewConfigurationLoader(readmeConfigurationNameConstant, readmeConfigurationTypeConstant, readmeEnvironmentPrefixConstant, nil)

			var applicationConfiguration readmeApplicationConfiguration
			loadedConfiguration, loadError := loader.LoadConfiguration(
				configurationPath,
				stamp.DefaultConfigurationValues(describeConfigurationKeyConstant),
				&applicationConfiguration,
			)
			require.NoError(subtest, loadError)
			require.Equal(subtest, configurationPath, loadedConfiguration.ConfigFileUsed)

			describeConfiguration := applicationConfiguration.Tools.Describe
			require.Equal(subtest, properties.FormatProperties, describeConfiguration.Format)
			require.Equal(subtest, properties.DefaultPrefix, describeConfiguration.Prefix)
			require.Equal(subtest, []string{properties.KeyBranch, properties.KeyLastCommitShort, properties.KeyVersionPostfix}, describeConfiguration.Keys)
			require.Equal(subtest, properties.DefaultDateLayout, describeConfiguration.DateLayout)
			require.Equal(subtest, 8, describeConfiguration.ShortHashLength)
			require.True(subtest, describeConfiguration.VerifyWithGit)
			require.Equal(subtest, 5*time.Second, describeConfiguration.Timeout)
			require.Equal(subtest, "warn", applicationConfiguration.Common.LogLevel)

			for _, key := range describeConfiguration.Keys {
				_, published := properties.Build(repoinfo.RepositoryInfo{}, describeConfiguration.Prefix, describeConfiguration.DateLayout).Lookup(key)
				require.Truef(subtest, published, "README key %s is not published", key)
			}
		})
	}
}
