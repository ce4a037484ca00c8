package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

const (
	integrationBinaryNameConstant            = "gitstamp"
	integrationBuildTimeout                  = 2 * time.Minute
	integrationCommandTimeout                = 30 * time.Second
	integrationSubtestNameTemplateConstant   = "%d_%s"
	integrationTrackedFileNameConstant       = "VERSION"
	integrationTagNameConstant               = "v2.1.0"
	integrationRepositoryReadLogConstant     = "\"msg\":\"repository read\""
	integrationFactsResolvedLogConstant      = "\"msg\":\"repository facts resolved\""
	integrationLogLevelEnvKeyConstant        = "GITSTAMP_COMMON_LOG_LEVEL"
	integrationHelpUsagePrefixConstant       = "Usage:"
	integrationHelpDescriptionSnippet        = "gitstamp reads the branch, last commit, last tag and dirty state"
	integrationEnvironmentAssignmentTemplate = "%s=%s"
)

type integrationResult struct {
	standardOutput string
	standardError  string
}

func buildIntegrationBinary(testInstance *testing.T) string {
	testInstance.Helper()
	if testing.Short() {
		testInstance.Skip("integration tests build the binary")
	}

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	binaryPath := filepath.Join(testInstance.TempDir(), integrationBinaryNameConstant)
	executionContext, cancel := context.WithTimeout(context.Background(), integrationBuildTimeout)
	defer cancel()

	buildCommand := exec.CommandContext(executionContext, "go", "build", "-o", binaryPath, ".")
	buildCommand.Dir = workingDirectory
	outputBytes, buildError := buildCommand.CombinedOutput()
	require.NoError(testInstance, buildError, string(outputBytes))

	return binaryPath
}

func runIntegrationBinary(testInstance *testing.T, binaryPath string, environment []string, arguments ...string) integrationResult {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancel()

	homeDirectory := testInstance.TempDir()
	command := exec.CommandContext(executionContext, binaryPath, arguments...)
	command.Dir = testInstance.TempDir()
	command.Env = append(append([]string{}, os.Environ()...), "HOME="+homeDirectory, "XDG_CONFIG_HOME="+filepath.Join(homeDirectory, ".config"))
	command.Env = append(command.Env, environment...)

	var standardOutput bytes.Buffer
	var standardError bytes.Buffer
	command.Stdout = &standardOutput
	command.Stderr = &standardError

	runError := command.Run()
	require.NoError(testInstance, runError, standardError.String())

	return integrationResult{standardOutput: standardOutput.String(), standardError: standardError.String()}
}

func createIntegrationRepository(testInstance *testing.T) string {
	testInstance.Helper()

	directory := testInstance.TempDir()
	repository, initError := git.PlainInit(directory, false)
	require.NoError(testInstance, initError)
	worktree, worktreeError := repository.Worktree()
	require.NoError(testInstance, worktreeError)

	require.NoError(testInstance, os.WriteFile(filepath.Join(directory, integrationTrackedFileNameConstant), []byte("2.1.0\n"), 0o600))
	_, addError := worktree.Add(integrationTrackedFileNameConstant)
	require.NoError(testInstance, addError)

	signature := &object.Signature{Name: "Integration", Email: "integration@example.com", When: time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)}
	commitHash, commitError := worktree.Commit("release", &git.CommitOptions{Author: signature})
	require.NoError(testInstance, commitError)
	_, tagError := repository.CreateTag(integrationTagNameConstant, commitHash, &git.CreateTagOptions{Tagger: signature, Message: "release"})
	require.NoError(testInstance, tagError)

	return directory
}

func TestIntegrationDisplaysHelpWithoutArguments(testInstance *testing.T) {
	binaryPath := buildIntegrationBinary(testInstance)

	result := runIntegrationBinary(testInstance, binaryPath, nil)
	require.Contains(testInstance, result.standardOutput, integrationHelpUsagePrefixConstant)
	require.Contains(testInstance, result.standardOutput, integrationHelpDescriptionSnippet)
}

func TestIntegrationKeepsLogsOffStandardOutput(testInstance *testing.T) {
	binaryPath := buildIntegrationBinary(testInstance)
	repositoryPath := createIntegrationRepository(testInstance)

	testCases := []struct {
		name                 string
		environment          []string
		arguments            []string
		expectedInfoVisible  bool
		expectedDebugVisible bool
	}{
		{
			name:      "default_level_is_quiet",
			arguments: []string{"describe", "--format", "properties", "--keys", "branch,last_tag", repositoryPath},
		},
		{
			name:                "info_flag",
			arguments:           []string{"describe", "--log-level", "info", "--log-format", "structured", "--format", "properties", "--keys", "branch,last_tag", repositoryPath},
			expectedInfoVisible: true,
		},
		{
			name:                 "debug_environment",
			environment:          []string{fmt.Sprintf(integrationEnvironmentAssignmentTemplate, integrationLogLevelEnvKeyConstant, "debug")},
			arguments:            []string{"describe", "--log-format", "structured", "--format", "properties", "--keys", "branch,last_tag", repositoryPath},
			expectedInfoVisible:  true,
			expectedDebugVisible: true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(integrationSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(subtest *testing.T) {
			result := runIntegrationBinary(subtest, binaryPath, testCase.environment, testCase.arguments...)
			require.Equal(subtest, "git.branch=master\ngit.last_tag="+integrationTagNameConstant+"\n", result.standardOutput)

			if testCase.expectedInfoVisible {
				require.Contains(subtest, result.standardError, integrationRepositoryReadLogConstant)
			} else {
				require.NotContains(subtest, result.standardError, integrationRepositoryReadLogConstant)
			}
			if testCase.expectedDebugVisible {
				require.Contains(subtest, result.standardError, integrationFactsResolvedLogConstant)
			} else {
				require.NotContains(subtest, result.standardError, integrationFactsResolvedLogConstant)
			}
		})
	}
}

func TestIntegrationPostfixConfirmsDirtyCopyWithGit(testInstance *testing.T) {
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		testInstance.Skip("git executable not available")
	}
	binaryPath := buildIntegrationBinary(testInstance)
	repositoryPath := createIntegrationRepository(testInstance)

	result := runIntegrationBinary(testInstance, binaryPath, nil, "postfix", repositoryPath)
	require.Equal(testInstance, integrationTagNameConstant+"\n", result.standardOutput)

	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryPath, integrationTrackedFileNameConstant), []byte("2.2.0-dev\n"), 0o600))
	result = runIntegrationBinary(testInstance, binaryPath, nil, "postfix", repositoryPath)
	require.Equal(testInstance, "SNAPSHOT", strings.TrimSpace(result.standardOutput))
}
