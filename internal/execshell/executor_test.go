package execshell_test

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/gitstamp/internal/execshell"
)

const (
	testExecutionSuccessCaseNameConstant         = "success"
	testExecutionFailureCaseNameConstant         = "failure_exit_code"
	testExecutionRunnerErrorCaseNameConstant     = "runner_error"
	testCommandArgumentConstant                  = "--version"
	testWorkingDirectoryConstant                 = "."
	testStandardErrorOutputConstant              = "failure"
	testLoggerInitializationCaseNameConstant     = "logger_validation"
	testRunnerInitializationCaseNameConstant     = "runner_validation"
	testSuccessfulInitializationCaseNameConstant = "successful_initialization"
	testShellExecutableConstant                  = "sh"
)

type recordingCommandRunner struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	return runner.executionResult, runner.executionError
}

func TestShellExecutorInitializationValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logger        *zap.Logger
		runner        execshell.CommandRunner
		expectError   error
		expectSuccess bool
	}{
		{
			name:        testLoggerInitializationCaseNameConstant,
			logger:      nil,
			runner:      &recordingCommandRunner{},
			expectError: execshell.ErrLoggerNotConfigured,
		},
		{
			name:        testRunnerInitializationCaseNameConstant,
			logger:      zap.NewNop(),
			runner:      nil,
			expectError: execshell.ErrCommandRunnerNotConfigured,
		},
		{
			name:          testSuccessfulInitializationCaseNameConstant,
			logger:        zap.NewNop(),
			runner:        &recordingCommandRunner{},
			expectSuccess: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor, creationError := execshell.NewShellExecutor(testCase.logger, testCase.runner)
			if testCase.expectSuccess {
				require.NoError(testInstance, creationError)
				require.NotNil(testInstance, executor)
			} else {
				require.Error(testInstance, creationError)
				require.ErrorIs(testInstance, creationError, testCase.expectError)
			}
		})
	}
}

func TestShellExecutorExecuteBehavior(testInstance *testing.T) {
	testCases := []struct {
		name             string
		arguments        []string
		runnerResult     execshell.ExecutionResult
		runnerError      error
		expectErrorType  any
		expectedMessages []string
	}{
		{
			name:         testExecutionSuccessCaseNameConstant,
			arguments:    []string{testCommandArgumentConstant},
			runnerResult: execshell.ExecutionResult{StandardOutput: "git version 2.45.0", ExitCode: 0},
			expectedMessages: []string{
				"Running git --version (in .)",
				"Completed git --version (in .)",
			},
		},
		{
			name:            testExecutionFailureCaseNameConstant,
			arguments:       []string{"status", "--porcelain"},
			runnerResult:    execshell.ExecutionResult{StandardError: testStandardErrorOutputConstant, ExitCode: 1},
			expectErrorType: execshell.CommandFailedError{},
			expectedMessages: []string{
				"Reviewing working tree status in .",
				"Failed to review working tree status in . (exit code 1: failure)",
			},
		},
		{
			name:            testExecutionRunnerErrorCaseNameConstant,
			arguments:       []string{"status", "--porcelain"},
			runnerError:     errors.New("runner failure"),
			expectErrorType: execshell.CommandExecutionError{},
			expectedMessages: []string{
				"Reviewing working tree status in .",
				"Unable to review working tree status in .: runner failure",
			},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			observerCore, observerLogs := observer.New(zap.DebugLevel)
			recordingRunner := &recordingCommandRunner{
				executionResult: testCase.runnerResult,
				executionError:  testCase.runnerError,
			}

			shellExecutor, creationError := execshell.NewShellExecutor(zap.New(observerCore), recordingRunner)
			require.NoError(subtest, creationError)

			commandDetails := execshell.CommandDetails{Arguments: testCase.arguments, WorkingDirectory: testWorkingDirectoryConstant}
			executionResult, executionError := shellExecutor.ExecuteGit(context.Background(), commandDetails)

			if testCase.expectErrorType != nil {
				require.Error(subtest, executionError)
				require.IsType(subtest, testCase.expectErrorType, executionError)
				require.Empty(subtest, executionResult.StandardOutput)
			} else {
				require.NoError(subtest, executionError)
				require.Equal(subtest, testCase.runnerResult.StandardOutput, executionResult.StandardOutput)
			}

			recordedMessages := make([]string, 0, observerLogs.Len())
			for _, entry := range observerLogs.All() {
				recordedMessages = append(recordedMessages, entry.Message)
			}
			require.Equal(subtest, testCase.expectedMessages, recordedMessages)
			require.Len(subtest, recordingRunner.recordedCommands, 1)
			require.Equal(subtest, execshell.CommandGit, recordingRunner.recordedCommands[0].Name)
		})
	}
}

func TestCommandErrorsDescribeFailure(testInstance *testing.T) {
	command := execshell.ShellCommand{Name: execshell.CommandGit}

	failedError := execshell.CommandFailedError{Command: command, Result: execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal"}}
	require.Equal(testInstance, "git exited with code 128: fatal", failedError.Error())

	cause := errors.New("not found")
	executionError := execshell.CommandExecutionError{Command: command, Cause: cause}
	require.ErrorIs(testInstance, executionError, cause)
}

func TestOSCommandRunnerReportsExitCode(testInstance *testing.T) {
	if _, lookupError := exec.LookPath(testShellExecutableConstant); lookupError != nil {
		testInstance.Skip("sh not available")
	}

	runner := execshell.NewOSCommandRunner()
	result, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name: execshell.CommandName(testShellExecutableConstant),
		Details: execshell.CommandDetails{
			Arguments:            []string{"-c", "printf \"$STAMP_VALUE\"; exit 3"},
			EnvironmentVariables: map[string]string{"STAMP_VALUE": "stamped"},
		},
	})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, 3, result.ExitCode)
	require.Equal(testInstance, "stamped", result.StandardOutput)
}

func TestOSCommandRunnerFailsForMissingExecutable(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunner()
	_, runError := runner.Run(context.Background(), execshell.ShellCommand{Name: execshell.CommandName("gitstamp-missing-executable")})

	require.Error(testInstance, runError)
}
