package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	commandLabelTemplateConstant         = "%s (in %s)"
	exitCodeSuffixTemplateConstant       = "exit code %d"
	standardErrorSuffixTemplateConstant  = "%s: %s"
	unknownFailureMessageConstant        = "unknown error"
	defaultWorkingDirectoryLabelConstant = "current directory"
	argumentSeparatorConstant            = " "
	gitStatusSubcommandConstant          = "status"
	gitStatusPorcelainFlagConstant       = "--porcelain"
)

// stageTemplates holds one template per messageStage. Templates receive the
// subject followed by the failure detail where relevant.
type stageTemplates [4]string

var genericTemplates = stageTemplates{
	"Running %s",
	"Completed %s",
	"%s failed with %s",
	"%s failed: %s",
}

var gitStatusTemplates = stageTemplates{
	"Reviewing working tree status in %s",
	"Collected working tree status for %s",
	"Failed to review working tree status in %s (%s)",
	"Unable to review working tree status in %s: %s",
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, messageStageStart, "")
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, messageStageSuccess, "")
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	detail := fmt.Sprintf(exitCodeSuffixTemplateConstant, result.ExitCode)
	if trimmedStandardError := strings.TrimSpace(result.StandardError); len(trimmedStandardError) > 0 {
		detail = fmt.Sprintf(standardErrorSuffixTemplateConstant, detail, trimmedStandardError)
	}
	return formatter.buildMessage(command, messageStageFailure, detail)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	detail := unknownFailureMessageConstant
	if failure != nil {
		detail = failure.Error()
	}
	return formatter.buildMessage(command, messageStageExecutionFailure, detail)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, stage messageStage, detail string) string {
	templates, subject := genericTemplates, commandLabel(command)
	if isPorcelainStatus(command) {
		templates, subject = gitStatusTemplates, workingDirectoryLabel(command)
	}

	if stage == messageStageStart || stage == messageStageSuccess {
		return fmt.Sprintf(templates[stage], subject)
	}
	return fmt.Sprintf(templates[stage], subject, detail)
}

func isPorcelainStatus(command ShellCommand) bool {
	arguments := command.Details.Arguments
	if command.Name != CommandGit || len(arguments) == 0 || strings.TrimSpace(arguments[0]) != gitStatusSubcommandConstant {
		return false
	}
	for _, argument := range arguments[1:] {
		if strings.TrimSpace(argument) == gitStatusPorcelainFlagConstant {
			return true
		}
	}
	return false
}

func commandLabel(command ShellCommand) string {
	label := strings.Join(append([]string{string(command.Name)}, command.Details.Arguments...), argumentSeparatorConstant)
	if trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(trimmedWorkingDirectory) > 0 {
		return fmt.Sprintf(commandLabelTemplateConstant, label, trimmedWorkingDirectory)
	}
	return label
}

func workingDirectoryLabel(command ShellCommand) string {
	if trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(trimmedWorkingDirectory) > 0 {
		return trimmedWorkingDirectory
	}
	return defaultWorkingDirectoryLabelConstant
}
