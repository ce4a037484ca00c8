package gitreader

import (
	"context"
	"errors"
	"strings"

	git "github.com/go-git/go-git/v5"
	"go.uber.org/zap"

	"github.com/temirov/gitstamp/internal/execshell"
)

const (
	gitStatusSubcommandConstant              = "status"
	gitStatusPorcelainFlagConstant           = "--porcelain"
	gitUntrackedFilesDisabledFlagConstant    = "--untracked-files=no"
	gitTerminalPromptEnvironmentNameConstant = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledValueConstant   = "0"
	porcelainVerificationMessageConstant     = "go-git reports modifications; verifying with git status --porcelain"
	porcelainUnavailableMessageConstant      = "git status --porcelain unavailable; keeping go-git status"
	logFieldErrorConstant                    = "error"
)

// resolveWorkingCopyDirty reports uncommitted modifications. go-git flags files
// whose content only differs by line endings or stat data, so a dirty answer is
// confirmed with the git CLI when one is available.
func (reader *Reader) resolveWorkingCopyDirty(executionContext context.Context, repository *git.Repository, repositoryPath string) (bool, error) {
	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		if errors.Is(worktreeError, git.ErrIsBareRepository) {
			return false, nil
		}
		return false, worktreeError
	}

	status, statusError := worktree.Status()
	if statusError != nil {
		return false, statusError
	}

	if !statusHasModifications(status, reader.options.IncludeUntracked) {
		return false, nil
	}

	if !reader.options.VerifyWithGitCLI || reader.gitExecutor == nil {
		return true, nil
	}

	reader.logger.Debug(porcelainVerificationMessageConstant, zap.String(logFieldRepositoryConstant, repositoryPath))

	arguments := []string{gitStatusSubcommandConstant, gitStatusPorcelainFlagConstant}
	if !reader.options.IncludeUntracked {
		arguments = append(arguments, gitUntrackedFilesDisabledFlagConstant)
	}

	executionResult, executionError := reader.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     worktree.Filesystem.Root(),
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptDisabledValueConstant},
	})
	if executionError != nil {
		if contextError := executionContext.Err(); contextError != nil {
			return false, contextError
		}
		reader.logger.Debug(porcelainUnavailableMessageConstant, zap.String(logFieldRepositoryConstant, repositoryPath), zap.String(logFieldErrorConstant, executionError.Error()))
		return true, nil
	}

	return len(strings.TrimSpace(executionResult.StandardOutput)) > 0, nil
}

func statusHasModifications(status git.Status, includeUntracked bool) bool {
	for _, fileStatus := range status {
		if fileStatus.Staging == git.Untracked && fileStatus.Worktree == git.Untracked {
			if includeUntracked {
				return true
			}
			continue
		}
		if fileStatus.Staging != git.Unmodified || fileStatus.Worktree != git.Unmodified {
			return true
		}
	}
	return false
}
