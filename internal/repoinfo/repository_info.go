package repoinfo

import (
	"strings"
	"time"
)

const (
	snapshotPostfixConstant       = "SNAPSHOT"
	postfixSeparatorConstant      = "-"
	unknownValueConstant          = "unknown"
	lineSeparatorConstant         = "\n"
	branchLinePrefixConstant      = "Currently on branch "
	branchLineInfixConstant       = " which has "
	dirtyWorkingCopyLabelConstant = "uncomitted changes"
	cleanWorkingCopyLabelConstant = "no changes"
	commitLinePrefixConstant      = "Last Commit: "
	tagLinePrefixConstant         = "Last Tag: "
	tagLineAuthorInfixConstant    = " by "
	tagLineStateInfixConstant     = " which is "
	dirtyTagLabelConstant         = "dirty"
	cleanTagLabelConstant         = "clean"
)

// RepositoryInfo captures the provenance of a build. Values are immutable once
// created and safe to share.
type RepositoryInfo struct {
	currentBranch       string
	lastCommitHash      string
	lastCommitShortHash string
	lastCommitDate      time.Time
	workingCopyDirty    bool
	lastTag             *Tag
	lastTagDirty        bool
	lastTagAuthorName   string
	lastTagAuthorEmail  string
	displayString       string
}

// Create builds a RepositoryInfo from facts already resolved by a repository
// reader. A nil lastTag means no tag is reachable from history; in that case
// callers report lastTagDirty as true. Create never fails.
func Create(currentBranch string, lastCommitHash string, lastCommitShortHash string, lastCommitDate time.Time, workingCopyDirty bool, lastTag *Tag, lastTagDirty bool) RepositoryInfo {
	var storedTag *Tag
	if lastTag != nil {
		clonedTag := lastTag.clone()
		storedTag = &clonedTag
	}

	author := taggerIdentity(storedTag)

	info := RepositoryInfo{
		currentBranch:       currentBranch,
		lastCommitHash:      lastCommitHash,
		lastCommitShortHash: lastCommitShortHash,
		lastCommitDate:      lastCommitDate,
		workingCopyDirty:    workingCopyDirty,
		lastTag:             storedTag,
		lastTagDirty:        lastTagDirty,
		lastTagAuthorName:   author.Name,
		lastTagAuthorEmail:  author.Email,
	}
	info.displayString = info.buildDisplayString()

	return info
}

func (info RepositoryInfo) buildDisplayString() string {
	workingCopyLabel := cleanWorkingCopyLabelConstant
	if info.workingCopyDirty {
		workingCopyLabel = dirtyWorkingCopyLabelConstant
	}

	tagName := unknownValueConstant
	if info.lastTag != nil {
		tagName = info.lastTag.Name
	}

	authorName := info.lastTagAuthorName
	if isBlank(authorName) {
		authorName = unknownValueConstant
	}

	tagStateLabel := cleanTagLabelConstant
	if info.lastTagDirty {
		tagStateLabel = dirtyTagLabelConstant
	}

	var builder strings.Builder
	builder.WriteString(branchLinePrefixConstant)
	builder.WriteString(info.currentBranch)
	builder.WriteString(branchLineInfixConstant)
	builder.WriteString(workingCopyLabel)
	builder.WriteString(lineSeparatorConstant)
	builder.WriteString(commitLinePrefixConstant)
	builder.WriteString(info.lastCommitHash)
	builder.WriteString(lineSeparatorConstant)
	builder.WriteString(tagLinePrefixConstant)
	builder.WriteString(tagName)
	builder.WriteString(tagLineAuthorInfixConstant)
	builder.WriteString(authorName)
	builder.WriteString(tagLineStateInfixConstant)
	builder.WriteString(tagStateLabel)

	return builder.String()
}

// VersionPostfix returns the string appended to the build version.
//
// A dirty working copy always yields SNAPSHOT. Otherwise the result is the
// tag name, followed by "<commit>-SNAPSHOT" when commits exist after the tag,
// and falls back to the bare commit hash when both parts are empty.
func (info RepositoryInfo) VersionPostfix() string {
	if info.workingCopyDirty {
		return snapshotPostfixConstant
	}

	var builder strings.Builder
	lastTagName := info.LastTagName()
	if !isBlank(lastTagName) {
		builder.WriteString(lastTagName)
	}

	if info.lastTagDirty {
		if builder.Len() > 0 {
			builder.WriteString(postfixSeparatorConstant)
		}
		builder.WriteString(info.lastCommitHash)
		builder.WriteString(postfixSeparatorConstant)
		builder.WriteString(snapshotPostfixConstant)
	}

	if builder.Len() == 0 {
		builder.WriteString(info.lastCommitHash)
	}

	return builder.String()
}

// DisplayString returns the three line human-readable summary. Values built
// by Create return the cached summary; the zero value computes it on demand.
func (info RepositoryInfo) DisplayString() string {
	if len(info.displayString) == 0 {
		return info.buildDisplayString()
	}
	return info.displayString
}

// String implements fmt.Stringer.
func (info RepositoryInfo) String() string {
	return info.DisplayString()
}

// CurrentBranch returns the active branch name, empty when HEAD is detached.
func (info RepositoryInfo) CurrentBranch() string {
	return info.currentBranch
}

// LastCommitHash returns the full hash of the last commit.
func (info RepositoryInfo) LastCommitHash() string {
	return info.lastCommitHash
}

// LastCommitShortHash returns the abbreviated hash of the last commit.
func (info RepositoryInfo) LastCommitShortHash() string {
	return info.lastCommitShortHash
}

// LastCommitDate returns the timestamp of the last commit.
func (info RepositoryInfo) LastCommitDate() time.Time {
	return info.lastCommitDate
}

// WorkingCopyDirty reports uncommitted modifications.
func (info RepositoryInfo) WorkingCopyDirty() bool {
	return info.workingCopyDirty
}

// LastTag returns a copy of the nearest tag and whether one exists.
func (info RepositoryInfo) LastTag() (Tag, bool) {
	if info.lastTag == nil {
		return Tag{}, false
	}
	return info.lastTag.clone(), true
}

// LastTagDirty reports whether commits exist after the last tag.
func (info RepositoryInfo) LastTagDirty() bool {
	return info.lastTagDirty
}

// LastTagName returns the tag name or an empty string.
func (info RepositoryInfo) LastTagName() string {
	if info.lastTag == nil {
		return ""
	}
	return info.lastTag.Name
}

// LastTagHash returns the hash of the object the tag resolves to or an empty string.
func (info RepositoryInfo) LastTagHash() string {
	if info.lastTag == nil {
		return ""
	}
	return info.lastTag.objectHash()
}

// LastTagAuthorName returns the tagger name of an annotated tag or an empty string.
func (info RepositoryInfo) LastTagAuthorName() string {
	return info.lastTagAuthorName
}

// LastTagAuthorEmail returns the tagger email of an annotated tag or an empty string.
func (info RepositoryInfo) LastTagAuthorEmail() string {
	return info.lastTagAuthorEmail
}

func isBlank(value string) bool {
	return len(strings.TrimSpace(value)) == 0
}
