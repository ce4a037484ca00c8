package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

const (
	outputDirectoryPermissionsConstant = 0o755
	outputFilePermissionsConstant      = 0o644
	outputTemporaryPatternConstant     = ".gitstamp-*"
)

// WriteOutput writes content to outputPath, or to standardOutput when the path
// is empty. Files are replaced atomically so readers never observe a partial
// property file, and writers exposing Flush are flushed after the write.
func WriteOutput(standardOutput io.Writer, outputPath string, content []byte) error {
	if len(outputPath) == 0 {
		return writeAndFlush(standardOutput, content)
	}
	return replaceFile(outputPath, content)
}

func writeAndFlush(writer io.Writer, content []byte) error {
	if writer == nil {
		return nil
	}
	if _, writeError := writer.Write(content); writeError != nil {
		return writeError
	}
	if flushableWriter, implementsFlush := writer.(interface{ Flush() error }); implementsFlush {
		return flushableWriter.Flush()
	}
	return nil
}

func replaceFile(outputPath string, content []byte) (resultError error) {
	outputDirectory := filepath.Dir(outputPath)
	if directoryError := os.MkdirAll(outputDirectory, outputDirectoryPermissionsConstant); directoryError != nil {
		return directoryError
	}

	temporaryFile, createError := os.CreateTemp(outputDirectory, outputTemporaryPatternConstant)
	if createError != nil {
		return createError
	}
	temporaryPath := temporaryFile.Name()
	defer func() {
		if resultError != nil {
			_ = os.Remove(temporaryPath)
		}
	}()

	_, writeError := temporaryFile.Write(content)
	closeError := temporaryFile.Close()
	if joinedError := errors.Join(writeError, closeError); joinedError != nil {
		return joinedError
	}
	if chmodError := os.Chmod(temporaryPath, outputFilePermissionsConstant); chmodError != nil {
		return chmodError
	}
	return os.Rename(temporaryPath, outputPath)
}
