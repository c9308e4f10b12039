// Package config loads the per-project ftctx configuration and the ignore files it names.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// commentPrefix starts a comment line inside an ignore file.
	commentPrefix = "#"
	// escapeCharacter protects a trailing space from being trimmed.
	escapeCharacter = '\\'

	lineSeparator  = "\n"
	carriageReturn = "\r"

	errorLoadIgnoreFileFormat = "loading %s from %s: %w"
)

// LoadIgnoreFilePatterns reads a specified ignore file and returns its patterns in file order.
// A missing file yields no patterns and no error. Leading whitespace is part of a pattern;
// trailing whitespace is dropped unless escaped with a backslash.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	content, readFileError := os.ReadFile(ignoreFilePath)
	if readFileError != nil {
		if os.IsNotExist(readFileError) {
			return nil, nil
		}
		return nil, readFileError
	}

	var ignorePatterns []string
	for _, rawLine := range strings.Split(string(content), lineSeparator) {
		patternLine := trimUnescapedTrailingSpace(strings.TrimSuffix(rawLine, carriageReturn))
		if patternLine == "" || strings.HasPrefix(patternLine, commentPrefix) {
			continue
		}
		ignorePatterns = append(ignorePatterns, patternLine)
	}
	return ignorePatterns, nil
}

func trimUnescapedTrailingSpace(line string) string {
	endIndex := len(line)
	for endIndex > 0 && (line[endIndex-1] == ' ' || line[endIndex-1] == '\t') {
		if endIndex > 1 && line[endIndex-2] == escapeCharacter {
			break
		}
		endIndex--
	}
	return line[:endIndex]
}

// LoadCombinedIgnorePatterns aggregates patterns from every listed ignore file under
// absoluteDirectoryPath, keeping the order the file names were listed in. Files that do not
// exist are skipped.
func LoadCombinedIgnorePatterns(absoluteDirectoryPath string, ignoreFileNames []string) ([]string, error) {
	var combinedPatterns []string
	for _, ignoreFileName := range ignoreFileNames {
		ignoreFilePath := filepath.Join(absoluteDirectoryPath, ignoreFileName)
		ignoreFilePatterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
		if loadError != nil {
			return nil, fmt.Errorf(errorLoadIgnoreFileFormat, ignoreFileName, absoluteDirectoryPath, loadError)
		}
		combinedPatterns = append(combinedPatterns, ignoreFilePatterns...)
	}
	return combinedPatterns, nil
}
