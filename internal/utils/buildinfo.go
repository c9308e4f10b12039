package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion = "unknown"

	errorAbsolutePathFormat = "failed to get absolute path for %s: %w"
	errorAncestorFormat     = "%s not found in or above %s"
)

// GetApplicationVersion attempts to determine the application version using various methods.
// It checks Go build info first, then falls back to git describe commands if available.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}

	repositoryDirectory, repositoryError := findAncestorContaining(".", GitDirectoryName, true)
	if repositoryError != nil {
		return unknownVersion
	}
	describeArguments := [][]string{
		{"describe", "--tags", "--exact-match"},
		{"describe", "--tags", "--long", "--dirty"},
	}
	for _, arguments := range describeArguments {
		// #nosec G204
		gitCommand := exec.Command("git", arguments...)
		gitCommand.Dir = repositoryDirectory
		gitOutput, gitError := gitCommand.Output()
		if gitError == nil && len(gitOutput) > 0 {
			return strings.TrimSpace(string(gitOutput))
		}
	}
	return unknownVersion
}

// FindProjectRoot returns the nearest directory at or above startDirectory that holds
// ConfigFileName. When no ancestor has one, the absolute startDirectory is returned.
func FindProjectRoot(startDirectory string) (string, error) {
	absoluteStartDirectory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, startDirectory, absoluteError)
	}
	configuredDirectory, searchError := findAncestorContaining(absoluteStartDirectory, ConfigFileName, false)
	if searchError != nil {
		return absoluteStartDirectory, nil
	}
	return configuredDirectory, nil
}

// findAncestorContaining searches upward from startDirectory until it locates a
// directory holding an entry called entryName and returns that directory.
func findAncestorContaining(startDirectory string, entryName string, wantDirectory bool) (string, error) {
	absoluteStartDirectory, errorAbsolute := filepath.Abs(startDirectory)
	if errorAbsolute != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, startDirectory, errorAbsolute)
	}

	currentDirectory := absoluteStartDirectory
	for {
		candidatePath := filepath.Join(currentDirectory, entryName)
		fileInformation, errorStat := os.Stat(candidatePath)
		if errorStat == nil && fileInformation.IsDir() == wantDirectory {
			return currentDirectory, nil
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		currentDirectory = parentDirectory
	}

	return "", fmt.Errorf(errorAncestorFormat, entryName, absoluteStartDirectory)
}
