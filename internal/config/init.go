package config

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	// DefaultTargetFile is the target document written into a freshly initialized configuration.
	DefaultTargetFile = "README.md"

	defaultConfigurationTemplateFormat = `{
  "ignoreFiles": [".gitignore"],
  "targetFile": %s
}
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	RootDirectory string
	TargetFile    string
	Force         bool
}

// InitializeConfiguration writes a default configuration file into the project root and returns its path.
func InitializeConfiguration(options InitOptions) (string, error) {
	rootDirectory := options.RootDirectory
	if rootDirectory == "" {
		current, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory for configuration: %w", err)
		}
		rootDirectory = current
	}
	targetFile := options.TargetFile
	if targetFile == "" {
		targetFile = DefaultTargetFile
	}
	destinationPath := ProjectConfigurationPath(rootDirectory)

	if _, err := os.Stat(destinationPath); err == nil {
		if !options.Force {
			return "", fmt.Errorf("configuration file already exists at %s", destinationPath)
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("inspect configuration path %s: %w", destinationPath, err)
	}

	encodedTargetFile, encodeError := json.Marshal(targetFile)
	if encodeError != nil {
		return "", fmt.Errorf("encode target file %s: %w", targetFile, encodeError)
	}
	content := fmt.Sprintf(defaultConfigurationTemplateFormat, encodedTargetFile)
	if err := os.WriteFile(destinationPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, err)
	}

	return destinationPath, nil
}
