package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/ftctx/internal/utils"
)

const (
	// ignoreFilesKey names the optional list of ignore files.
	ignoreFilesKey = "ignoreFiles"
	// targetFileKey names the required target document path.
	targetFileKey = "targetFile"
	// configurationType is the encoding of ConfigFileName.
	configurationType = "json"

	errorReadConfigurationFormat  = "%w: %s: %w"
	errorParseConfigurationFormat = "%w: %w"
	errorConfigurationPathFormat  = "%s: %w"
	errorTargetFileFormat         = "%w: %q must be a non-empty string"
	errorIgnoreFileEntryFormat    = "%w: %q entry %d is %T, not a string"
	errorStatConfigurationFormat  = "stat configuration %s: %w"
)

var (
	// ErrConfigurationMissing reports that the project has no configuration file. It is the normal
	// "not enabled" state rather than a failure.
	ErrConfigurationMissing = errors.New("configuration file not found")
	// ErrConfigurationRead reports an I/O failure while reading the configuration file.
	ErrConfigurationRead = errors.New("failed to read configuration file")
	// ErrConfigurationSyntax reports configuration content that is not a JSON object.
	ErrConfigurationSyntax = errors.New("invalid JSON in configuration file")
	// ErrTargetFileMissing reports an absent or non-string targetFile.
	ErrTargetFileMissing = errors.New("no targetFile specified in configuration file")
	// ErrIgnoreFilesInvalid reports an ignoreFiles list holding something other than strings.
	ErrIgnoreFilesInvalid = errors.New("invalid ignoreFiles in configuration file")
)

// DefaultIgnoreFiles returns the ignore file list used when the configuration names none.
func DefaultIgnoreFiles() []string {
	return []string{utils.GitIgnoreFileName}
}

// ProjectConfiguration is the decoded content of utils.ConfigFileName.
type ProjectConfiguration struct {
	IgnoreFiles []string
	TargetFile  string
}

// TargetPath resolves the target document against the project root.
func (configuration ProjectConfiguration) TargetPath(rootDirectoryPath string) string {
	return filepath.Join(rootDirectoryPath, configuration.TargetFile)
}

// ProjectConfigurationPath returns where the configuration file for rootDirectoryPath lives.
func ProjectConfigurationPath(rootDirectoryPath string) string {
	return filepath.Join(rootDirectoryPath, utils.ConfigFileName)
}

// LoadProjectConfiguration reads and decodes the configuration file of rootDirectoryPath.
// The file is read from disk on every call.
func LoadProjectConfiguration(rootDirectoryPath string) (ProjectConfiguration, error) {
	configurationPath := ProjectConfigurationPath(rootDirectoryPath)
	if _, statError := os.Stat(configurationPath); statError != nil {
		if os.IsNotExist(statError) {
			return ProjectConfiguration{}, ErrConfigurationMissing
		}
		return ProjectConfiguration{}, fmt.Errorf(errorStatConfigurationFormat, configurationPath, statError)
	}

	// #nosec G304
	content, readError := os.ReadFile(configurationPath)
	if readError != nil {
		return ProjectConfiguration{}, fmt.Errorf(errorReadConfigurationFormat, ErrConfigurationRead, configurationPath, readError)
	}
	configuration, parseError := ParseProjectConfiguration(content)
	if parseError != nil {
		return ProjectConfiguration{}, fmt.Errorf(errorConfigurationPathFormat, configurationPath, parseError)
	}
	return configuration, nil
}

// ParseProjectConfiguration decodes configuration content.
// ignoreFiles falls back to DefaultIgnoreFiles when it is absent or not an array.
func ParseProjectConfiguration(content []byte) (ProjectConfiguration, error) {
	reader := viper.New()
	reader.SetConfigType(configurationType)
	if parseError := reader.ReadConfig(bytes.NewReader(content)); parseError != nil {
		return ProjectConfiguration{}, fmt.Errorf(errorParseConfigurationFormat, ErrConfigurationSyntax, parseError)
	}

	presentKeys, keysError := topLevelKeys(content)
	if keysError != nil {
		return ProjectConfiguration{}, fmt.Errorf(errorParseConfigurationFormat, ErrConfigurationSyntax, keysError)
	}

	var rawIgnoreFiles any
	if presentKeys[ignoreFilesKey] {
		rawIgnoreFiles = reader.Get(ignoreFilesKey)
	}
	ignoreFiles, ignoreFilesError := decodeIgnoreFiles(rawIgnoreFiles)
	if ignoreFilesError != nil {
		return ProjectConfiguration{}, ignoreFilesError
	}

	targetFile, isString := reader.Get(targetFileKey).(string)
	if !presentKeys[targetFileKey] || !isString || targetFile == "" {
		return ProjectConfiguration{}, fmt.Errorf(errorTargetFileFormat, ErrTargetFileMissing, targetFileKey)
	}

	return ProjectConfiguration{IgnoreFiles: ignoreFiles, TargetFile: targetFile}, nil
}

// topLevelKeys lists the keys of the configuration object exactly as written.
// viper folds key case, so a key such as "TargetFile" must not stand in for targetFile.
func topLevelKeys(content []byte) (map[string]bool, error) {
	var rawObject map[string]json.RawMessage
	if decodeError := json.Unmarshal(content, &rawObject); decodeError != nil {
		return nil, decodeError
	}
	presentKeys := make(map[string]bool, len(rawObject))
	for key := range rawObject {
		presentKeys[key] = true
	}
	return presentKeys, nil
}

func decodeIgnoreFiles(rawValue any) ([]string, error) {
	var rawEntries []any
	switch typedValue := rawValue.(type) {
	case []any:
		rawEntries = typedValue
	case []string:
		return append([]string{}, typedValue...), nil
	default:
		return DefaultIgnoreFiles(), nil
	}

	ignoreFiles := make([]string, 0, len(rawEntries))
	for entryIndex, rawEntry := range rawEntries {
		ignoreFileName, isString := rawEntry.(string)
		if !isString {
			return nil, fmt.Errorf(errorIgnoreFileEntryFormat, ErrIgnoreFilesInvalid, ignoreFilesKey, entryIndex, rawEntry)
		}
		ignoreFiles = append(ignoreFiles, ignoreFileName)
	}
	return ignoreFiles, nil
}
