package utils

// LoggerInitializationFailedMessageFormat reports a logger that could not be constructed.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes the fatal log line emitted when the CLI returns an error.
const ApplicationExecutionFailedMessage = "ftctx failed"

// Project file names shared by the configuration loader, the updater and the watcher.
const (
	// ConfigFileName is the fixed name of the per-project configuration file.
	ConfigFileName = "filetreecontext.config.json"
	// GitIgnoreFileName is the ignore file used when the configuration does not list any.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// HiddenEntryPrefix marks entries that are never rendered nor traversed.
	HiddenEntryPrefix = "."
)
