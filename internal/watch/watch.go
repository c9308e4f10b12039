// Package watch turns filesystem writes under a project root into save events.
//
// A Session owns exactly one fsnotify subscription. It is created by Activate, delivers
// events to its Handler one at a time from Run, and is torn down by Deactivate.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/temirov/ftctx/internal/utils"
)

const (
	errorCreateWatcherFormat    = "create filesystem watcher: %w"
	errorWatchDirectoryFormat   = "watch directory %s: %w"
	errorRootNotDirectoryFormat = "watch root %s is not a directory"

	logMessageWatchError     = "filesystem watcher reported an error"
	logMessageWatchAddFailed = "failed to watch new directory"
	logMessageSkippedPath    = "ignoring write to excluded path"
	logMessageSaveDetected   = "save detected"
)

// ErrSessionClosed is returned by Run after Deactivate.
var ErrSessionClosed = errors.New("watch session closed")

// Event reports that a file was saved somewhere under the watched root.
type Event struct {
	Path string
	Time time.Time
}

// Handler receives save events. Calls are never concurrent.
type Handler interface {
	HandleSave(ctx context.Context, event Event)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event Event)

// HandleSave calls handlerFunction.
func (handlerFunction HandlerFunc) HandleSave(ctx context.Context, event Event) {
	handlerFunction(ctx, event)
}

// Options configures a Session.
type Options struct {
	RootDirectory string
	// SkipPath drops saves of matching files. It is consulted on every event.
	SkipPath func(absolutePath string) bool
	// SkipDirectory keeps matching directories out of the subscription. Hidden directories are always skipped.
	SkipDirectory func(absolutePath string) bool
	Logger        *zap.Logger
}

// Session is an active subscription to save events under one root.
type Session struct {
	rootDirectoryPath string
	watcher           *fsnotify.Watcher
	handler           Handler
	skipPath          func(string) bool
	skipDirectory     func(string) bool
	logger            *zap.Logger
	closeOnce         sync.Once
	closeError        error
}

// Activate subscribes to the root directory and every non-hidden directory below it.
func Activate(options Options, handler Handler) (*Session, error) {
	absoluteRoot, absoluteError := filepath.Abs(options.RootDirectory)
	if absoluteError != nil {
		return nil, absoluteError
	}
	rootInfo, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return nil, statError
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf(errorRootNotDirectoryFormat, absoluteRoot)
	}

	watcher, watcherError := fsnotify.NewWatcher()
	if watcherError != nil {
		return nil, fmt.Errorf(errorCreateWatcherFormat, watcherError)
	}
	session := &Session{
		rootDirectoryPath: absoluteRoot,
		watcher:           watcher,
		handler:           handler,
		skipPath:          options.SkipPath,
		skipDirectory:     options.SkipDirectory,
		logger:            utils.LoggerOrNop(options.Logger),
	}
	if addError := session.addDirectoryTree(absoluteRoot); addError != nil {
		_ = watcher.Close()
		return nil, addError
	}
	return session, nil
}

// RootDirectory returns the absolute watched root.
func (session *Session) RootDirectory() string {
	return session.rootDirectoryPath
}

// Run delivers save events until ctx is done or the session is deactivated.
// A cancelled context is not an error; a deactivated session returns ErrSessionClosed.
func (session *Session) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case fileEvent, isOpen := <-session.watcher.Events:
			if !isOpen {
				return ErrSessionClosed
			}
			session.dispatch(ctx, fileEvent)
		case watchError, isOpen := <-session.watcher.Errors:
			if !isOpen {
				return ErrSessionClosed
			}
			session.logger.Warn(logMessageWatchError, zap.Error(watchError))
		}
	}
}

// Deactivate releases the subscription. It is safe to call more than once.
func (session *Session) Deactivate() error {
	session.closeOnce.Do(func() {
		session.closeError = session.watcher.Close()
	})
	return session.closeError
}

func (session *Session) dispatch(ctx context.Context, fileEvent fsnotify.Event) {
	if !fileEvent.Has(fsnotify.Write) && !fileEvent.Has(fsnotify.Create) {
		return
	}
	entryInfo, statError := os.Stat(fileEvent.Name)
	if statError != nil {
		return
	}
	if entryInfo.IsDir() {
		if fileEvent.Has(fsnotify.Create) {
			if addError := session.addDirectoryTree(fileEvent.Name); addError != nil {
				session.logger.Warn(logMessageWatchAddFailed, zap.String("path", fileEvent.Name), zap.Error(addError))
			}
		}
		return
	}
	if session.skipPath != nil && session.skipPath(fileEvent.Name) {
		session.logger.Debug(logMessageSkippedPath, zap.String("path", fileEvent.Name))
		return
	}
	session.logger.Debug(logMessageSaveDetected, zap.String("path", fileEvent.Name))
	session.handler.HandleSave(ctx, Event{Path: fileEvent.Name, Time: time.Now()})
}

func (session *Session) addDirectoryTree(directoryPath string) error {
	return filepath.WalkDir(directoryPath, func(currentPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return walkError
		}
		if !directoryEntry.IsDir() {
			return nil
		}
		if currentPath != session.rootDirectoryPath {
			if utils.IsHiddenName(directoryEntry.Name()) {
				return filepath.SkipDir
			}
			if session.skipDirectory != nil && session.skipDirectory(currentPath) {
				return filepath.SkipDir
			}
		}
		if addError := session.watcher.Add(currentPath); addError != nil {
			return fmt.Errorf(errorWatchDirectoryFormat, currentPath, addError)
		}
		return nil
	})
}
