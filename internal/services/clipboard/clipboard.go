// Package clipboard copies rendered trees to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported reports a platform without a usable clipboard utility.
var ErrUnsupported = errors.New("system clipboard is not available")

// Copier copies textual data to a clipboard.
type Copier interface {
	Copy(text string) error
}

// SystemCopier writes to the system clipboard through github.com/atotto/clipboard.
type SystemCopier struct{}

// NewSystemCopier constructs a SystemCopier.
func NewSystemCopier() *SystemCopier {
	return &SystemCopier{}
}

// Copy writes text to the system clipboard.
func (copier *SystemCopier) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

var _ Copier = (*SystemCopier)(nil)
