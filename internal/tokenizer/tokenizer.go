// Package tokenizer estimates how many model tokens a rendered tree costs.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	// DefaultModel is used when no model is requested.
	DefaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

// NewCounter returns a tiktoken Counter for the requested model together with the name of the
// model or encoding actually used. Models without a known encoding use cl100k_base.
func NewCounter(model string) (Counter, string, error) {
	requestedModel := strings.TrimSpace(model)
	if requestedModel == "" {
		requestedModel = DefaultModel
	}
	lowerModel := strings.ToLower(requestedModel)

	encoding, encodingError := tiktoken.EncodingForModel(lowerModel)
	if encodingError == nil && encoding != nil {
		return openAICounter{encoding: encoding, name: lowerModel}, requestedModel, nil
	}
	fallback, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return openAICounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
}

// CountText estimates tokens for text using counter.
func CountText(counter Counter, text string) (int, error) {
	if counter == nil {
		return 0, errors.New("nil tokenizer counter")
	}
	return counter.CountString(text)
}

type openAICounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter openAICounter) Name() string {
	return counter.name
}

func (counter openAICounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}
