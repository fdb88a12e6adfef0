package enhancer

import (
	"context"
	"errors"
)

var ErrEmptyResult = errors.New("enhancer returned empty result")

// Enhancer rewrites a story draft into a polished narrative. The original
// content is never modified; callers decide what to do with the result.
type Enhancer interface {
	Enhance(ctx context.Context, title, content string) (string, error)
}
