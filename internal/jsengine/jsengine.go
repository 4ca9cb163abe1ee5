// Package jsengine provides script evaluators backed by embedded JavaScript
// interpreters. Both engines run each submission on a fresh runtime in its
// own goroutine and report through the callback exactly once.
package jsengine

import (
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytextract/youtube/cipher"
)

// Engine names accepted by New.
const (
	EngineGoja = "goja"
	EngineOtto = "otto"
)

// New returns the evaluator registered under name. An empty name selects goja.
// maxRuntime caps each evaluation; zero means no cap.
func New(name string, maxRuntime time.Duration) (cipher.Evaluator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineGoja:
		return &Goja{MaxRuntime: maxRuntime}, nil
	case EngineOtto:
		return &Otto{MaxRuntime: maxRuntime}, nil
	}
	return nil, fmt.Errorf("unknown script engine %q", name)
}
