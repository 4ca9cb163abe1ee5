package cipher

import (
	"strings"
	"sync"
	"time"

	"github.com/ytget/ytextract/errs"
	"github.com/ytget/ytextract/internal/logger"
)

// DefaultEvalTimeout bounds the wait for an evaluator callback.
const DefaultEvalTimeout = 7 * time.Second

// Callback receives the outcome of one evaluation. Only the first call
// counts; later ones are ignored.
type Callback interface {
	Result(value string)
	Error(message string)
}

// Evaluator runs script text and reports the value of its last expression
// through cb. Submit may do the work inline or hand it off, and may call cb
// from any goroutine.
type Evaluator interface {
	Submit(script string, cb Callback)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(script string, cb Callback)

// Submit calls f(script, cb).
func (f EvaluatorFunc) Submit(script string, cb Callback) { f(script, cb) }

var jsStringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// Invocation appends to p's script a call of the entry function for every
// signature, joined by newlines, so one evaluation answers all of them.
func Invocation(p *Profile, signatures []string) string {
	var b strings.Builder
	b.WriteString(p.Script)
	b.WriteString(" function decipher(){return ")
	for i, sig := range signatures {
		if i > 0 {
			b.WriteString(`+"\n"+`)
		}
		b.WriteString(p.FunctionName)
		b.WriteString("('")
		b.WriteString(jsStringEscaper.Replace(sig))
		b.WriteString("')")
	}
	b.WriteString("};decipher();")
	return b.String()
}

// Bridge submits scripts to an Evaluator and waits for a single outcome.
type Bridge struct {
	Evaluator Evaluator
	// Timeout defaults to DefaultEvalTimeout.
	Timeout time.Duration
}

// Evaluate submits script and returns the first of result, error callback or
// timeout. The timer and the pending callback are released on every path.
func (b *Bridge) Evaluate(script string) (string, error) {
	log := logger.WithComponent(logger.ComponentBridge)
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultEvalTimeout
	}

	fut := newOneshot()
	defer fut.close()
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	start := time.Now()
	// Submit runs on its own goroutine so an evaluator that works inline
	// cannot hold the wait past the timeout.
	go b.Evaluator.Submit(script, fut)

	select {
	case out := <-fut.ch:
		if out.err != nil {
			log.Debug("evaluation failed", map[string]interface{}{"error": out.err.Error(), "elapsed": time.Since(start).String()})
			return "", out.err
		}
		log.Debug("evaluation completed", map[string]interface{}{"bytes": len(out.value), "elapsed": time.Since(start).String()})
		return out.value, nil
	case <-timer.C:
		log.Warn("evaluation timed out", map[string]interface{}{"timeout": timeout.String()})
		return "", errs.New(errs.CodeDecipherTimeout, "no evaluator callback", timeout.String())
	}
}

type outcome struct {
	value string
	err   error
}

// oneshot is a single-fulfillment future. The channel is buffered so a late
// callback never blocks the evaluator.
type oneshot struct {
	once sync.Once
	ch   chan outcome
}

func newOneshot() *oneshot {
	return &oneshot{ch: make(chan outcome, 1)}
}

func (o *oneshot) Result(value string) {
	o.fire(outcome{value: value})
}

func (o *oneshot) Error(message string) {
	o.fire(outcome{err: errs.New(errs.CodeDecipherCallback, "evaluator reported an error", message)})
}

func (o *oneshot) fire(out outcome) {
	o.once.Do(func() { o.ch <- out })
}

// close makes every later callback a no-op.
func (o *oneshot) close() {
	o.once.Do(func() {})
}
