package jsengine

import (
	"time"

	"github.com/dop251/goja"

	"github.com/ytget/ytextract/youtube/cipher"
)

// Goja evaluates scripts with github.com/dop251/goja.
type Goja struct {
	// MaxRuntime interrupts a runaway evaluation; zero disables the cap.
	MaxRuntime time.Duration
}

// Submit implements cipher.Evaluator.
func (g *Goja) Submit(script string, cb cipher.Callback) {
	go g.run(script, cb)
}

func (g *Goja) run(script string, cb cipher.Callback) {
	vm := goja.New()
	if g.MaxRuntime > 0 {
		timer := time.AfterFunc(g.MaxRuntime, func() {
			vm.Interrupt("evaluation exceeded " + g.MaxRuntime.String())
		})
		defer timer.Stop()
	}

	v, err := vm.RunString(script)
	if err != nil {
		cb.Error(err.Error())
		return
	}
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		cb.Error("script returned no value")
		return
	}
	cb.Result(v.String())
}
