package jsengine

import (
	"errors"
	"fmt"
	"time"

	"github.com/robertkrimen/otto"

	"github.com/ytget/ytextract/youtube/cipher"
)

var errHalt = errors.New("evaluation halted")

// Otto evaluates scripts with github.com/robertkrimen/otto.
type Otto struct {
	// MaxRuntime interrupts a runaway evaluation; zero disables the cap.
	MaxRuntime time.Duration
}

// Submit implements cipher.Evaluator.
func (o *Otto) Submit(script string, cb cipher.Callback) {
	go o.run(script, cb)
}

func (o *Otto) run(script string, cb cipher.Callback) {
	vm := otto.New()
	if o.MaxRuntime > 0 {
		vm.Interrupt = make(chan func(), 1)
		timer := time.AfterFunc(o.MaxRuntime, func() {
			vm.Interrupt <- func() { panic(errHalt) }
		})
		defer timer.Stop()
	}
	defer func() {
		if caught := recover(); caught != nil {
			if caught == errHalt {
				cb.Error(fmt.Sprintf("evaluation exceeded %s", o.MaxRuntime))
				return
			}
			cb.Error(fmt.Sprint(caught))
		}
	}()

	v, err := vm.Run(script)
	if err != nil {
		cb.Error(err.Error())
		return
	}
	if v.IsUndefined() || v.IsNull() {
		cb.Error("script returned no value")
		return
	}
	s, err := v.ToString()
	if err != nil {
		cb.Error(err.Error())
		return
	}
	cb.Result(s)
}
