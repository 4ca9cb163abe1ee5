package cipher

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ytget/ytextract/errs"
)

func TestInvocation(t *testing.T) {
	p := &Profile{AssetName: assetPath, FunctionName: "Ty", Script: "var Ty=function(a){return a};"}

	got := Invocation(p, []string{"s1", "s2", "s3"})
	want := `var Ty=function(a){return a}; function decipher(){return Ty('s1')+"\n"+Ty('s2')+"\n"+Ty('s3')};decipher();`
	assert.Equal(t, want, got)

	assert.Equal(t, `var Ty=function(a){return a}; function decipher(){return Ty('it\'s\\x')};decipher();`,
		Invocation(p, []string{`it's\x`}))

	// Line breaks inside a signature stay inside the string literal.
	assert.Equal(t, `var Ty=function(a){return a}; function decipher(){return Ty('a\nb\rc')+"\n"+Ty('d')};decipher();`,
		Invocation(p, []string{"a\nb\rc", "d"}))
}

func TestBridge_Result(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var submitted string
	b := &Bridge{Evaluator: EvaluatorFunc(func(script string, cb Callback) {
		submitted = script
		go cb.Result("sigA\nsigB")
	})}
	got, err := b.Evaluate("script")
	require.NoError(t, err)
	assert.Equal(t, "sigA\nsigB", got)
	assert.Equal(t, "script", submitted)
}

func TestBridge_SynchronousCallback(t *testing.T) {
	b := &Bridge{Evaluator: EvaluatorFunc(func(_ string, cb Callback) {
		cb.Result("first")
		cb.Error("ignored")
		cb.Result("ignored")
	})}
	got, err := b.Evaluate("script")
	require.NoError(t, err)
	assert.Equal(t, "first", got)
}

func TestBridge_ErrorCallback(t *testing.T) {
	b := &Bridge{Evaluator: EvaluatorFunc(func(_ string, cb Callback) {
		go cb.Error("ReferenceError: Ty is not defined")
	})}
	_, err := b.Evaluate("script")
	require.True(t, errors.Is(err, errs.ErrDecipherCallback), "got %v", err)
	assert.Contains(t, err.Error(), "ReferenceError")
}

func TestBridge_Timeout(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var (
		mu sync.Mutex
		cb Callback
	)
	b := &Bridge{
		Evaluator: EvaluatorFunc(func(_ string, c Callback) {
			mu.Lock()
			cb = c
			mu.Unlock()
		}),
		Timeout: 80 * time.Millisecond,
	}

	start := time.Now()
	_, err := b.Evaluate("script")
	elapsed := time.Since(start)

	require.True(t, errors.Is(err, errs.ErrDecipherTimeout), "got %v", err)
	assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond)
	assert.Less(t, elapsed, 2*time.Second)

	// A late callback must neither block nor panic.
	mu.Lock()
	late := cb
	mu.Unlock()
	require.NotNil(t, late)
	done := make(chan struct{})
	go func() {
		late.Result("too late")
		late.Error("too late")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("late callback blocked")
	}
}

func TestBridge_InlineEvaluatorTimesOut(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	var finished chan struct{}
	b := &Bridge{
		Evaluator: EvaluatorFunc(func(_ string, cb Callback) {
			done := finished
			defer close(done)
			time.Sleep(60 * time.Millisecond)
			cb.Result("sig")
		}),
		Timeout: 20 * time.Millisecond,
	}

	for i := 0; i < 5; i++ {
		finished = make(chan struct{})
		start := time.Now()
		_, err := b.Evaluate("script")
		elapsed := time.Since(start)

		require.True(t, errors.Is(err, errs.ErrDecipherTimeout), "run %d: got %v", i, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "run %d", i)
		<-finished
	}
}

func TestBridge_DefaultTimeout(t *testing.T) {
	assert.Equal(t, 7*time.Second, DefaultEvalTimeout)
}
