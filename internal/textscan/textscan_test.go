package textscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBraceEnd(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		start int
		want  string
	}{
		{name: "flat", in: `x={a:1};rest`, want: `x={a:1}`},
		{name: "nested", in: `f=function(a){if(a){b()}return a};g()`, want: `f=function(a){if(a){b()}return a}`},
		{name: "start skips earlier block", in: `{1}{2{3}}`, start: 3, want: `{1}{2{3}}`},
		{name: "counts braces in strings", in: `{a="}"}}tail`, want: `{a="}"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := BraceEnd(tt.in, tt.start)
			assert.Equal(t, tt.want, tt.in[:end])
		})
	}
}

func TestBraceEnd_Unbalanced(t *testing.T) {
	assert.Equal(t, -1, BraceEnd("no braces here", 0))
	assert.Equal(t, -1, BraceEnd("{{}", 0))
	assert.Equal(t, -1, BraceEnd("{}", 5))
}

func TestBraceEnd_BalancedResult(t *testing.T) {
	in := `var Xy=function(a){a=a.split("");Ab.cd(a,3);{{}}return a.join("")};var z=1;`
	end := BraceEnd(in, 0)
	if !assert.Positive(t, end) {
		return
	}
	body := in[:end]
	depth := 0
	for _, c := range body {
		switch c {
		case '{':
			depth++
		case '}':
			depth--
		}
		assert.GreaterOrEqual(t, depth, 0)
	}
	assert.Equal(t, 0, depth)
	assert.Equal(t, byte('}'), body[len(body)-1])
}

func TestJSONObjectEnd(t *testing.T) {
	in := `{"title":"a } b {","n":{"x":"\"}"}};var next={}`
	end := JSONObjectEnd(in, 0)
	assert.Equal(t, `{"title":"a } b {","n":{"x":"\"}"}}`, in[:end])

	assert.Equal(t, -1, JSONObjectEnd(`{"open":"}`, 0))
	assert.Equal(t, -1, JSONObjectEnd(`plain`, 0))
}

func TestBlock(t *testing.T) {
	got, ok := Block(`var a=1;Ab={x:function(a){a.reverse()}};`, 4)
	assert.True(t, ok)
	assert.Equal(t, `{x:function(a){a.reverse()}}`, got)

	_, ok = Block(`{`, 0)
	assert.False(t, ok)
}
