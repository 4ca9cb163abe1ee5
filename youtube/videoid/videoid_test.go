package videoid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytextract/errs"
)

func TestResolve_SameVideo(t *testing.T) {
	inputs := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
		"http://m.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtube.com/watch?v=dQw4w9WgXcQ#comments",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtu.be/dQw4w9WgXcQ?si=share",
		"check https://youtu.be/dQw4w9WgXcQ out",
		"dQw4w9WgXcQ",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			id, err := Resolve(in)
			require.NoError(t, err)
			assert.Equal(t, ID("dQw4w9WgXcQ"), id)
		})
	}
}

func TestResolve_Invalid(t *testing.T) {
	for _, in := range []string{"", " ", "two words", "tab\tseparated", "trailing\n"} {
		_, err := Resolve(in)
		assert.True(t, errors.Is(err, errs.ErrInvalidInput), "input %q: %v", in, err)
	}
}

func TestID_WatchURL(t *testing.T) {
	id := ID("dQw4w9WgXcQ")
	assert.Equal(t, "https://youtube.com/watch?v=dQw4w9WgXcQ", id.WatchURL("https://youtube.com"))
	assert.Equal(t, "dQw4w9WgXcQ", id.String())
}
