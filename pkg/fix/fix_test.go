package fix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFix(t *testing.T) {
	t.Run("valid fix sorts its edits", func(t *testing.T) {
		f, err := NewSafe("",
			TextEdit{StartOffset: 10, EndOffset: 12, NewText: "b"},
			TextEdit{StartOffset: 0, EndOffset: 2, NewText: "a"},
		)
		require.NoError(t, err)
		assert.Equal(t, 0, f.Start())
		assert.Equal(t, Safe, f.Applicability)
	})

	t.Run("empty fix is rejected", func(t *testing.T) {
		_, err := NewSafe("")
		assert.ErrorIs(t, err, ErrEmptyFix)
	})

	t.Run("all-noop fix is rejected", func(t *testing.T) {
		_, err := NewSafe("", TextEdit{StartOffset: 3, EndOffset: 3})
		assert.ErrorIs(t, err, ErrNoEffect)
	})

	t.Run("overlapping edits within a fix are rejected", func(t *testing.T) {
		_, err := NewSafe("",
			TextEdit{StartOffset: 0, EndOffset: 5, NewText: "x"},
			TextEdit{StartOffset: 4, EndOffset: 8, NewText: "y"},
		)
		assert.ErrorIs(t, err, ErrOverlapWithinFix)
	})

	t.Run("negative range is rejected", func(t *testing.T) {
		_, err := NewSafe("", TextEdit{StartOffset: -1, EndOffset: 2, NewText: "x"})
		assert.Error(t, err)
	})

	t.Run("adjacent edits are allowed", func(t *testing.T) {
		f, err := NewSafe("",
			TextEdit{StartOffset: 0, EndOffset: 3, NewText: "x"},
			TextEdit{StartOffset: 3, EndOffset: 6, NewText: "y"},
		)
		require.NoError(t, err)
		assert.Len(t, f.Edits, 2)
	})

	t.Run("note and applicability carry through", func(t *testing.T) {
		f, err := NewUnsafe("may delete a comment", TextEdit{StartOffset: 0, EndOffset: 1})
		require.NoError(t, err)
		assert.Equal(t, Unsafe, f.Applicability)
		assert.Equal(t, "may delete a comment", f.Note)

		d, err := NewDisplayOnly("", TextEdit{StartOffset: 0, EndOffset: 1, NewText: "X"})
		require.NoError(t, err)
		assert.Equal(t, DisplayOnly, d.Applicability)
	})
}

func TestFixConflictsWith(t *testing.T) {
	mk := func(start, end int) *Fix {
		f, err := NewSafe("", TextEdit{StartOffset: start, EndOffset: end, NewText: "x"})
		require.NoError(t, err)
		return f
	}

	assert.True(t, mk(0, 5).ConflictsWith(mk(4, 8)))
	assert.True(t, mk(4, 8).ConflictsWith(mk(0, 5)))
	assert.False(t, mk(0, 5).ConflictsWith(mk(5, 8)))
	assert.False(t, mk(0, 2).ConflictsWith(mk(10, 12)))
}

func TestApplyModeAllows(t *testing.T) {
	tests := []struct {
		mode ApplyMode
		app  Applicability
		want bool
	}{
		{ApplySafeOnly, Safe, true},
		{ApplySafeOnly, Unsafe, false},
		{ApplySafeOnly, DisplayOnly, false},
		{ApplySafeAndUnsafe, Safe, true},
		{ApplySafeAndUnsafe, Unsafe, true},
		{ApplySafeAndUnsafe, DisplayOnly, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String()+"/"+tt.app.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.Allows(tt.app))
		})
	}
}
