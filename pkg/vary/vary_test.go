package vary_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"echoes/pkg/vary"
)

func TestVaryDeterministic(t *testing.T) {
	t.Parallel()

	a := vary.Vary("the void listens", 42)
	b := vary.Vary("the void listens", 42)

	require.Equal(t, a, b)
}

func TestVarySeedsSpread(t *testing.T) {
	t.Parallel()

	outputs := map[string]bool{}
	for seed := int64(0); seed < 20; seed++ {
		outputs[vary.Vary("the void listens", seed)] = true
	}

	require.Greater(t, len(outputs), 1)
}

func TestVaryBoundedGrowth(t *testing.T) {
	t.Parallel()

	text := "a quiet thought drifting nowhere"
	for seed := int64(0); seed < 50; seed++ {
		out := vary.Vary(text, seed)
		require.LessOrEqual(t, utf8.RuneCountInString(out), utf8.RuneCountInString(text)+3)
		require.NotEmpty(t, out)
	}
}

func TestVaryPunctuationOnly(t *testing.T) {
	t.Parallel()

	require.Equal(t, "...", vary.Vary("...", 1))
}
