package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/bytesurge/internal/catalog"
	"github.com/verte-zerg/bytesurge/internal/rng"
)

func TestNextResolvesEveryPlaceholder(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)
	gen := New(cat, rng.NewSeeded(21))

	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		block := gen.Next()
		seen[block.Template] = true
		assert.NotContains(t, block.Text, "{{")
		assert.NotContains(t, block.Text, "}}")
		for name := range block.Values {
			assert.NotContains(t, block.Text, catalog.Token(name))
		}
	}
	assert.Len(t, seen, len(cat.Templates), "every template is eventually chosen")
}

func TestNextRepeatedTokenSharesValue(t *testing.T) {
	cat, err := catalog.Parse([]byte(`[pools]
names = ["alpha", "beta", "gamma"]
[[templates]]
name = "repeat"
lang = "go"
body = "{{a}}-{{a}}-{{a}}"
[templates.placeholders]
a = "names"`))
	require.NoError(t, err)
	gen := New(cat, rng.NewSeeded(2))
	for i := 0; i < 50; i++ {
		parts := strings.Split(gen.Next().Text, "-")
		require.Len(t, parts, 3)
		assert.Equal(t, parts[0], parts[1])
		assert.Equal(t, parts[1], parts[2])
	}
}

func TestNextIsReproducibleWithSeed(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)
	a := New(cat, rng.NewSeeded(77))
	b := New(cat, rng.NewSeeded(77))
	for i := 0; i < 20; i++ {
		require.Equal(t, a.Next(), b.Next())
	}
}

func TestSubstitute(t *testing.T) {
	got := Substitute("fn {{f}}({{p}}) { {{p}} }", map[string]string{"f": "run", "p": "x"})
	assert.Equal(t, "fn run(x) { x }", got)
}
