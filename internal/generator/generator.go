// Package generator builds concrete code blocks from catalog templates.
package generator

import (
	"sort"
	"strings"

	"github.com/verte-zerg/bytesurge/internal/catalog"
	"github.com/verte-zerg/bytesurge/internal/rng"
)

// Block is one fully substituted template instance.
type Block struct {
	Template string
	Lang     string
	Text     string
	Values   map[string]string
}

// Generator produces randomized code blocks.
type Generator struct {
	cat *catalog.Catalog
	src rng.Source
}

// New returns a Generator over a validated catalog.
func New(cat *catalog.Catalog, src rng.Source) *Generator {
	return &Generator{cat: cat, src: src}
}

// Next selects a template uniformly and resolves each of its placeholders
// with a uniform pick from the placeholder's pool. Repeated tokens share one
// value.
func (g *Generator) Next() Block {
	tpl := rng.Choose(g.src, g.cat.Templates)
	values := make(map[string]string, len(tpl.Placeholders))
	for _, name := range sortedKeys(tpl.Placeholders) {
		values[name] = rng.Choose(g.src, g.cat.Pools[tpl.Placeholders[name]])
	}
	return Block{
		Template: tpl.Name,
		Lang:     tpl.Lang,
		Text:     Substitute(tpl.Body, values),
		Values:   values,
	}
}

// Substitute replaces every {{name}} in body whose name is in values.
func Substitute(body string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for _, name := range sortedKeys(values) {
		pairs = append(pairs, catalog.Token(name), values[name])
	}
	return strings.NewReplacer(pairs...).Replace(body)
}

// Sorted so seeded runs draw values in a stable order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
