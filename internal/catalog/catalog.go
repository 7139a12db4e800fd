// Package catalog holds the code templates and name pools typed by the simulator.
package catalog

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml
var embedded []byte

// LangAll selects templates of every language.
const LangAll = "all"

var tokenPattern = regexp.MustCompile(`\{\{([a-z][a-z0-9_]*)\}\}`)

// Template is a code snippet with named placeholders.
type Template struct {
	Name         string            `toml:"name"`
	Lang         string            `toml:"lang"`
	Body         string            `toml:"body"`
	Placeholders map[string]string `toml:"placeholders"`
}

// Catalog is a validated set of templates and the pools their placeholders draw from.
type Catalog struct {
	Pools     map[string][]string `toml:"pools"`
	Templates []Template          `toml:"templates"`
}

// Load returns the catalog compiled into the binary.
func Load() (*Catalog, error) {
	return Parse(embedded)
}

// Parse decodes and validates a TOML catalog.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if _, err := toml.Decode(string(data), &cat); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks that every template is fully resolvable.
func (c *Catalog) Validate() error {
	if len(c.Templates) == 0 {
		return fmt.Errorf("catalog has no templates")
	}
	for name, values := range c.Pools {
		if len(values) == 0 {
			return fmt.Errorf("pool %q is empty", name)
		}
		for _, v := range values {
			if !validValue(v) {
				return fmt.Errorf("pool %q: invalid value %q", name, v)
			}
		}
	}
	for i, tpl := range c.Templates {
		label := tpl.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		if strings.TrimSpace(tpl.Body) == "" {
			return fmt.Errorf("template %s: body is empty", label)
		}
		if rest := tokenPattern.ReplaceAllString(tpl.Body, ""); strings.Contains(rest, "{{") || strings.Contains(rest, "}}") {
			return fmt.Errorf("template %s: malformed placeholder; names must match %s", label, tokenPattern.String())
		}
		used := map[string]struct{}{}
		for _, tok := range Tokens(tpl.Body) {
			used[tok] = struct{}{}
			if _, ok := tpl.Placeholders[tok]; !ok {
				return fmt.Errorf("template %s: placeholder %q is not declared", label, tok)
			}
		}
		for tok, pool := range tpl.Placeholders {
			if _, ok := used[tok]; !ok {
				return fmt.Errorf("template %s: placeholder %q is declared but unused", label, tok)
			}
			if _, ok := c.Pools[pool]; !ok {
				return fmt.Errorf("template %s: placeholder %q references unknown pool %q", label, tok, pool)
			}
		}
	}
	return nil
}

// Filter returns a catalog restricted to templates of lang. An empty lang or
// LangAll keeps everything.
func (c *Catalog) Filter(lang string) (*Catalog, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" || lang == LangAll {
		return c, nil
	}
	out := &Catalog{Pools: c.Pools}
	for _, tpl := range c.Templates {
		if strings.EqualFold(tpl.Lang, lang) {
			out.Templates = append(out.Templates, tpl)
		}
	}
	if len(out.Templates) == 0 {
		return nil, fmt.Errorf("no templates for language %q (available: %s)", lang, strings.Join(c.Langs(), ", "))
	}
	return out, nil
}

// Langs lists the distinct template languages in sorted order.
func (c *Catalog) Langs() []string {
	seen := map[string]struct{}{}
	for _, tpl := range c.Templates {
		seen[strings.ToLower(tpl.Lang)] = struct{}{}
	}
	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Tokens returns the distinct placeholder names in body, in order of first use.
func Tokens(body string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, m := range tokenPattern.FindAllStringSubmatch(body, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}
	return out
}

// Token renders a placeholder name as it appears in a body.
func Token(name string) string {
	return "{{" + name + "}}"
}

func validValue(v string) bool {
	if strings.TrimSpace(v) == "" {
		return false
	}
	return !strings.Contains(v, "{{") && !strings.Contains(v, "}}")
}
