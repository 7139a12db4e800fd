package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalogIsValid(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust"}, cat.Langs())

	for _, lang := range []string{"go", "rust"} {
		sub, err := cat.Filter(lang)
		require.NoError(t, err)
		assert.NotEmpty(t, sub.Templates)
		for _, tpl := range sub.Templates {
			assert.Equal(t, lang, tpl.Lang)
		}
	}
	all, err := cat.Filter("all")
	require.NoError(t, err)
	assert.Len(t, all.Templates, len(cat.Templates))
}

func TestFilterUnknownLang(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)
	_, err = cat.Filter("cobol")
	require.ErrorContains(t, err, "no templates")
}

func TestTokens(t *testing.T) {
	body := "fn {{fn_name}}() { let {{var}} = 1; {{var}} } // {}"
	assert.Equal(t, []string{"fn_name", "var"}, Tokens(body))
	assert.Empty(t, Tokens("func main() {}"))
	assert.Equal(t, "{{x}}", Token("x"))
}

func TestParseRejectsBrokenCatalogs(t *testing.T) {
	cases := map[string]string{
		"no templates": `[pools]
names = ["a"]`,
		"undeclared": `[pools]
names = ["a"]
[[templates]]
name = "t"
body = "{{x}} {{y}}"
[templates.placeholders]
x = "names"`,
		"unused": `[pools]
names = ["a"]
[[templates]]
name = "t"
body = "{{x}}"
[templates.placeholders]
x = "names"
y = "names"`,
		"unknown pool": `[[templates]]
name = "t"
body = "{{x}}"
[templates.placeholders]
x = "missing"`,
		"empty pool": `[pools]
names = []
[[templates]]
name = "t"
body = "plain"`,
		"brace value": `[pools]
names = ["{{x}}"]
[[templates]]
name = "t"
body = "{{x}}"
[templates.placeholders]
x = "names"`,
		"bad toml": `[[templates`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestParseRejectsMalformedPlaceholders(t *testing.T) {
	for _, body := range []string{
		"func {{name}}() { {{Name}} }",
		"func {{name}}() { {{ name }} }",
		"func {{name}}() { {{name }",
		"func {{name}}() { name}} }",
	} {
		doc := "[pools]\nnames = [\"a\"]\n[[templates]]\nname = \"t\"\nbody = '''" + body + "'''\n[templates.placeholders]\nname = \"names\""
		_, err := Parse([]byte(doc))
		require.ErrorContains(t, err, "malformed placeholder", body)
	}
}

func TestParseAllowsBracesAroundPlaceholders(t *testing.T) {
	doc := "[pools]\nnames = [\"a\"]\n[[templates]]\nname = \"t\"\nbody = '''let s = S{{{name}}};'''\n[templates.placeholders]\nname = \"names\""
	cat, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, Tokens(cat.Templates[0].Body))
}
