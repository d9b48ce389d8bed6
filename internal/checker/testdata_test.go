package checker_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/tilepaint/exprlang/internal/checker"
	"github.com/tilepaint/exprlang/internal/parser"
	"github.com/tilepaint/exprlang/internal/registry"
	"github.com/tilepaint/exprlang/internal/types"
)

// askFor overrides the type each golden case is checked against; a case
// absent from this table is checked against an unbound generic, which
// is the right default for anything whose own call-site already pins a
// concrete type (array's per-call-site length, for instance).
var askFor = map[string]types.Type{
	"plus-resolves-number":                      types.Number,
	"string-coerces-get":                        types.String,
	"boolean-literal":                           types.Boolean,
	"nested-arithmetic-mismatch":                types.Number,
	"comparison-of-mismatched-operands":         types.Boolean,
	"case-with-even-arity-is-rejected":          types.Number,
}

// TestCheckerGoldenArchive runs every paired (name.json, name.expected)
// case bundled in testdata/golden.txtar through parser+checker, the way
// a compiler test suite bundles many small cases in one file instead of
// one _test.go function per case.
func TestCheckerGoldenArchive(t *testing.T) {
	raw, err := os.ReadFile("testdata/golden.txtar")
	if err != nil {
		t.Fatalf("read golden.txtar: %v", err)
	}
	archive := txtar.Parse(raw)

	cases := map[string]struct{ json, expected string }{}
	for _, f := range archive.Files {
		name := string(f.Name)
		content := strings.TrimRight(string(f.Data), "\n")
		switch {
		case strings.HasSuffix(name, ".json"):
			stem := strings.TrimSuffix(name, ".json")
			c := cases[stem]
			c.json = content
			cases[stem] = c
		case strings.HasSuffix(name, ".expected"):
			stem := strings.TrimSuffix(name, ".expected")
			c := cases[stem]
			c.expected = content
			cases[stem] = c
		}
	}
	if len(cases) == 0 {
		t.Fatalf("no cases found in golden.txtar")
	}

	reg := registry.New(registry.Dependencies{})
	for name, c := range cases {
		name, c := name, c
		t.Run(name, func(t *testing.T) {
			if c.json == "" || c.expected == "" {
				t.Fatalf("case %s is missing its .json or .expected half", name)
			}
			var decoded interface{}
			if err := json.Unmarshal([]byte(c.json), &decoded); err != nil {
				t.Fatalf("decode %s: %v", c.json, err)
			}
			parsed, parseErrs := parser.New(reg).Parse(decoded, nil)
			if len(parseErrs) > 0 {
				if c.expected == "error" {
					return
				}
				t.Fatalf("parse(%s): %v", c.json, parseErrs)
			}

			ask, ok := askFor[name]
			if !ok {
				ask = types.NewTypeName("U")
			}
			checked, checkErrs := checker.Check(ask, parsed)
			if c.expected == "error" {
				if len(checkErrs) == 0 {
					t.Fatalf("expected a type error for %s", c.json)
				}
				return
			}
			if len(checkErrs) > 0 {
				t.Fatalf("check(%s): %v", c.json, checkErrs)
			}
			got := checked.ExprType().Name()
			if got != c.expected {
				t.Fatalf("%s: expected resolved type %q, got %q", c.json, c.expected, got)
			}
		})
	}
}
