// Command exprlint compiles style expressions from a JSON file and
// reports either their type errors or their evaluated value against a
// small set of sample (zoom, feature) pairs. Argument parsing is plain
// os.Args inspection; no flag package.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/tilepaint/exprlang/internal/cache"
	"github.com/tilepaint/exprlang/internal/config"
	"github.com/tilepaint/exprlang/internal/runtime"
	"github.com/tilepaint/exprlang/pkg/style"
)

// memoCapacity bounds the per-expression LRU exprlint wraps each
// compiled expression's Value in before evaluating it against samples.
const memoCapacity = 128

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-fixture <path>] <expression.json>\n", os.Args[0])
}

func main() {
	args := os.Args[1:]
	var fixturePath, exprPath string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-fixture", "--fixture":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "exprlint: -fixture requires a path")
				os.Exit(1)
			}
			fixturePath = args[i+1]
			i++
		case "-help", "--help", "help":
			usage()
			return
		default:
			if strings.HasPrefix(args[i], "-") {
				fmt.Fprintf(os.Stderr, "exprlint: unknown flag %s\n", args[i])
				os.Exit(1)
			}
			exprPath = args[i]
		}
	}

	if exprPath == "" {
		usage()
		os.Exit(1)
	}

	samples := defaultSamples()
	if fixturePath != "" {
		loaded, err := loadFixtures(fixturePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "exprlint: %s\n", err)
			os.Exit(1)
		}
		samples = loaded
	}

	files, err := expressionFiles(exprPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "exprlint: %s\n", err)
		os.Exit(1)
	}

	var exprs []interface{}
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "exprlint: %s\n", err)
			os.Exit(1)
		}
		fileExprs, err := decodeExpressions(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "exprlint: %s: %s\n", f, err)
			os.Exit(1)
		}
		exprs = append(exprs, fileExprs...)
	}

	engine := style.NewEngine(style.Dependencies{})
	exitCode := 0
	colorOK := isatty.IsTerminal(os.Stdout.Fd())

	for i, expr := range exprs {
		result := engine.Compile(expr, style.AnyValue())
		if len(result.Errors) > 0 {
			for _, e := range result.Errors {
				fmt.Fprintf(os.Stderr, "%d.%s: %s\n", i, e.Key, e.Message)
			}
			exitCode = 1
			continue
		}
		call := cache.Memoize(result.Value, result.IsFeatureConstant, result.IsZoomConstant, memoCapacity)
		for _, sample := range samples {
			v, err := call(sample.Zoom, sample.Feature)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%d [%s]: %s\n", i, sample.Name, err)
				exitCode = 1
				continue
			}
			printValue(sample.Name, v, colorOK)
		}
	}
	os.Exit(exitCode)
}

// expressionFiles resolves path to the list of source files to read: the
// path itself when it names a file, or every file under it matching
// config.SourceFileExtensions when it names a directory.
func expressionFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		for _, ext := range config.SourceFileExtensions {
			if strings.HasSuffix(p, ext) {
				files = append(files, p)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no expression files found under %s", path)
	}
	return files, nil
}

func decodeExpressions(raw []byte) ([]interface{}, error) {
	var asArray []interface{}
	if err := json.Unmarshal(raw, &asArray); err == nil {
		if len(asArray) > 0 {
			if _, isOp := asArray[0].(string); isOp {
				return []interface{}{[]interface{}(asArray)}, nil
			}
		}
		return asArray, nil
	}
	var single interface{}
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("decode %s", err)
	}
	return []interface{}{single}, nil
}

type sample struct {
	Name    string
	Zoom    float64
	Feature runtime.Feature
}

// defaultSamples gives every bundled feature a stable synthetic id (so
// get/has-heavy expressions exercise cache.Memoize's per-feature keying
// the same way a real tile-serving caller's feature ids would).
func defaultSamples() []sample {
	return []sample{
		{Name: "z0-empty", Zoom: 0, Feature: runtime.Feature{
			Properties: map[string]interface{}{},
			ID:         uuid.NewString(), HasID: true,
		}},
		{Name: "z10-named", Zoom: 10, Feature: runtime.Feature{
			Properties: map[string]interface{}{"name": "example"},
			ID:         uuid.NewString(), HasID: true,
		}},
	}
}

type fixtureFile struct {
	Samples []struct {
		Name       string                 `yaml:"name"`
		Zoom       float64                `yaml:"zoom"`
		Properties map[string]interface{} `yaml:"properties"`
	} `yaml:"samples"`
}

func loadFixtures(path string) ([]sample, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fixtureFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	out := make([]sample, len(f.Samples))
	for i, s := range f.Samples {
		out[i] = sample{Name: s.Name, Zoom: s.Zoom, Feature: runtime.Feature{Properties: s.Properties}}
	}
	return out, nil
}

// printValue prints a color result as an ANSI swatch when stdout is a
// terminal; everything else prints as plain JSON.
func printValue(label string, v interface{}, colorOK bool) {
	if rgba, ok := v.([4]float64); ok && colorOK {
		r, g, b := int(rgba[0]), int(rgba[1]), int(rgba[2])
		fmt.Printf("%s: \x1b[48;2;%d;%d;%dm  \x1b[0m rgba(%v)\n", label, r, g, b, rgba)
		return
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		fmt.Printf("%s: %v\n", label, v)
		return
	}
	fmt.Printf("%s: %s\n", label, encoded)
}
