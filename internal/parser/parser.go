// Package parser turns a JSON-decoded style expression tree
// (interface{} as produced by encoding/json) into the untyped AST the
// checker resolves. It never infers types — it only attaches each
// call's declaration-site signature from the registry, verbatim, the
// way the teacher's own parser attaches a bare AST shape and leaves
// semantic resolution to a later pipeline stage.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tilepaint/exprlang/internal/ast"
	"github.com/tilepaint/exprlang/internal/registry"
	"github.com/tilepaint/exprlang/internal/types"
)

// ParseError is one localized parse failure: key is the dot-joined JSON
// path to the offending node, error is a human-readable message.
type ParseError struct {
	Key   string
	Error string
}

func (e *ParseError) String() string { return fmt.Sprintf("%s: %s", e.Key, e.Error) }

// Parser walks a decoded JSON value against a Registry, producing AST
// nodes with declaration-site types attached.
type Parser struct {
	registry *registry.Registry
}

func New(reg *registry.Registry) *Parser {
	return &Parser{registry: reg}
}

// Parse is the parser's contract: parse(json, path) -> Expression |
// ParseError, generalized to collect every error found anywhere in the
// tree rather than aborting at the first one, per spec §7's "compiles
// aborts only after gathering". A nil Expression return is only valid
// together with a non-empty error list.
func (p *Parser) Parse(value interface{}, path []int) (ast.Expression, []*ParseError) {
	key := joinPath(path)
	switch v := value.(type) {
	case nil:
		return &ast.Literal{Value: nil, Type: types.Null, Key: key}, nil
	case bool:
		return &ast.Literal{Value: v, Type: types.Boolean, Key: key}, nil
	case float64:
		return &ast.Literal{Value: v, Type: types.Number, Key: key}, nil
	case string:
		return &ast.Literal{Value: v, Type: types.String, Key: key}, nil
	case []interface{}:
		return p.parseCall(v, path, key)
	default:
		return nil, []*ParseError{{Key: key, Error: fmt.Sprintf("Unsupported JSON value of Go type %T", value)}}
	}
}

func (p *Parser) parseCall(arr []interface{}, path []int, key string) (ast.Expression, []*ParseError) {
	if len(arr) == 0 {
		return nil, []*ParseError{{Key: key + ".0", Error: "Expected an operator string, but found an empty array."}}
	}
	op, ok := arr[0].(string)
	if !ok {
		return nil, []*ParseError{{Key: key + ".0", Error: fmt.Sprintf("Expected a string operator, but found %T instead.", arr[0])}}
	}

	if op == "match" {
		return p.parseMatch(arr, path, key)
	}

	def, ok := p.registry.Lookup(op)
	if !ok {
		return nil, []*ParseError{{Key: key, Error: fmt.Sprintf("Unknown function %s", op)}}
	}

	sig := def.Type
	if op == "array" {
		sig = arraySignature(len(arr) - 1)
	}

	var errs []*ParseError
	args := make([]ast.Expression, 0, len(arr)-1)
	for i := 1; i < len(arr); i++ {
		childPath := append(append([]int{}, path...), i)
		arg, argErrs := p.Parse(arr[i], childPath)
		errs = append(errs, argErrs...)
		if arg != nil {
			args = append(args, arg)
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return &ast.Call{Name: op, Type: sig, Arguments: args, Key: key}, nil
}

// arraySignature is the per-call-site override spec §4.2 describes for
// the "array" operator: its declared result length matches the actual
// argument count, not the registry's generic placeholder.
func arraySignature(n int) types.Lambda {
	return types.Lambda{
		Result: types.Array{Item: types.NewTypeName("T"), N: n},
		Params: []types.Type{types.NArgs{Types: []types.Type{types.NewTypeName("T")}, N: n}},
	}
}

// parseMatch implements spec §4.2's dedicated match form:
// ["match", input, label_1, out_1, ..., label_n, out_n, otherwise].
// Labels are parsed into matchInputs groups, never into positional
// arguments.
func (p *Parser) parseMatch(arr []interface{}, path []int, key string) (ast.Expression, []*ParseError) {
	if len(arr) < 4 {
		return nil, []*ParseError{{Key: key, Error: "Expected at least 3 arguments, but found fewer."}}
	}
	// Valid forms are ["match", input, label, out, ..., otherwise]: 1 (op)
	// + 1 (input) + 2k (label/out pairs) + 1 (otherwise) = an odd total.
	if len(arr)%2 == 0 {
		return nil, []*ParseError{{Key: key, Error: "Expected an odd number of arguments."}}
	}

	def, ok := p.registry.Lookup("match")
	if !ok {
		return nil, []*ParseError{{Key: key, Error: "Unknown function match"}}
	}

	var errs []*ParseError

	inputPath := append(append([]int{}, path...), 1)
	input, inputErrs := p.Parse(arr[1], inputPath)
	errs = append(errs, inputErrs...)

	args := make([]ast.Expression, 0, (len(arr)-2)/2+1)
	if input != nil {
		args = append(args, input)
	}
	var matchInputs [][]*ast.Literal

	// arr[2 : len(arr)-1] alternates label, output; arr[len(arr)-1] is
	// the mandatory otherwise clause.
	i := 2
	for i+1 < len(arr) {
		labelIdx := i
		outIdx := i + 1
		group, groupErrs := p.parseMatchLabels(arr[labelIdx], append(append([]int{}, path...), labelIdx))
		errs = append(errs, groupErrs...)

		outPath := append(append([]int{}, path...), outIdx)
		out, outErrs := p.Parse(arr[outIdx], outPath)
		errs = append(errs, outErrs...)

		if out != nil {
			args = append(args, out)
		}
		if group != nil {
			matchInputs = append(matchInputs, group)
		}
		i += 2
	}

	otherwisePath := append(append([]int{}, path...), len(arr)-1)
	otherwise, otherErrs := p.Parse(arr[len(arr)-1], otherwisePath)
	errs = append(errs, otherErrs...)
	if otherwise != nil {
		args = append(args, otherwise)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &ast.Call{Name: "match", Type: def.Type, Arguments: args, Key: key, MatchInputs: matchInputs}, nil
}

// parseMatchLabels parses one match label, which is either a bare
// literal or a JSON array of literals (the "input group"). Every
// element must resolve to a Literal.
func (p *Parser) parseMatchLabels(value interface{}, path []int) ([]*ast.Literal, []*ParseError) {
	key := joinPath(path)
	items, isGroup := value.([]interface{})
	if !isGroup {
		items = []interface{}{value}
	}
	if len(items) == 0 {
		return nil, []*ParseError{{Key: key, Error: "Match group must contain at least one value."}}
	}

	// An array whose first element names a registered function parses
	// exactly like an ordinary call under §4.2's rule. Resolve it that
	// way and reject anything that isn't a literal, rather than quietly
	// reinterpreting the op name as a string label.
	if isGroup {
		if opName, ok := items[0].(string); ok {
			if _, isFunc := p.registry.Lookup(opName); isFunc {
				parsed, errs := p.Parse(value, path)
				if len(errs) > 0 {
					return nil, errs
				}
				lit, ok := parsed.(*ast.Literal)
				if !ok {
					return nil, []*ParseError{{Key: key, Error: "Match inputs must be literal primitive values or arrays of literal primitive values."}}
				}
				return []*ast.Literal{lit}, nil
			}
		}
	}

	group := make([]*ast.Literal, 0, len(items))
	var errs []*ParseError
	for idx, item := range items {
		itemPath := path
		if isGroup {
			itemPath = append(append([]int{}, path...), idx)
		}
		itemKey := joinPath(itemPath)
		switch v := item.(type) {
		case nil:
			group = append(group, &ast.Literal{Value: nil, Type: types.Null, Key: itemKey})
		case bool:
			group = append(group, &ast.Literal{Value: v, Type: types.Boolean, Key: itemKey})
		case float64:
			group = append(group, &ast.Literal{Value: v, Type: types.Number, Key: itemKey})
		case string:
			group = append(group, &ast.Literal{Value: v, Type: types.String, Key: itemKey})
		default:
			errs = append(errs, &ParseError{Key: itemKey, Error: "Match inputs must be literal primitive values or arrays of literal primitive values."})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return group, nil
}

// joinPath renders a path as spec §3.2's dot-joined key ("2.1.0"). The
// empty (root) path renders as "root" rather than "" so every
// ParseError still carries a non-empty key, per spec §8's parse-total
// invariant.
func joinPath(path []int) string {
	if len(path) == 0 {
		return "root"
	}
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ".")
}
