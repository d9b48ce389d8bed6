package checker

import (
	"math"

	"github.com/tilepaint/exprlang/internal/ast"
	"github.com/tilepaint/exprlang/internal/types"
)

// Check implements spec §4.3's typecheck(expected, e) contract: a
// two-pass, top-down walk that expands NArgs parameter groups, unifies
// TypeName bindings against each argument's own declared result type
// (deliberately not recursing into argument subtrees first — see the
// note on Match in match.go), then recurses into each
// argument with its own fully-resolved expected type. Every error
// collected carries the dot-path Key of the node it was found at.
func Check(expected types.Type, e ast.Expression) (ast.Expression, []*Error) {
	switch node := e.(type) {
	case *ast.Literal:
		return checkLiteral(expected, node)
	case *ast.Call:
		return checkCall(expected, node)
	default:
		return nil, []*Error{newError("root", "unknown expression node type")}
	}
}

func checkLiteral(expected types.Type, lit *ast.Literal) (ast.Expression, []*Error) {
	if err := Match(expected, lit.Type, types.Bindings{}, types.Bindings{}); err != nil {
		return nil, []*Error{rekey(lit.Key, err)}
	}
	return lit, nil
}

func checkCall(expected types.Type, call *ast.Call) (ast.Expression, []*Error) {
	typenames := types.Bindings{}

	sig := call.Type
	if lam, ok := expected.(types.Lambda); ok {
		if err := Match(lam.Result, call.Type.Result, typenames, typenames); err != nil {
			return nil, []*Error{rekey(call.Key, err)}
		}
	} else {
		if err := Match(expected, call.Type.Result, typenames, typenames); err != nil {
			return nil, []*Error{rekey(call.Key, err)}
		}
	}

	expandedParams, ok := expandParams(sig.Params, len(call.Arguments))
	if !ok {
		return nil, []*Error{newError(call.Key, "Expected %d arguments, but found %d instead.", len(expandedParams), len(call.Arguments))}
	}

	var errs []*Error
	argExpected := make([]types.Type, len(call.Arguments))
	shallowFailed := make([]bool, len(call.Arguments))
	for i, paramType := range expandedParams {
		resolvedParam := types.Resolve(paramType, typenames)
		argExpected[i] = resolvedParam
		if err := Match(resolvedParam, call.Arguments[i].ExprType(), typenames, typenames); err != nil {
			errs = append(errs, rekey(call.Arguments[i].ExprKey(), err))
			shallowFailed[i] = true
		}
	}

	resultType := types.Resolve(sig.Result, typenames)
	if types.IsGeneric(resultType) {
		errs = append(errs, newError(call.Key, "Could not resolve %s. This expression must be wrapped in a type conversion, e.g. [\"string\", ...].", resultType.Name()))
	}

	resolvedArgs := make([]ast.Expression, len(call.Arguments))
	for i := range call.Arguments {
		if shallowFailed[i] {
			continue
		}
		resolvedArg, argErrs := Check(argExpected[i], call.Arguments[i])
		errs = append(errs, argErrs...)
		if resolvedArg != nil {
			resolvedArgs[i] = resolvedArg
		}
	}

	if call.MatchInputs != nil && len(argExpected) > 0 {
		inputType := argExpected[0]
		for _, group := range call.MatchInputs {
			for _, lit := range group {
				if _, litErrs := checkLiteral(inputType, lit); litErrs != nil {
					errs = append(errs, litErrs...)
				}
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	finalParams := make([]types.Type, len(expandedParams))
	for i, p := range expandedParams {
		finalParams[i] = types.Resolve(p, typenames)
	}

	return &ast.Call{
		Name:        call.Name,
		Type:        types.Lambda{Result: resultType, Params: finalParams},
		Arguments:   resolvedArgs,
		Key:         call.Key,
		MatchInputs: call.MatchInputs,
	}, nil
}

// expandParams eliminates at most one NArgs macro from params (spec
// §4.3 step 2), returning the fully-expanded parameter list and whether
// its length matches argCount.
func expandParams(params []types.Type, argCount int) ([]types.Type, bool) {
	var expanded []types.Type
	fixedCount := 0
	for _, p := range params {
		if _, isNArgs := p.(types.NArgs); !isNArgs {
			fixedCount++
		}
	}
	for _, p := range params {
		nargs, isNArgs := p.(types.NArgs)
		if !isNArgs {
			expanded = append(expanded, p)
			continue
		}
		groupLen := len(nargs.Types)
		if groupLen == 0 {
			continue
		}
		remaining := argCount - fixedCount
		repeat := 0
		if remaining > 0 {
			repeat = int(math.Ceil(float64(remaining) / float64(groupLen)))
		}
		if nargs.N != types.Unbounded && repeat > nargs.N {
			repeat = nargs.N
		}
		for i := 0; i < repeat; i++ {
			expanded = append(expanded, nargs.Types...)
		}
	}
	return expanded, len(expanded) == argCount
}

func rekey(key string, err error) *Error {
	if ce, ok := err.(*Error); ok {
		return &Error{Key: key, Message: ce.Message}
	}
	return newError(key, "%s", err.Error())
}
