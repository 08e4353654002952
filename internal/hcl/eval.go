package hcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// functions is the function library available to area expressions.
var functions = map[string]function.Function{
	"abs":   stdlib.AbsoluteFunc,
	"ceil":  stdlib.CeilFunc,
	"floor": stdlib.FloorFunc,
	"max":   stdlib.MaxFunc,
	"min":   stdlib.MinFunc,
}

// newEvalContext exposes resolved locals under `local.<name>`.
func newEvalContext(locals map[string]cty.Value) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"local": cty.ObjectVal(locals)},
		Functions: functions,
	}
}

// resolveLocals evaluates every attribute of every locals block. Locals may
// refer to each other in any order; evaluation repeats until nothing new
// resolves.
func resolveLocals(bodies []hcl.Body) (map[string]cty.Value, error) {
	pending := make(map[string]*hcl.Attribute)
	for _, body := range bodies {
		attrs, diags := body.JustAttributes()
		if diags.HasErrors() {
			return nil, diags
		}
		for name, attr := range attrs {
			if prev, dup := pending[name]; dup {
				return nil, fmt.Errorf("local %q is defined twice (%s and %s)", name, prev.Range, attr.Range)
			}
			pending[name] = attr
		}
	}

	resolved := make(map[string]cty.Value, len(pending))
	for len(pending) > 0 {
		progress := false
		evalCtx := newEvalContext(resolved)
		for name, attr := range pending {
			val, diags := attr.Expr.Value(evalCtx)
			if diags.HasErrors() {
				continue
			}
			resolved[name] = val
			delete(pending, name)
			progress = true
		}
		if progress {
			continue
		}

		// Report the first stuck local deterministically.
		names := make([]string, 0, len(pending))
		for name := range pending {
			names = append(names, name)
		}
		sort.Strings(names)
		_, diags := pending[names[0]].Expr.Value(newEvalContext(resolved))
		return nil, fmt.Errorf("cannot evaluate local %q: %w", names[0], diags)
	}
	return resolved, nil
}

// decode evaluates expr and converts the result into the Go value behind
// target, using ty as the intermediate cty type.
func decode(expr hcl.Expression, evalCtx *hcl.EvalContext, ty cty.Type, target any) error {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return diags
	}
	if val.IsNull() {
		return fmt.Errorf("value is required")
	}
	if !val.IsWhollyKnown() {
		return fmt.Errorf("value is not known")
	}

	converted, err := convert.Convert(val, ty)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}

func decodeNumber(expr hcl.Expression, evalCtx *hcl.EvalContext) (float64, error) {
	var f float64
	err := decode(expr, evalCtx, cty.Number, &f)
	return f, err
}

func decodeString(expr hcl.Expression, evalCtx *hcl.EvalContext) (string, error) {
	var s string
	err := decode(expr, evalCtx, cty.String, &s)
	return s, err
}

func decodeStringList(expr hcl.Expression, evalCtx *hcl.EvalContext) ([]string, error) {
	var list []string
	err := decode(expr, evalCtx, cty.List(cty.String), &list)
	return list, err
}
