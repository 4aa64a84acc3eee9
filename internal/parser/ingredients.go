package parser

import (
	"strconv"
	"strings"

	"github.com/l-hoang/chefgo/internal/ast"
	"github.com/l-hoang/chefgo/internal/diagnostics"
)

// Measure vocabulary. Anything else after heaped/level is a parse
// failure; anything else otherwise is part of the ingredient name.
var measureKinds = map[string]ast.Kind{
	"g":       ast.Dry,
	"kg":      ast.Dry,
	"pinch":   ast.Dry,
	"pinches": ast.Dry,

	"ml":     ast.Liquid,
	"l":      ast.Liquid,
	"dash":   ast.Liquid,
	"dashes": ast.Liquid,

	"cup":         ast.Either,
	"cups":        ast.Either,
	"teaspoon":    ast.Either,
	"teaspoons":   ast.Either,
	"tablespoon":  ast.Either,
	"tablespoons": ast.Either,
}

// parseIngredient reads one declaration line:
//
//	[initial-value] [[heaped|level] measure] name
//
// heaped/level force the DRY kind regardless of the measure.
func parseIngredient(line string, num int) (*ast.Ingredient, *diagnostics.DiagnosticError) {
	fields := strings.Fields(line)
	idx := 0

	var initial *int
	if idx < len(fields) {
		if n, err := strconv.Atoi(fields[idx]); err == nil {
			initial = &n
			idx++
		}
	}

	kind := ast.Either
	if idx < len(fields) && (fields[idx] == "heaped" || fields[idx] == "level") {
		idx++
		if idx >= len(fields) {
			return nil, diagnostics.NewError(diagnostics.ErrP002, num, "%q must be followed by a measure", fields[idx-1])
		}
		if _, ok := measureKinds[fields[idx]]; !ok {
			return nil, diagnostics.NewError(diagnostics.ErrP003, num, "unrecognized measure %q", fields[idx])
		}
		kind = ast.Dry
		idx++
	} else if idx < len(fields) {
		if k, ok := measureKinds[fields[idx]]; ok {
			kind = k
			idx++
		}
	}

	name := strings.Join(fields[idx:], " ")
	if name == "" {
		return nil, diagnostics.NewError(diagnostics.ErrP002, num, "ingredient declaration %q has no name", line)
	}
	return &ast.Ingredient{Name: name, Initial: initial, Kind: kind}, nil
}
