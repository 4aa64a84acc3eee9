package builder

import (
	"strings"

	"github.com/l-hoang/chefgo/internal/ast"
	"github.com/l-hoang/chefgo/internal/diagnostics"
)

// Build validates the parse results and produces the executable
// program: the first recipe becomes main, loop statements are paired,
// and every call target must name a known recipe. The first
// inconsistency stops the build.
func Build(results []*ast.RecipeResult) (*ast.Program, error) {
	if len(results) == 0 {
		return nil, diagnostics.NewError(diagnostics.ErrP005, 0, "no recipes to build")
	}

	prog := &ast.Program{Recipes: make(map[string]*ast.Recipe)}
	for i, r := range results {
		name := strings.ToLower(r.Title)
		if _, exists := prog.Recipes[name]; exists {
			return nil, diagnostics.NewError(diagnostics.ErrB005, r.Line, "duplicate recipe title %q", r.Title)
		}
		recipe := &ast.Recipe{
			Name:         name,
			Title:        r.Title,
			Ingredients:  r.Ingredients,
			Instructions: r.Instructions,
		}
		if err := resolveLoops(recipe); err != nil {
			return nil, err
		}
		prog.Recipes[name] = recipe
		if i == 0 {
			prog.Main = name
		}
	}

	for _, recipe := range prog.Recipes {
		for _, instr := range recipe.Instructions {
			if instr.Op != ast.OpCall {
				continue
			}
			if _, ok := prog.Recipes[instr.Callee]; !ok {
				return nil, diagnostics.NewError(diagnostics.ErrB004, instr.Line,
					"call to unknown recipe %q", instr.Callee).WithRecipe(recipe.Title)
			}
		}
	}
	return prog, nil
}

// resolveLoops pairs loop starts with their ends by closing keyword
// and resolves break targets. Starts are held on a pending stack; an
// end normally closes the top entry, but loops of different verbs may
// interleave, so a non-matching top triggers a downward search for the
// nearest pending start with the same keyword. Starts above the match
// stay open and must be closed later.
func resolveLoops(recipe *ast.Recipe) error {
	type pendingStart struct {
		idx     int
		keyword string
	}
	var pending []pendingStart
	type pendingBreak struct {
		idx      int
		startIdx int
	}
	var breaks []pendingBreak

	for i, instr := range recipe.Instructions {
		switch instr.Op {
		case ast.OpLoopStart:
			pending = append(pending, pendingStart{idx: i, keyword: instr.Keyword})

		case ast.OpLoopEnd:
			match := -1
			for j := len(pending) - 1; j >= 0; j-- {
				if pending[j].keyword == instr.Keyword {
					match = j
					break
				}
			}
			if match < 0 {
				return diagnostics.NewError(diagnostics.ErrB002, instr.Line,
					"%q closes no open loop", instr.Keyword).WithRecipe(recipe.Title)
			}
			start := pending[match]
			recipe.Instructions[start.idx].Target = i
			instr.Target = start.idx
			pending = append(pending[:match], pending[match+1:]...)

		case ast.OpBreak:
			if len(pending) == 0 {
				return diagnostics.NewError(diagnostics.ErrB003, instr.Line,
					"Set aside outside any loop").WithRecipe(recipe.Title)
			}
			breaks = append(breaks, pendingBreak{idx: i, startIdx: pending[len(pending)-1].idx})
		}
	}

	if len(pending) > 0 {
		open := recipe.Instructions[pending[len(pending)-1].idx]
		return diagnostics.NewError(diagnostics.ErrB001, open.Line,
			"loop %q is never closed", open.Keyword).WithRecipe(recipe.Title)
	}

	// A break jumps just past the end of its innermost enclosing loop;
	// that end index only becomes known once the loop closes.
	for _, b := range breaks {
		start := recipe.Instructions[b.startIdx]
		recipe.Instructions[b.idx].Target = start.Target + 1
	}
	return nil
}
