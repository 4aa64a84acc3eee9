package builder_test

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/l-hoang/chefgo/internal/ast"
	"github.com/l-hoang/chefgo/internal/builder"
)

// Verbs used to generate loop nests; each derives a distinct keyword.
var loopVerbs = []string{"Count", "Whisk", "Bake", "Knead", "Sift"}

// genLoopShape produces a random well-nested bracket string over verb
// indices, e.g. [0 1 -2 -1] meaning Count( Whisk( )Whisk )Count.
func genLoopShape() gopter.Gen {
	return gen.SliceOfN(4, gen.IntRange(0, len(loopVerbs)-1)).Map(func(verbs []int) []int {
		// Wrap each verb as a properly nested pair, then nest them
		// pairwise: v0( v1( ) ) v2( v3( ) ) ...
		var shape []int
		for i := 0; i < len(verbs); i += 2 {
			shape = append(shape, verbs[i]+1)
			if i+1 < len(verbs) {
				shape = append(shape, verbs[i+1]+1, -(verbs[i+1] + 1))
			}
			shape = append(shape, -(verbs[i] + 1))
		}
		return shape
	})
}

func shapeToInstructions(shape []int) []*ast.Instruction {
	instrs := []*ast.Instruction{}
	for _, v := range shape {
		if v > 0 {
			verb := loopVerbs[v-1]
			instrs = append(instrs, &ast.Instruction{
				Op: ast.OpLoopStart, Ing: "counter", Keyword: keywordOf(verb),
			})
		} else {
			verb := loopVerbs[-v-1]
			instrs = append(instrs, &ast.Instruction{
				Op: ast.OpLoopEnd, Keyword: keywordOf(verb),
			})
		}
	}
	return instrs
}

func keywordOf(verb string) string {
	lower := strings.ToLower(verb)
	if strings.HasSuffix(lower, "e") {
		return lower + "d"
	}
	return lower + "ed"
}

// For any properly nested loop program, every start resolves to an end
// with the same keyword and the matching never crosses.
func TestLoopMatchingIsWellNested(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("resolved pairs form a non-crossing matching", prop.ForAll(
		func(shape []int) bool {
			zero := 0
			results := []*ast.RecipeResult{{
				Title:        "Shape",
				Ingredients:  []*ast.Ingredient{{Name: "counter", Initial: &zero, Kind: ast.Dry}},
				Instructions: shapeToInstructions(shape),
			}}
			prog, err := builder.Build(results)
			if err != nil {
				return false
			}
			instrs := prog.MainRecipe().Instructions
			for i, instr := range instrs {
				if instr.Op == ast.OpLoopStart {
					j := instr.Target
					if j <= i || j >= len(instrs) {
						return false
					}
					end := instrs[j]
					if end.Op != ast.OpLoopEnd || end.Keyword != instr.Keyword || end.Target != i {
						return false
					}
					// Non-crossing: every pair opened inside (i, j)
					// must also close inside it.
					for k := i + 1; k < j; k++ {
						if instrs[k].Op == ast.OpLoopStart {
							if instrs[k].Target >= j {
								return false
							}
						}
					}
				}
			}
			return true
		},
		genLoopShape(),
	))

	properties.TestingRun(t)
}
