package ast

import "fmt"

// Kind classifies an ingredient by its declared measure.
type Kind int

const (
	Either Kind = iota // cup/teaspoon/tablespoon or no measure at all
	Dry                // g, kg, pinch(es), or any measure marked heaped/level
	Liquid             // ml, l, dash(es)
)

func (k Kind) String() string {
	switch k {
	case Dry:
		return "dry"
	case Liquid:
		return "liquid"
	default:
		return "either"
	}
}

// Value is the single runtime cell: an integer plus a flag deciding
// whether serving renders it as a number or as a character.
type Value struct {
	Number int
	Liquid bool
}

func (v Value) String() string {
	if v.Liquid {
		return string(rune(v.Number))
	}
	return fmt.Sprintf("%d", v.Number)
}

// Ingredient is one declaration from the Ingredients section.
// Initial is nil when the declaration carried no leading value;
// the runtime then starts the binding at 0.
type Ingredient struct {
	Name    string
	Initial *int
	Kind    Kind
}

// Op enumerates the closed instruction set.
type Op int

const (
	OpRead        Op = iota // Take ing from refrigerator
	OpPush                  // Put ing into mixing bowl
	OpPop                   // Fold ing into mixing bowl
	OpAdd                   // Add ing [to mixing bowl]
	OpSubtract              // Remove ing [from mixing bowl]
	OpMultiply              // Combine ing [into mixing bowl]
	OpDivide                // Divide ing [into mixing bowl]
	OpAddDry                // Add dry ingredients [to mixing bowl]
	OpLiquefy               // Liquefy ing
	OpLiquefyBowl           // Liquefy contents of the mixing bowl
	OpStir                  // Stir [mixing bowl] for N minutes
	OpStirIng               // Stir ing into the mixing bowl
	OpMix                   // Mix [the mixing bowl] well
	OpClean                 // Clean mixing bowl
	OpPour                  // Pour contents of bowl into baking dish
	OpLoopStart             // "Verb the ing."
	OpLoopEnd               // "Verb [the ing] until verbed."
	OpBreak                 // Set aside
	OpCall                  // Serve with recipe
	OpReturn                // Refrigerate [for N hours]
	OpServe                 // trailing Serves N
)

var opNames = [...]string{
	"read", "push", "pop", "add", "subtract", "multiply", "divide",
	"add-dry", "liquefy", "liquefy-bowl", "stir", "stir-ingredient",
	"mix", "clean", "pour", "loop-start", "loop-end", "break", "call",
	"return", "serve",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Instruction is one executable step. The meaning of the operand
// fields depends on Op; unused fields stay at their zero value.
//
// Target is only meaningful for OpLoopStart, OpLoopEnd and OpBreak and
// is resolved by the builder: a loop start points at its matching end,
// an end points back at its start, and a break points just past the
// end of its innermost enclosing loop.
type Instruction struct {
	Op      Op
	Ing     string // ingredient operand ("" when absent on a loop end)
	Bowl    int    // mixing bowl number, 1-based
	Dish    int    // baking dish number, 1-based
	Count   int    // stir minutes, serve dish count, refrigerate hours
	Keyword string // derived loop-closing keyword, e.g. "counted"
	Callee  string // canonical (lowercased) recipe name for OpCall
	Target  int
	Line    int // source line, for diagnostics and tracing
}

// RecipeResult is the parser's per-recipe output, before the builder
// has resolved loops and validated calls.
type RecipeResult struct {
	Title        string
	Ingredients  []*Ingredient
	Instructions []*Instruction
	Line         int // line of the title
}

// Recipe is one validated, immutable unit of the program.
type Recipe struct {
	Name         string // canonical (lowercased) title
	Title        string // title as written
	Ingredients  []*Ingredient
	Instructions []*Instruction
}

// Program is the build output: the recipe table plus the designated
// main recipe. The table is never mutated after Build returns; nested
// calls share it by reference.
type Program struct {
	Recipes map[string]*Recipe
	Main    string
}

// MainRecipe returns the entry recipe.
func (p *Program) MainRecipe() *Recipe {
	return p.Recipes[p.Main]
}
