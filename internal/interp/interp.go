package interp

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/l-hoang/chefgo/internal/ast"
	"github.com/l-hoang/chefgo/internal/diagnostics"
)

// RunOptions tunes a single run. Seed 0 draws the Mix shuffle seed
// from the clock; any other value makes runs reproducible.
type RunOptions struct {
	Seed   int64
	Logger *slog.Logger
}

// Interpreter executes one program. Execution is single-threaded;
// nested recipe calls are ordinary Go recursion and the recipe table
// is read-only, so no locking is involved.
type Interpreter struct {
	prog  *ast.Program
	in    InputSource
	out   io.Writer
	rng   *rand.Rand
	log   *slog.Logger
	runID string
}

// frame is the state of one active recipe invocation. Bowls and
// dishes are created lazily on first reference and never shared with
// another frame except via the explicit copies at call boundaries.
type frame struct {
	recipe *ast.Recipe
	bowls  map[int]*stack
	dishes map[int]*stack
	vars   map[string]*binding
}

type binding struct {
	kind ast.Kind
	val  ast.Value
}

func newFrame(recipe *ast.Recipe) *frame {
	f := &frame{
		recipe: recipe,
		bowls:  make(map[int]*stack),
		dishes: make(map[int]*stack),
		vars:   make(map[string]*binding),
	}
	for _, ing := range recipe.Ingredients {
		v := 0
		if ing.Initial != nil {
			v = *ing.Initial
		}
		f.vars[ing.Name] = &binding{
			kind: ing.Kind,
			val:  ast.Value{Number: v, Liquid: ing.Kind == ast.Liquid},
		}
	}
	return f
}

func (f *frame) bowl(n int) *stack {
	if s, ok := f.bowls[n]; ok {
		return s
	}
	s := &stack{}
	f.bowls[n] = s
	return s
}

func (f *frame) dish(n int) *stack {
	if s, ok := f.dishes[n]; ok {
		return s
	}
	s := &stack{}
	f.dishes[n] = s
	return s
}

func (f *frame) lookup(name string) (*binding, bool) {
	b, ok := f.vars[name]
	return b, ok
}

// Run executes the main recipe of prog against the given input source
// and output sink. It returns nil on normal completion or the fatal
// runtime diagnostic that stopped the run.
func Run(prog *ast.Program, in InputSource, out io.Writer, opts *RunOptions) error {
	if opts == nil {
		opts = &RunOptions{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	it := &Interpreter{
		prog:  prog,
		in:    in,
		out:   out,
		rng:   rand.New(rand.NewSource(seed)),
		log:   logger,
		runID: uuid.NewString(),
	}
	main := prog.MainRecipe()
	if main == nil {
		return diagnostics.NewError(diagnostics.ErrR005, 0, "program has no main recipe")
	}
	it.log.Debug("run start", "run", it.runID, "recipe", main.Title)
	err := it.exec(newFrame(main), true, 0)
	if err != nil {
		it.log.Debug("run failed", "run", it.runID, "error", err)
		return err
	}
	it.log.Debug("run done", "run", it.runID)
	return nil
}

func (it *Interpreter) runErr(code diagnostics.Code, f *frame, instr *ast.Instruction, format string, args ...interface{}) error {
	return diagnostics.NewError(code, instr.Line, format, args...).WithRecipe(f.recipe.Title)
}

// exec drives one frame to completion: past the last instruction,
// or a Refrigerate. Only the main frame ever serves output.
func (it *Interpreter) exec(f *frame, isMain bool, depth int) error {
	instrs := f.recipe.Instructions
	ip := 0
	for ip < len(instrs) {
		instr := instrs[ip]
		it.log.Debug("exec", "run", it.runID, "recipe", f.recipe.Name, "depth", depth, "ip", ip, "op", instr.Op.String())

		switch instr.Op {
		case ast.OpRead:
			b, ok := f.lookup(instr.Ing)
			if !ok {
				return it.runErr(diagnostics.ErrR004, f, instr, "unknown ingredient %q", instr.Ing)
			}
			n, err := it.in.Next()
			if err != nil {
				return it.runErr(diagnostics.ErrR003, f, instr, "cannot read input for %q: %s", instr.Ing, err)
			}
			b.val = ast.Value{Number: n, Liquid: b.kind == ast.Liquid}

		case ast.OpPush:
			v, err := it.value(f, instr)
			if err != nil {
				return err
			}
			f.bowl(instr.Bowl).push(v)

		case ast.OpPop:
			b, ok := f.lookup(instr.Ing)
			if !ok {
				return it.runErr(diagnostics.ErrR004, f, instr, "unknown ingredient %q", instr.Ing)
			}
			v, ok := f.bowl(instr.Bowl).pop()
			if !ok {
				return it.runErr(diagnostics.ErrR001, f, instr, "mixing bowl %d is empty", instr.Bowl)
			}
			b.val = v

		case ast.OpAdd, ast.OpSubtract, ast.OpMultiply, ast.OpDivide:
			if err := it.arith(f, instr); err != nil {
				return err
			}

		case ast.OpAddDry:
			sum := 0
			for _, ing := range f.recipe.Ingredients {
				if ing.Kind == ast.Dry {
					sum += f.vars[ing.Name].val.Number
				}
			}
			f.bowl(instr.Bowl).push(ast.Value{Number: sum})

		case ast.OpLiquefy:
			b, ok := f.lookup(instr.Ing)
			if !ok {
				return it.runErr(diagnostics.ErrR004, f, instr, "unknown ingredient %q", instr.Ing)
			}
			b.val.Liquid = true

		case ast.OpLiquefyBowl:
			s := f.bowl(instr.Bowl)
			for i := range s.items {
				s.items[i].Liquid = true
			}

		case ast.OpStir:
			f.bowl(instr.Bowl).stir(instr.Count)

		case ast.OpStirIng:
			v, err := it.value(f, instr)
			if err != nil {
				return err
			}
			f.bowl(instr.Bowl).stir(v.Number)

		case ast.OpMix:
			s := f.bowl(instr.Bowl)
			it.rng.Shuffle(len(s.items), func(i, j int) {
				s.items[i], s.items[j] = s.items[j], s.items[i]
			})

		case ast.OpClean:
			f.bowl(instr.Bowl).clear()

		case ast.OpPour:
			src := f.bowl(instr.Bowl)
			dst := f.dish(instr.Dish)
			dst.items = append(dst.items, src.items...)

		case ast.OpLoopStart:
			v, err := it.value(f, instr)
			if err != nil {
				return err
			}
			if v.Number == 0 {
				ip = instr.Target + 1
				continue
			}

		case ast.OpLoopEnd:
			if instr.Ing != "" {
				b, ok := f.lookup(instr.Ing)
				if !ok {
					return it.runErr(diagnostics.ErrR004, f, instr, "unknown ingredient %q", instr.Ing)
				}
				b.val.Number--
			}
			ip = instr.Target
			continue

		case ast.OpBreak:
			ip = instr.Target
			continue

		case ast.OpCall:
			if err := it.call(f, instr, depth); err != nil {
				return err
			}

		case ast.OpReturn:
			if isMain && instr.Count > 0 {
				return it.serve(f, instr.Count)
			}
			return nil

		case ast.OpServe:
			if isMain {
				if err := it.serve(f, instr.Count); err != nil {
					return err
				}
			}

		default:
			return it.runErr(diagnostics.ErrR005, f, instr, "unexpected instruction %s", instr.Op)
		}
		ip++
	}
	return nil
}

// value reads the current Value of the instruction's ingredient.
func (it *Interpreter) value(f *frame, instr *ast.Instruction) (ast.Value, error) {
	b, ok := f.lookup(instr.Ing)
	if !ok {
		return ast.Value{}, it.runErr(diagnostics.ErrR004, f, instr, "unknown ingredient %q", instr.Ing)
	}
	return b.val, nil
}

// arith combines the ingredient with the top of the bowl in place.
// The result keeps the ingredient operand's liquid flag.
func (it *Interpreter) arith(f *frame, instr *ast.Instruction) error {
	iv, err := it.value(f, instr)
	if err != nil {
		return err
	}
	s := f.bowl(instr.Bowl)
	top, ok := s.peek()
	if !ok {
		return it.runErr(diagnostics.ErrR001, f, instr, "mixing bowl %d is empty", instr.Bowl)
	}
	var n int
	switch instr.Op {
	case ast.OpAdd:
		n = top.Number + iv.Number
	case ast.OpSubtract:
		n = top.Number - iv.Number
	case ast.OpMultiply:
		n = top.Number * iv.Number
	case ast.OpDivide:
		if iv.Number == 0 {
			return it.runErr(diagnostics.ErrR002, f, instr, "division by zero ingredient %q", instr.Ing)
		}
		n = top.Number / iv.Number
	}
	s.setTop(ast.Value{Number: n, Liquid: iv.Liquid})
	return nil
}

// call runs the named recipe in a fresh frame. Every populated caller
// bowl is copied in by number, and on return every callee bowl is
// copied back, overwriting the caller's. Baking dishes stay private.
func (it *Interpreter) call(f *frame, instr *ast.Instruction, depth int) error {
	callee, ok := it.prog.Recipes[instr.Callee]
	if !ok {
		// The builder excludes this; hitting it means the program
		// table was corrupted.
		return it.runErr(diagnostics.ErrR005, f, instr, "call to unresolved recipe %q", instr.Callee)
	}
	cf := newFrame(callee)
	for n, s := range f.bowls {
		cf.bowls[n] = s.clone()
	}
	if err := it.exec(cf, false, depth+1); err != nil {
		return err
	}
	for n, s := range cf.bowls {
		f.bowls[n] = s
	}
	return nil
}

// serve drains baking dishes 1..n top-down, rendering liquid values
// as characters and everything else as decimal numbers, with a line
// break between successive dishes.
func (it *Interpreter) serve(f *frame, n int) error {
	for d := 1; d <= n; d++ {
		if d > 1 {
			if _, err := io.WriteString(it.out, "\n"); err != nil {
				return err
			}
		}
		s := f.dish(d)
		for {
			v, ok := s.pop()
			if !ok {
				break
			}
			if _, err := fmt.Fprint(it.out, v.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
