package parser

import (
	"strings"

	"github.com/l-hoang/chefgo/internal/ast"
	"github.com/l-hoang/chefgo/internal/diagnostics"
	"github.com/l-hoang/chefgo/internal/pipeline"
)

// The grammar is paragraph-oriented: a blank line delimits sections and
// recipes, single line breaks inside a section are plain separators.
// A recipe is:
//
//	Title.
//
//	free-text comment
//
//	Ingredients.
//	<one per line>
//
//	Cooking time: N minutes.
//
//	Pre-heat oven to N degrees Celsius (gas mark M).
//
//	Method.
//	<statements, each ending in a period>
//
//	Serves N.
//
// Everything between Title and Method except the comment is optional.
// Cooking time and oven temperature are accepted and discarded.

type paragraph struct {
	lines []string
	nums  []int // 1-based source line per entry
}

func (pg paragraph) firstLine() string { return pg.lines[0] }
func (pg paragraph) startLine() int    { return pg.nums[0] }

type Parser struct {
	paras []paragraph
	pos   int
	ctx   *pipeline.PipelineContext
}

func New(src string, ctx *pipeline.PipelineContext) *Parser {
	return &Parser{paras: splitParagraphs(src), ctx: ctx}
}

func splitParagraphs(src string) []paragraph {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	var paras []paragraph
	var cur paragraph
	for i, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(cur.lines) > 0 {
				paras = append(paras, cur)
				cur = paragraph{}
			}
			continue
		}
		cur.lines = append(cur.lines, strings.TrimSpace(line))
		cur.nums = append(cur.nums, i+1)
	}
	if len(cur.lines) > 0 {
		paras = append(paras, cur)
	}
	return paras
}

func (p *Parser) errorf(code diagnostics.Code, line int, format string, args ...interface{}) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(code, line, format, args...))
}

func (p *Parser) peek() (paragraph, bool) {
	if p.pos >= len(p.paras) {
		return paragraph{}, false
	}
	return p.paras[p.pos], true
}

func (p *Parser) next() (paragraph, bool) {
	pg, ok := p.peek()
	if ok {
		p.pos++
	}
	return pg, ok
}

// ParseProgram consumes every paragraph and returns one result per
// recipe. The first error stops the parse; no partial program is kept.
func (p *Parser) ParseProgram() []*ast.RecipeResult {
	var results []*ast.RecipeResult
	for p.pos < len(p.paras) {
		r := p.parseRecipe()
		if r == nil {
			return nil
		}
		results = append(results, r)
	}
	if len(results) == 0 {
		p.errorf(diagnostics.ErrP005, 0, "program contains no recipes")
		return nil
	}
	return results
}

func (p *Parser) parseRecipe() *ast.RecipeResult {
	title, ok := p.parseTitle()
	if !ok {
		return nil
	}
	r := &ast.RecipeResult{Title: title, Line: p.paras[p.pos-1].startLine()}

	// Optional free-text comment. Anything that is not a recognized
	// section opener is the comment paragraph; at most one.
	if pg, ok := p.peek(); ok && !isSectionStart(pg) {
		p.pos++
	}

	if pg, ok := p.peek(); ok && pg.firstLine() == "Ingredients." {
		p.pos++
		if len(pg.lines) < 2 {
			p.errorf(diagnostics.ErrP002, pg.startLine(), "Ingredients section declares no ingredients")
			return nil
		}
		for i := 1; i < len(pg.lines); i++ {
			ing, err := parseIngredient(pg.lines[i], pg.nums[i])
			if err != nil {
				p.ctx.Errors = append(p.ctx.Errors, err)
				return nil
			}
			r.Ingredients = append(r.Ingredients, ing)
		}
	}

	// Cooking time and oven temperature carry no semantics.
	if pg, ok := p.peek(); ok && cookingTimeRe.MatchString(pg.firstLine()) {
		if len(pg.lines) > 1 {
			p.errorf(diagnostics.ErrP002, pg.nums[1], "unexpected text after cooking time")
			return nil
		}
		p.pos++
	}
	if pg, ok := p.peek(); ok && ovenTempRe.MatchString(pg.firstLine()) {
		if len(pg.lines) > 1 {
			p.errorf(diagnostics.ErrP002, pg.nums[1], "unexpected text after oven temperature")
			return nil
		}
		p.pos++
	}

	pg, ok := p.next()
	if !ok || pg.firstLine() != "Method." {
		line := 0
		if ok {
			line = pg.startLine()
		}
		p.errorf(diagnostics.ErrP002, line, "recipe %q has no Method section", title)
		return nil
	}
	stmts, trailing := splitStatements(pg, 1)
	if trailing != nil {
		p.errorf(diagnostics.ErrP002, trailing.line, "statement %q is not terminated by a period", trailing.text)
		return nil
	}
	if len(stmts) == 0 {
		p.errorf(diagnostics.ErrP002, pg.startLine(), "Method section of %q has no statements", title)
		return nil
	}
	for _, s := range stmts {
		instr := p.parseStatement(s)
		if instr == nil {
			return nil
		}
		r.Instructions = append(r.Instructions, instr)
	}

	// Optional trailing serve count, as a final instruction.
	if pg, ok := p.peek(); ok {
		if m := servesRe.FindStringSubmatch(pg.firstLine()); m != nil {
			if len(pg.lines) > 1 {
				p.errorf(diagnostics.ErrP002, pg.nums[1], "unexpected text after Serves")
				return nil
			}
			p.pos++
			r.Instructions = append(r.Instructions, &ast.Instruction{
				Op:    ast.OpServe,
				Count: mustAtoi(m[1]),
				Line:  pg.startLine(),
			})
		}
	}
	return r
}

func (p *Parser) parseTitle() (string, bool) {
	pg, ok := p.next()
	if !ok {
		return "", false
	}
	if len(pg.lines) > 1 {
		p.errorf(diagnostics.ErrP002, pg.nums[1], "recipe title must be a single line")
		return "", false
	}
	line := pg.firstLine()
	if !strings.HasSuffix(line, ".") || len(line) < 2 {
		p.errorf(diagnostics.ErrP002, pg.startLine(), "recipe title %q must end with a period", line)
		return "", false
	}
	return strings.TrimSpace(strings.TrimSuffix(line, ".")), true
}

func isSectionStart(pg paragraph) bool {
	first := pg.firstLine()
	return first == "Ingredients." || first == "Method." ||
		cookingTimeRe.MatchString(first) || ovenTempRe.MatchString(first)
}

type statement struct {
	text string
	line int
}

// splitStatements joins the paragraph's lines and cuts it into
// period-terminated statements, so a statement may wrap across lines.
// A non-empty remainder without a period is returned as trailing.
func splitStatements(pg paragraph, from int) ([]statement, *statement) {
	var out []statement
	var buf strings.Builder
	bufLine := 0
	for i := from; i < len(pg.lines); i++ {
		rest := pg.lines[i]
		for rest != "" {
			if buf.Len() == 0 {
				bufLine = pg.nums[i]
			}
			dot := strings.IndexByte(rest, '.')
			if dot < 0 {
				buf.WriteString(rest)
				buf.WriteByte(' ')
				break
			}
			buf.WriteString(rest[:dot])
			text := strings.TrimSpace(buf.String())
			buf.Reset()
			if text != "" {
				out = append(out, statement{text: text, line: bufLine})
			}
			rest = strings.TrimSpace(rest[dot+1:])
		}
	}
	if text := strings.TrimSpace(buf.String()); text != "" {
		return out, &statement{text: text, line: bufLine}
	}
	return out, nil
}
