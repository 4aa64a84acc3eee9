package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/l-hoang/chefgo/internal/ast"
	"github.com/l-hoang/chefgo/internal/config"
	"github.com/l-hoang/chefgo/internal/diagnostics"
)

var (
	cookingTimeRe = regexp.MustCompile(`^Cooking time: (\d+) (?:minute|minutes|hour|hours)\.$`)
	ovenTempRe    = regexp.MustCompile(`^Pre-heat oven to (\d+) degrees Celsius(?: \(gas mark (\d+)\))?\.$`)
	servesRe      = regexp.MustCompile(`^Serves (\d+)\.$`)
)

// One matcher per statement form. Order matters: the table is tried
// top to bottom and the first match wins, so specific phrasings sit
// above the generic ones ("Add dry ingredients" above "Add <ing>",
// everything above the loop fallbacks).
type matcher struct {
	re    *regexp.Regexp
	build func(p *Parser, m []string, line int) *ast.Instruction
}

var statementTable = []matcher{
	{
		regexp.MustCompile(`^Take (?:the )?(.+?) from (?:the )?refrigerator$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpRead, Ing: m[1], Line: line}
		},
	},
	{
		regexp.MustCompile(`^Put (?:the )?(.+?) into (?:the )?mixing bowl(?: (\d+))?$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpPush, Ing: m[1], Bowl: bowlNum(m[2]), Line: line}
		},
	},
	{
		regexp.MustCompile(`^Fold (?:the )?(.+?) into (?:the )?mixing bowl(?: (\d+))?$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpPop, Ing: m[1], Bowl: bowlNum(m[2]), Line: line}
		},
	},
	{
		regexp.MustCompile(`^Add dry ingredients(?: (?:to|into) (?:the )?mixing bowl(?: (\d+))?)?$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpAddDry, Bowl: bowlNum(m[1]), Line: line}
		},
	},
	{
		regexp.MustCompile(`^Add (?:the )?(.+?)(?: to (?:the )?mixing bowl(?: (\d+))?)?$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpAdd, Ing: m[1], Bowl: bowlNum(m[2]), Line: line}
		},
	},
	{
		regexp.MustCompile(`^Remove (?:the )?(.+?)(?: from (?:the )?mixing bowl(?: (\d+))?)?$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpSubtract, Ing: m[1], Bowl: bowlNum(m[2]), Line: line}
		},
	},
	{
		regexp.MustCompile(`^Combine (?:the )?(.+?)(?: into (?:the )?mixing bowl(?: (\d+))?)?$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpMultiply, Ing: m[1], Bowl: bowlNum(m[2]), Line: line}
		},
	},
	{
		regexp.MustCompile(`^Divide (?:the )?(.+?)(?: into (?:the )?mixing bowl(?: (\d+))?)?$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpDivide, Ing: m[1], Bowl: bowlNum(m[2]), Line: line}
		},
	},
	{
		// Both historical spellings are seen in the wild.
		regexp.MustCompile(`^Liqu[ei]fy (?:the )?contents of (?:the )?mixing bowl(?: (\d+))?$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpLiquefyBowl, Bowl: bowlNum(m[1]), Line: line}
		},
	},
	{
		regexp.MustCompile(`^Liqu[ei]fy (?:the )?(.+)$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpLiquefy, Ing: m[1], Line: line}
		},
	},
	{
		regexp.MustCompile(`^Stir(?: (?:the )?mixing bowl(?: (\d+))?)? for (\d+) minutes?$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpStir, Bowl: bowlNum(m[1]), Count: mustAtoi(m[2]), Line: line}
		},
	},
	{
		regexp.MustCompile(`^Stir (?:the )?(.+?) into (?:the )?mixing bowl(?: (\d+))?$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpStirIng, Ing: m[1], Bowl: bowlNum(m[2]), Line: line}
		},
	},
	{
		regexp.MustCompile(`^Mix(?: (?:the )?mixing bowl(?: (\d+))?)? well$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpMix, Bowl: bowlNum(m[1]), Line: line}
		},
	},
	{
		regexp.MustCompile(`^Clean (?:the )?mixing bowl(?: (\d+))?$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpClean, Bowl: bowlNum(m[1]), Line: line}
		},
	},
	{
		regexp.MustCompile(`^Pour (?:the )?contents of (?:the )?mixing bowl(?: (\d+))? into (?:the )?baking dish(?: (\d+))?$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpPour, Bowl: bowlNum(m[1]), Dish: bowlNum(m[2]), Line: line}
		},
	},
	{
		regexp.MustCompile(`^Set aside$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpBreak, Line: line}
		},
	},
	{
		regexp.MustCompile(`^Serve with (.+)$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpCall, Callee: strings.ToLower(m[1]), Line: line}
		},
	},
	{
		regexp.MustCompile(`^Refrigerate(?: for (\d+) (hour|hours))?$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			if m[1] == "" {
				return &ast.Instruction{Op: ast.OpReturn, Line: line}
			}
			n := mustAtoi(m[1])
			if n < 1 || (n == 1) != (m[2] == "hour") {
				p.errorf(diagnostics.ErrP004, line, "hour count %d does not agree with %q", n, m[2])
				return nil
			}
			return &ast.Instruction{Op: ast.OpReturn, Count: n, Line: line}
		},
	},
	{
		// Loop end: "Verb [the ing] until verbed."
		regexp.MustCompile(`^([A-Z][a-zA-Z]*)(?: (?:the )?(.+?))? until ([a-z]+)$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpLoopEnd, Ing: m[2], Keyword: m[3], Line: line}
		},
	},
	{
		// Loop start: any leftover "Verb the ing." — the closing
		// keyword is the lowercased verb inflected with -d/-ed.
		regexp.MustCompile(`^([A-Z][a-zA-Z]*) the (.+)$`),
		func(p *Parser, m []string, line int) *ast.Instruction {
			return &ast.Instruction{Op: ast.OpLoopStart, Ing: m[2], Keyword: closingKeyword(m[1]), Line: line}
		},
	},
}

func (p *Parser) parseStatement(s statement) *ast.Instruction {
	for _, m := range statementTable {
		if sub := m.re.FindStringSubmatch(s.text); sub != nil {
			return m.build(p, sub, s.line)
		}
	}
	p.errorf(diagnostics.ErrP001, s.line, "unrecognized statement %q", s.text)
	return nil
}

// closingKeyword derives the loop-end keyword from the opening verb:
// "Count" closes with "counted", "Bake" with "baked".
func closingKeyword(verb string) string {
	verb = strings.ToLower(verb)
	if strings.HasSuffix(verb, "e") {
		return verb + "d"
	}
	return verb + "ed"
}

func bowlNum(s string) int {
	if s == "" {
		return config.DefaultBowl
	}
	return mustAtoi(s)
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
