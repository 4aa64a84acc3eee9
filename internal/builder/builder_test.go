package builder_test

import (
	"testing"

	"github.com/l-hoang/chefgo/internal/ast"
	"github.com/l-hoang/chefgo/internal/builder"
	"github.com/l-hoang/chefgo/internal/diagnostics"
	"github.com/l-hoang/chefgo/internal/parser"
)

func mustParse(t *testing.T, src string) []*ast.RecipeResult {
	t.Helper()
	results, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}
	return results
}

func methodSrc(stmts ...string) string {
	src := "Test.\n\nc.\n\nIngredients.\n1 g counter\n1 g limit\n\nMethod.\n"
	for _, s := range stmts {
		src += s + "\n"
	}
	return src
}

func TestLoopResolution(t *testing.T) {
	prog, err := builder.Build(mustParse(t, methodSrc(
		"Count the counter.",             // 0
		"Add counter.",                   // 1
		"Count the limit until counted.", // 2
	)))
	if err != nil {
		t.Fatalf("build failed: %s", err)
	}
	instrs := prog.MainRecipe().Instructions
	if instrs[0].Target != 2 {
		t.Errorf("loop start target = %d, want 2", instrs[0].Target)
	}
	if instrs[2].Target != 0 {
		t.Errorf("loop end target = %d, want 0", instrs[2].Target)
	}
}

func TestNestedSameVerbLoops(t *testing.T) {
	prog, err := builder.Build(mustParse(t, methodSrc(
		"Count the counter.",   // 0
		"Count the limit.",     // 1
		"Count until counted.", // 2, closes 1
		"Count until counted.", // 3, closes 0
	)))
	if err != nil {
		t.Fatalf("build failed: %s", err)
	}
	instrs := prog.MainRecipe().Instructions
	if instrs[1].Target != 2 || instrs[2].Target != 1 {
		t.Errorf("inner pair = (%d,%d), want (2,1)", instrs[1].Target, instrs[2].Target)
	}
	if instrs[0].Target != 3 || instrs[3].Target != 0 {
		t.Errorf("outer pair = (%d,%d), want (3,0)", instrs[0].Target, instrs[3].Target)
	}
}

// Loops of different verbs may close out of stack order; the end binds
// to the nearest pending start with the same keyword.
func TestInterleavedVerbLoops(t *testing.T) {
	prog, err := builder.Build(mustParse(t, methodSrc(
		"Count the counter.",   // 0
		"Whisk the limit.",     // 1
		"Count until counted.", // 2, binds to 0
		"Whisk until whisked.", // 3, binds to 1
	)))
	if err != nil {
		t.Fatalf("build failed: %s", err)
	}
	instrs := prog.MainRecipe().Instructions
	if instrs[0].Target != 2 || instrs[2].Target != 0 {
		t.Errorf("count pair = (%d,%d), want (2,0)", instrs[0].Target, instrs[2].Target)
	}
	if instrs[1].Target != 3 || instrs[3].Target != 1 {
		t.Errorf("whisk pair = (%d,%d), want (3,1)", instrs[1].Target, instrs[3].Target)
	}
}

func TestBreakTargetsInnermostLoop(t *testing.T) {
	prog, err := builder.Build(mustParse(t, methodSrc(
		"Count the counter.",   // 0
		"Whisk the limit.",     // 1
		"Set aside.",           // 2
		"Whisk until whisked.", // 3
		"Count until counted.", // 4
	)))
	if err != nil {
		t.Fatalf("build failed: %s", err)
	}
	instrs := prog.MainRecipe().Instructions
	if instrs[2].Target != 4 {
		t.Errorf("break target = %d, want 4 (just past inner loop end)", instrs[2].Target)
	}
}

func TestBuildFailures(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		wantCode diagnostics.Code
	}{
		{"unclosed_loop", methodSrc("Count the counter.", "Add counter."), diagnostics.ErrB001},
		{"end_without_start", methodSrc("Count until counted."), diagnostics.ErrB002},
		{"keyword_mismatch", methodSrc("Count the counter.", "Whisk until whisked."), diagnostics.ErrB002},
		{"break_outside_loop", methodSrc("Set aside."), diagnostics.ErrB003},
		{"unknown_call", methodSrc("Serve with phantom dessert."), diagnostics.ErrB004},
		{
			"duplicate_title",
			methodSrc("Refrigerate.") + "\nTest.\n\nc.\n\nMethod.\nRefrigerate.\n",
			diagnostics.ErrB005,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.Build(mustParse(t, tc.src))
			if err == nil {
				t.Fatal("expected a build error")
			}
			diag, ok := err.(*diagnostics.DiagnosticError)
			if !ok {
				t.Fatalf("expected DiagnosticError, got %T", err)
			}
			if diag.Code != tc.wantCode {
				t.Errorf("code = %s, want %s (%s)", diag.Code, tc.wantCode, diag)
			}
		})
	}
}

func TestFirstRecipeIsMain(t *testing.T) {
	src := "Alpha.\n\nc.\n\nMethod.\nRefrigerate.\n\nBeta.\n\nc.\n\nMethod.\nRefrigerate.\n"
	prog, err := builder.Build(mustParse(t, src))
	if err != nil {
		t.Fatalf("build failed: %s", err)
	}
	if prog.Main != "alpha" {
		t.Errorf("main = %q, want alpha", prog.Main)
	}
	if len(prog.Recipes) != 2 {
		t.Errorf("recipes = %d, want 2", len(prog.Recipes))
	}
	if prog.Recipes["beta"] == nil {
		t.Error("recipe table is missing beta")
	}
}

func TestCallTargetsResolveAcrossRecipes(t *testing.T) {
	src := "Alpha.\n\nc.\n\nMethod.\nServe with Beta.\n\nBeta.\n\nc.\n\nMethod.\nRefrigerate.\n"
	if _, err := builder.Build(mustParse(t, src)); err != nil {
		t.Fatalf("build failed: %s", err)
	}
}
