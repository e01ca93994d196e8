package rules

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// exprEnv builds the environment an Expr condition evaluates against.
// Field names are stable: rule packs reference them directly.
func exprEnv(f Facts) map[string]any {
	return map[string]any{
		"name":       f.Name,
		"actorType":  string(f.Type),
		"petType":    f.PetType,
		"isSpouse":   f.IsSpouse,
		"isDateable": f.IsDateable,
		"isBaby":     f.IsBaby,
		"friendship": f.Friendship,
		"season":     f.Season,
		"weather":    f.Weather,
	}
}

// Compile compiles the condition's optional Expr into bytecode.
// Called once at rule-pack load time; a condition without an expression
// compiles to a no-op. Returns an error for invalid expressions so the
// loader can reject the pack.
func (c *Condition) Compile() error {
	if c == nil || c.Expr == "" {
		return nil
	}
	program, err := expr.Compile(c.Expr,
		expr.Env(exprEnv(Facts{})),
		expr.AsBool(),
	)
	if err != nil {
		return fmt.Errorf("compile condition expr %q: %w", c.Expr, err)
	}
	c.program = program
	return nil
}

// evalExpr runs a compiled expression against the fact snapshot.
// An uncompiled or failing expression fails closed.
func evalExpr(c *Condition, facts Facts) bool {
	if c.program == nil {
		slog.Warn("condition expr was never compiled, treating rule as non-matching",
			"expr", c.Expr)
		return false
	}
	out, err := vm.Run(c.program, exprEnv(facts))
	if err != nil {
		slog.Warn("condition expr failed, treating rule as non-matching",
			"expr", c.Expr, "error", err)
		return false
	}
	match, ok := out.(bool)
	return ok && match
}
