package access

import (
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/morelia/expodesk/internal/session"
	"github.com/pkg/errors"
)

// Rule is an expression evaluated against the session after the role
// check. The environment exposes role, path and email.
type Rule struct {
	script  string
	program *vm.Program

	compileOnce sync.Once
	compileErr  error
}

func NewRule(script string) *Rule {
	return &Rule{script: script}
}

func (r *Rule) Exec(env map[string]any) (bool, error) {
	program, err := r.getProgram()
	if err != nil {
		return false, errors.WithStack(err)
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return false, errors.WithStack(err)
	}

	allowed, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("unexpected rule '%s' result type '%T', expected boolean", r.script, result)
	}

	return allowed, nil
}

func (r *Rule) getProgram() (*vm.Program, error) {
	r.compileOnce.Do(func() {
		program, err := expr.Compile(r.script, expr.AsBool())
		if err != nil {
			r.compileErr = errors.WithStack(err)
			return
		}

		r.program = program
	})
	if r.compileErr != nil {
		return nil, errors.WithStack(r.compileErr)
	}

	return r.program, nil
}

func (r *Rule) String() string {
	return r.script
}

// PrefixRule binds a rule to every route below a path prefix.
type PrefixRule struct {
	Prefix string
	Rule   *Rule
}

type RuleSet []PrefixRule

// Evaluate runs every rule whose prefix matches the path. All matching
// rules must pass.
func (rs RuleSet) Evaluate(path string, identity *session.Identity) (bool, error) {
	for _, pr := range rs {
		if !strings.HasPrefix(path, pr.Prefix) {
			continue
		}

		env := map[string]any{
			"role":  string(identity.Role),
			"path":  path,
			"email": identity.Email,
		}

		allowed, err := pr.Rule.Exec(env)
		if err != nil {
			return false, errors.WithStack(err)
		}

		if !allowed {
			return false, nil
		}
	}

	return true, nil
}
