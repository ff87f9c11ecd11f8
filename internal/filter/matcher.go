package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/cel-go/cel"
)

const (
	EngineRegexp = "regexp"
	EngineGlob   = "glob"
	EngineCEL    = "cel"
)

var (
	ErrUnknownEngine      = errors.New("unknown target pattern engine")
	ErrInvalidGlob        = errors.New("invalid glob pattern")
	ErrCELNoBooleanResult = errors.New("CEL expression must return a boolean")
)

// Matcher is the target predicate. [*regexp.Regexp] satisfies it.
type Matcher interface {
	MatchString(target string) bool
}

// MatcherFunc adapts a plain function to [Matcher].
type MatcherFunc func(target string) bool

func (f MatcherFunc) MatchString(target string) bool {
	return f(target)
}

// Parse compiles pattern with the named engine. An empty pattern returns a nil
// Matcher, which disables target filtering.
func Parse(engine, pattern string) (Matcher, error) {
	if pattern == "" {
		return nil, nil //nolint:nilnil
	}

	switch strings.ToLower(engine) {
	case EngineRegexp, "":
		return Regexp(pattern)
	case EngineGlob:
		return Glob(pattern)
	case EngineCEL:
		return CEL(pattern)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, engine)
	}
}

// Regexp compiles expr. Matching is unanchored; use ^ and $ explicitly.
func Regexp(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid target regexp: %w", err)
	}

	return re, nil
}

type globMatcher struct {
	pattern string
}

// Glob returns a Matcher for a shell glob pattern, e.g. "app::*".
func Glob(pattern string) (Matcher, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidGlob, pattern)
	}

	return globMatcher{pattern: pattern}, nil
}

func (g globMatcher) MatchString(target string) bool {
	// pattern is validated in Glob, Match can not fail with ErrBadPattern here.
	matched, _ := doublestar.Match(g.pattern, target)

	return matched
}

func (g globMatcher) String() string {
	return g.pattern
}

type celMatcher struct {
	expr string
	prg  cel.Program
}

// CEL compiles a boolean CEL expression evaluated against the variable target,
// e.g. target.startsWith("app::").
func CEL(expr string) (Matcher, error) {
	env, err := cel.NewEnv(
		cel.Variable("target", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile CEL expression: %w", issues.Err())
	}

	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, ErrCELNoBooleanResult
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program: %w", err)
	}

	return celMatcher{expr: expr, prg: prg}, nil
}

func (c celMatcher) MatchString(target string) bool {
	result, _, err := c.prg.Eval(map[string]any{
		"target": target,
	})
	if err != nil {
		return false
	}

	matched, ok := result.Value().(bool)

	return ok && matched
}

func (c celMatcher) String() string {
	return c.expr
}
