// Package engine evaluates small Lisp scripts against the cartography
// value types. It wraps zygomys in a sandboxed environment and exposes
// points and compass directions as builtins, so puzzle scratch work can
// be written as a short expression and evaluated from a string.
package engine

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/cartography/pkg/cartography"
	zygo "github.com/glycerine/zygomys/zygo"
	"go.uber.org/zap"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int // 1-based; 0 when zygomys reports no position
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result is the outcome of a successful evaluation.
type Result struct {
	// Value is the printed form of the last expression, empty when the
	// source contained no expressions.
	Value string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for evaluation diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTimeout overrides EvalTimeout for this engine.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// Engine wraps the zygomys interpreter. It is safe for concurrent use;
// each call to Evaluate creates a fresh sandboxed environment.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	logger  *zap.Logger
	timeout time.Duration
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:  zap.NewNop(),
		timeout: EvalTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs Lisp source code and returns the printed value of the
// last expression.
//
// Return semantics:
//   - On success: returns result + nil errors + nil error
//   - On parse/eval failure: returns nil result + eval errors + nil error
//   - On fatal failure (timeout, panic, coordinate overflow): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	log := e.logger.With(zap.Uint64("generation", gen))
	log.Debug("evaluating source", zap.Int("bytes", len(source)))

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, evalErrs, err := e.evaluate(source)
		ch <- evalResult{result: res, errors: evalErrs, err: err}
	}()

	res, evalErrs, err := waitWithTimeout(ch, gen, e.timeout, &e.mu, &e.generation)
	switch {
	case err != nil:
		log.Warn("evaluation failed", zap.Error(err))
	case len(evalErrs) > 0:
		log.Debug("evaluation produced errors", zap.Int("count", len(evalErrs)), zap.String("first", evalErrs[0].Message))
	}
	return res, evalErrs, err
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Result, []EvalError, error) {
	// Empty source is a valid program with no value.
	if strings.TrimSpace(source) == "" {
		return &Result{}, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	var st evalState
	registerBuiltins(env, &st)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	v, err := env.Run()
	if st.overflow != nil {
		return nil, nil, fmt.Errorf("script overflowed coordinate range: %w", st.overflow)
	}
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	return &Result{Value: printValue(v)}, nil, nil
}

// printValue renders a zygomys value for Result.Value.
func printValue(v zygo.Sexp) string {
	if v == nil || v == zygo.SexpNull {
		return ""
	}
	if s, ok := v.(*zygo.SexpStr); ok {
		return s.S
	}
	return v.SexpString(nil)
}

// IsOverflow reports whether err was caused by a script leaving the
// int64 coordinate range.
func IsOverflow(err error) bool {
	var oe *cartography.OverflowError
	return errors.As(err, &oe)
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
