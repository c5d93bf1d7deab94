// Package input turns user-typed amounts into decimals.
//
// Users paste figures from payslips and spreadsheets, so an amount may be a
// plain number, use a decimal comma ("1500,50") or be a small arithmetic
// expression ("1500+200", "(1800-150)*2"). Expressions are restricted to
// digits, + - * / ( ) and dots, and are evaluated as CEL double arithmetic.
// Anything that fails to evaluate falls back to the leading number in the
// text. Results are rounded to cents.
package input

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/cel-go/cel"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

const (
	maxExpressionLen = 256

	// maxPrograms bounds the compiled-program cache.
	maxPrograms = 512
)

var (
	safePattern   = regexp.MustCompile(`^[0-9+\-*/().\s]+$`)
	numberLiteral = regexp.MustCompile(`\d*\.\d+|\d+\.?`)
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// Parser evaluates amount expressions. The most recently used compiled
// programs are cached by expression text; a Parser is safe for concurrent use.
type Parser struct {
	env      *cel.Env
	programs *lru.Cache[string, cel.Program]
}

// NewParser creates a parser with an empty CEL environment.
func NewParser() (*Parser, error) {
	env, err := cel.NewEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create expression environment: %w", err)
	}
	programs, err := lru.New[string, cel.Program](maxPrograms)
	if err != nil {
		return nil, err
	}
	return &Parser{env: env, programs: programs}, nil
}

// Parse evaluates value and rounds the result to cents.
func (p *Parser) Parse(value string) (decimal.Decimal, error) {
	expr := strings.TrimSpace(strings.Replace(value, ",", ".", 1))
	if expr == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", generic.ErrInvalidExpression)
	}
	if len(expr) > maxExpressionLen {
		return decimal.Zero, fmt.Errorf("%w: too long", generic.ErrInvalidExpression)
	}

	if safePattern.MatchString(expr) {
		if f, ok := p.evaluate(expr); ok {
			return generic.Round2(decimal.NewFromFloat(f)), nil
		}
	}

	lead := leadingNumber.FindString(expr)
	if lead == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", generic.ErrInvalidExpression, value)
	}
	f, err := strconv.ParseFloat(lead, 64)
	if err != nil || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: %q", generic.ErrInvalidExpression, value)
	}
	return generic.Round2(decimal.NewFromFloat(f)), nil
}

func (p *Parser) evaluate(expr string) (float64, bool) {
	program, err := p.program(asDoubles(expr))
	if err != nil {
		return 0, false
	}
	out, _, err := program.Eval(map[string]any{})
	if err != nil {
		return 0, false
	}

	var f float64
	switch v := out.Value().(type) {
	case float64:
		f = v
	case int64:
		f = float64(v)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (p *Parser) program(expr string) (cel.Program, error) {
	if cached, ok := p.programs.Get(expr); ok {
		return cached, nil
	}
	ast, issues := p.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	if !ast.OutputType().IsExactType(cel.DoubleType) {
		return nil, fmt.Errorf("expression does not yield a number")
	}
	program, err := p.env.Program(ast)
	if err != nil {
		return nil, err
	}
	p.programs.Add(expr, program)
	return program, nil
}

// asDoubles rewrites integer literals as doubles; CEL has no implicit
// int/double conversion.
func asDoubles(expr string) string {
	return numberLiteral.ReplaceAllStringFunc(expr, func(lit string) string {
		switch {
		case strings.HasSuffix(lit, "."):
			return lit + "0"
		case !strings.Contains(lit, "."):
			return lit + ".0"
		default:
			return lit
		}
	})
}
