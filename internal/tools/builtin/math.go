// Package builtin provides the pure, dependency-free tool sets that ship
// with maestro: arithmetic under the "math" scope and text operations under
// the "string" scope. Heavier capabilities (web search, code execution)
// are expected to be registered by the embedding application.
package builtin

import (
	"context"
	"fmt"
	"math"

	"github.com/tobiasmd/maestro/internal/tools"
)

// RegisterMath adds the arithmetic toolset under the given scope. An
// empty scope registers the tools into the global unscoped set.
func RegisterMath(b *tools.Builder, scope string) {
	b.Register(scope, tools.NewFunc("add", "Adds two numbers together.", func(ctx context.Context, args []any) (any, error) {
		a, b, err := twoNumbers("add", args)
		if err != nil {
			return nil, err
		}
		return a + b, nil
	}))

	b.Register(scope, tools.NewFunc("subtract", "Subtracts the second number from the first.", func(ctx context.Context, args []any) (any, error) {
		a, b, err := twoNumbers("subtract", args)
		if err != nil {
			return nil, err
		}
		return a - b, nil
	}))

	b.Register(scope, tools.NewFunc("multiply", "Multiplies two numbers.", func(ctx context.Context, args []any) (any, error) {
		a, b, err := twoNumbers("multiply", args)
		if err != nil {
			return nil, err
		}
		return a * b, nil
	}))

	b.Register(scope, tools.NewFunc("divide", "Divides the first number by the second.", func(ctx context.Context, args []any) (any, error) {
		a, b, err := twoNumbers("divide", args)
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return nil, fmt.Errorf("divide: division by zero")
		}
		return a / b, nil
	}))

	b.Register(scope, tools.NewFunc("power", "Raises a number to the power of another number.", func(ctx context.Context, args []any) (any, error) {
		a, b, err := twoNumbers("power", args)
		if err != nil {
			return nil, err
		}
		return math.Pow(a, b), nil
	}))

	b.Register(scope, tools.NewFunc("factorial", "Computes the factorial of a non-negative integer.", func(ctx context.Context, args []any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("factorial: expected 1 argument, got %d", len(args))
		}
		n, err := asNumber("factorial", args[0])
		if err != nil {
			return nil, err
		}
		if n < 0 || n != math.Trunc(n) {
			return nil, fmt.Errorf("factorial: expected a non-negative integer, got %v", args[0])
		}
		if n > 170 {
			return nil, fmt.Errorf("factorial: %v overflows", args[0])
		}
		result := float64(1)
		for i := float64(2); i <= n; i++ {
			result *= i
		}
		return result, nil
	}))
}

// twoNumbers coerces a two-argument numeric call.
func twoNumbers(tool string, args []any) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%s: expected 2 arguments, got %d", tool, len(args))
	}
	a, err := asNumber(tool, args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := asNumber(tool, args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// asNumber coerces one argument to float64. JSON decoding yields float64 for
// all numbers; int and float32 are accepted for results fed back through the
// previous-result sentinel.
func asNumber(tool string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("%s: expected a number, got %T", tool, v)
	}
}
