package builtin

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/tobiasmd/maestro/internal/tools"
)

// RegisterString adds the text toolset under the given scope. An empty
// scope registers the tools into the global unscoped set.
func RegisterString(b *tools.Builder, scope string) {
	b.Register(scope, tools.NewFunc("word_count", "Calculates the number of words in the given string.", func(ctx context.Context, args []any) (any, error) {
		s, err := oneString("word_count", args)
		if err != nil {
			return nil, err
		}
		return float64(len(strings.Fields(s))), nil
	}))

	b.Register(scope, tools.NewFunc("letter_count", "Calculates the number of alphabetic characters in the given string.", func(ctx context.Context, args []any) (any, error) {
		s, err := oneString("letter_count", args)
		if err != nil {
			return nil, err
		}
		count := 0
		for _, r := range s {
			if unicode.IsLetter(r) {
				count++
			}
		}
		return float64(count), nil
	}))

	b.Register(scope, tools.NewFunc("reverse", "Reverses the given string.", func(ctx context.Context, args []any) (any, error) {
		s, err := oneString("reverse", args)
		if err != nil {
			return nil, err
		}
		runes := []rune(s)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return string(runes), nil
	}))

	b.Register(scope, tools.NewFunc("uppercase", "Converts the given string to upper case.", func(ctx context.Context, args []any) (any, error) {
		s, err := oneString("uppercase", args)
		if err != nil {
			return nil, err
		}
		return strings.ToUpper(s), nil
	}))

	b.Register(scope, tools.NewFunc("concat", "Concatenates all arguments into one string, separated by spaces.", func(ctx context.Context, args []any) (any, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("concat: expected at least 1 argument")
		}
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = render(a)
		}
		return strings.Join(parts, " "), nil
	}))
}

// oneString coerces a single-argument string call. Non-string values are
// rendered, matching the source tools' tolerance for chained numeric results.
func oneString(tool string, args []any) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s: expected 1 argument, got %d", tool, len(args))
	}
	return render(args[0]), nil
}

// render formats any value the way it would appear in a trace.
func render(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		// Drop the trailing .0 for whole numbers.
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%v", x)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}
