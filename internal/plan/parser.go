// Package plan converts raw LLM output into structured plans. Model output
// is adversarial: despite instructions it may wrap JSON in prose or markdown
// fences, so parsing is maximally permissive while still rejecting genuinely
// malformed text.
package plan

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tobiasmd/maestro/pkg/models"
)

// ParseError indicates that no tool-call array could be recovered from the
// raw LLM text after all fallback strategies. Raw carries the full response
// for diagnostics.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	preview := e.Raw
	if len(preview) > 500 {
		preview = preview[:500] + "... (truncated)"
	}
	return fmt.Sprintf("no valid JSON array found in response (got %d chars): %q", len(e.Raw), preview)
}

// fencedArrayRe matches a markdown code block (language tag optional) whose
// body starts with an array literal.
var fencedArrayRe = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(\\[.*?\\])\\s*```")

// Parse converts raw LLM text into an ordered tool-call plan.
//
// Strategies, in priority order: direct parse of the whole text, array
// inside a fenced code block, first balanced top-level array literal found
// anywhere in the text. If all fail, the error is a *ParseError carrying
// the raw text.
func Parse(raw string) ([]models.ToolCall, error) {
	var calls []models.ToolCall
	if err := extractArray(raw, func(data []byte) error {
		decoded, err := decodeCalls(data)
		if err != nil {
			return err
		}
		calls = decoded
		return nil
	}); err != nil {
		return nil, err
	}
	return calls, nil
}

// ParseSteps converts raw LLM text into an ordered list of orchestration
// steps, using the same recovery ladder as Parse.
func ParseSteps(raw string) ([]models.Step, error) {
	var steps []models.Step
	if err := extractArray(raw, func(data []byte) error {
		decoded, err := decodeSteps(data)
		if err != nil {
			return err
		}
		steps = decoded
		return nil
	}); err != nil {
		return nil, err
	}
	return steps, nil
}

// extractArray runs the recovery ladder, calling decode on each candidate
// array literal until one decodes cleanly.
func extractArray(raw string, decode func([]byte) error) error {
	// Strategy 1: the whole text is the array.
	trimmed := strings.TrimSpace(raw)
	if err := decode([]byte(trimmed)); err == nil {
		debugLog("[plan.Parse] direct parse succeeded")
		return nil
	}

	// Strategy 2: array fenced in a markdown code block.
	if m := fencedArrayRe.FindStringSubmatch(raw); m != nil {
		if err := decode([]byte(m[1])); err == nil {
			debugLog("[plan.Parse] extracted array from fenced code block")
			return nil
		}
	}

	// Strategy 3: first balanced top-level array literal in the text.
	for from := 0; from < len(raw); {
		start, end := scanBalancedArray(raw, from)
		if start < 0 {
			break
		}
		if err := decode([]byte(raw[start:end])); err == nil {
			debugLog("[plan.Parse] extracted balanced array from surrounding text at offset %d", start)
			return nil
		}
		from = start + 1
	}

	debugLog("[plan.Parse] all strategies failed (%d chars)", len(raw))
	return &ParseError{Raw: raw}
}

// scanBalancedArray finds the first balanced array literal starting at or
// after from. It honors string literals and escapes so brackets inside
// quoted values do not affect nesting. Returns start and the exclusive end
// offset, or (-1, -1) if none is found.
func scanBalancedArray(s string, from int) (int, int) {
	start := strings.IndexByte(s[from:], '[')
	if start < 0 {
		return -1, -1
	}
	start += from

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 && c == ']' {
				return start, i + 1
			}
		}
	}
	return -1, -1
}

// rawCall mirrors ToolCall with pointer fields so missing keys can be
// distinguished from empty values.
type rawCall struct {
	Tool      *string `json:"tool"`
	Args      *[]any  `json:"args"`
	Reasoning string  `json:"reasoning"`
}

// decodeCalls parses data as a JSON array of tool calls. Every element must
// carry at least a non-empty "tool" and an "args" key.
func decodeCalls(data []byte) ([]models.ToolCall, error) {
	var raw []rawCall
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	calls := make([]models.ToolCall, len(raw))
	for i, rc := range raw {
		if rc.Tool == nil || *rc.Tool == "" {
			return nil, fmt.Errorf("call at index %d has no tool name", i)
		}
		if rc.Args == nil {
			return nil, fmt.Errorf("call %q at index %d has no args", *rc.Tool, i)
		}
		calls[i] = models.ToolCall{
			Tool:      *rc.Tool,
			Args:      *rc.Args,
			Reasoning: rc.Reasoning,
		}
	}
	return calls, nil
}

// rawStep mirrors Step with pointer fields for key-presence checks.
type rawStep struct {
	Agent        *string `json:"agent"`
	Task         *string `json:"task"`
	Dependencies []int   `json:"dependencies"`
}

// decodeSteps parses data as a JSON array of orchestration steps. Every
// element must carry an "agent" and a "task" key.
func decodeSteps(data []byte) ([]models.Step, error) {
	var raw []rawStep
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	steps := make([]models.Step, len(raw))
	for i, rs := range raw {
		if rs.Agent == nil || *rs.Agent == "" {
			return nil, fmt.Errorf("step at index %d has no agent", i)
		}
		if rs.Task == nil {
			return nil, fmt.Errorf("step at index %d has no task", i)
		}
		steps[i] = models.Step{
			Agent:        *rs.Agent,
			Task:         *rs.Task,
			Dependencies: rs.Dependencies,
		}
	}
	return steps, nil
}
