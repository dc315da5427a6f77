package manifest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// tomlListAdapter edits a string array inside a TOML table. It backs both the
// cargo workspace manifest ([workspace] members) and the uv workspace manifest
// ([tool.uv.workspace] members). Reads go through a real TOML parse; the
// replacement is a textual splice of the array block so that comments,
// dependency pins, and formatting elsewhere in the file survive untouched.
type tomlListAdapter struct {
	table []string
	key   string
}

func (a *tomlListAdapter) header() string {
	return "[" + strings.Join(a.table, ".") + "]"
}

func (a *tomlListAdapter) Members(path string, doc []byte) ([]string, error) {
	var parsed map[string]any
	if err := toml.Unmarshal(doc, &parsed); err != nil {
		return nil, err
	}

	node := any(parsed)
	for _, step := range a.table {
		table, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s not found", a.header())
		}
		node, ok = table[step]
		if !ok {
			return nil, fmt.Errorf("%s not found", a.header())
		}
	}

	table, ok := node.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s not found", a.header())
	}
	raw, ok := table[a.key]
	if !ok {
		return nil, fmt.Errorf("%s has no %q key", a.header(), a.key)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s.%s is not an array", a.header(), a.key)
	}

	members := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s.%s contains a non-string entry", a.header(), a.key)
		}
		members = append(members, s)
	}
	return members, nil
}

func (a *tomlListAdapter) ReplaceMembers(path string, doc []byte, members []string) ([]byte, error) {
	lines := strings.SplitAfter(string(doc), "\n")

	headerIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == a.header() {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("%s not found", a.header())
	}

	keyRe := regexp.MustCompile(`^[ \t]*` + regexp.QuoteMeta(a.key) + `[ \t]*=`)
	start := -1
	for i := headerIdx + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if strings.HasPrefix(trimmed, "[") {
			break // next table
		}
		if keyRe.MatchString(lines[i]) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%s has no %q key", a.header(), a.key)
	}

	end, err := arrayEnd(lines, start)
	if err != nil {
		return nil, err
	}

	lead := leadingWhitespace(lines[start])
	indent := lead + "    "
	if end > start {
		if elem := leadingWhitespace(lines[start+1]); strings.TrimSpace(lines[start+1]) != "" && elem != "" {
			indent = elem
		}
	}

	var block strings.Builder
	block.WriteString(lead + a.key + " = [\n")
	for _, member := range members {
		block.WriteString(indent + strconv.Quote(member) + ",\n")
	}
	block.WriteString(lead + "]\n")

	var out strings.Builder
	for _, line := range lines[:start] {
		out.WriteString(line)
	}
	out.WriteString(block.String())
	for _, line := range lines[end+1:] {
		out.WriteString(line)
	}
	return []byte(out.String()), nil
}

// arrayEnd finds the line index holding the bracket that closes the array
// starting on lines[start]. Brackets inside quoted strings do not count.
func arrayEnd(lines []string, start int) (int, error) {
	depth := 0
	opened := false
	for i := start; i < len(lines); i++ {
		inString := false
		escaped := false
	chars:
		for _, r := range lines[i] {
			switch {
			case escaped:
				escaped = false
			case r == '\\' && inString:
				escaped = true
			case r == '"':
				inString = !inString
			case r == '#' && !inString:
				break chars
			case r == '[' && !inString:
				depth++
				opened = true
			case r == ']' && !inString:
				depth--
				if opened && depth == 0 {
					return i, nil
				}
			}
		}
	}
	return 0, fmt.Errorf("unterminated array")
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
