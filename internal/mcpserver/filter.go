package mcpserver

import (
	"fmt"
	"strings"
)

// parseToolList splits a comma-separated string into a deduplicated, trimmed
// list of tool names. Empty entries are removed and order is preserved
// (first occurrence wins on duplicates).
func parseToolList(csv string) []string {
	if csv == "" {
		return nil
	}

	parts := strings.Split(csv, ",")
	seen := make(map[string]struct{})
	var result []string

	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}

	return result
}

// filterTools applies include or exclude filtering to the tool definitions
// before registration.
//
// Rules:
//   - Include mode: only named tools are registered. An unknown name is an
//     error, with a suggestion when one is close (Levenshtein <= 3).
//   - Exclude mode: named tools are removed. Excluding everything is an
//     error.
//   - Both empty: all tools pass through.
func filterTools(defs []toolDef, include, exclude []string) ([]toolDef, error) {
	if len(include) > 0 && len(exclude) > 0 {
		return nil, fmt.Errorf("include and exclude tool filters cannot be combined")
	}
	if len(include) == 0 && len(exclude) == 0 {
		return defs, nil
	}

	byName := make(map[string]toolDef, len(defs))
	available := make([]string, 0, len(defs))
	for _, d := range defs {
		byName[d.tool.Name] = d
		available = append(available, d.tool.Name)
	}

	if len(include) > 0 {
		var result []toolDef
		for _, name := range include {
			d, ok := byName[name]
			if !ok {
				msg := fmt.Sprintf("unknown tool '%s'. Available tools: %s",
					name, strings.Join(available, ", "))
				if suggestion := suggestTool(name, available); suggestion != "" {
					msg += fmt.Sprintf(" Did you mean '%s'?", suggestion)
				}
				return nil, fmt.Errorf("%s", msg)
			}
			result = append(result, d)
		}
		return result, nil
	}

	excludeSet := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excludeSet[name] = struct{}{}
	}

	var result []toolDef
	for _, d := range defs {
		if _, skip := excludeSet[d.tool.Name]; !skip {
			result = append(result, d)
		}
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("all tools excluded, nothing to serve")
	}
	return result, nil
}

// suggestTool finds the closest known tool name. Returns "" when nothing is
// within an edit distance of 3.
func suggestTool(name string, available []string) string {
	bestDist := -1
	bestName := ""

	for _, t := range available {
		d := levenshtein(name, t)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			bestName = t
		}
	}

	if bestDist >= 0 && bestDist <= 3 {
		return bestName
	}
	return ""
}

// levenshtein computes the edit distance between two strings with the
// two-row dynamic programming form. Case-sensitive.
func levenshtein(a, b string) int {
	la := len(a)
	lb := len(b)

	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)

	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			ins := prev[j] + 1
			del := curr[j-1] + 1
			sub := prev[j-1] + cost

			m := ins
			if del < m {
				m = del
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}

	return prev[lb]
}
