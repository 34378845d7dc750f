package analyzer

import (
	"regexp"
	"strings"
)

// The helpers below are a small lexical scanner over balanced-delimiter
// spans. They never evaluate the config and never fail: absent or malformed
// input yields an empty result.

var closers = map[byte]byte{'{': '}', '[': ']', '(': ')'}

// fieldPattern matches `key:`, `"key":` or `'key':` as a property name, not as
// a suffix of another identifier
func fieldPattern(key string) *regexp.Regexp {
	k := regexp.QuoteMeta(key)
	return regexp.MustCompile(`(?:^|[^\w$.])(?:` + k + `|"` + k + `"|'` + k + `')\s*:\s*`)
}

var (
	entryField      = fieldPattern("entry")
	inputField      = fieldPattern("input")
	outputField     = fieldPattern("output")
	pathField       = fieldPattern("path")
	filenameField   = fieldPattern("filename")
	publicPathField = fieldPattern("publicPath")
	rulesField      = fieldPattern("rules")
	testField       = fieldPattern("test")
	useField        = fieldPattern("use")
	loaderField     = fieldPattern("loader")
	optionsField    = fieldPattern("options")
	pluginsField    = fieldPattern("plugins")
	externalField   = fieldPattern("external")
	formatField     = fieldPattern("format")
	fileField       = fieldPattern("file")
	dirField        = fieldPattern("dir")
	nameField       = fieldPattern("name")
	sourcemapField  = fieldPattern("sourcemap")
	importField     = fieldPattern("import")

	quotedRe     = regexp.MustCompile("'([^'\\n]*)'|\"([^\"\\n]*)\"|`([^`]*)`")
	regexBodyRe  = regexp.MustCompile(`^/((?:\\.|[^/\\\n])+)/`)
	pathCallRe   = regexp.MustCompile(`^path\.(?:resolve|join)\s*\(`)
	propertyRe   = regexp.MustCompile(`^\s*(?:["']([^"']+)["']|([\w$]+))\s*:\s*([\s\S]*)$`)
	enabledMapRe = regexp.MustCompile(`^(?:true|["'](?:inline|hidden)["'])`)
)

// fieldValue returns the text following the first `key:` occurrence
func fieldValue(s string, field *regexp.Regexp) (string, bool) {
	loc := field.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	return s[loc[1]:], true
}

// topFieldValue is fieldValue restricted to the least nested `key:`
// occurrence; ties go to the first one
func topFieldValue(s string, field *regexp.Regexp) (string, bool) {
	locs := field.FindAllStringIndex(s, -1)
	if locs == nil {
		return "", false
	}
	best := 0
	depths := depthsAt(s, locs)
	for k, d := range depths {
		if d < depths[best] {
			best = k
		}
	}
	return s[locs[best][1]:], true
}

// depthsAt returns the delimiter depth at the end of each match
func depthsAt(s string, locs [][]int) []int {
	depths := make([]int, len(locs))
	depth, k := 0, 0
	for i := 0; i < len(s) && k < len(locs); {
		for k < len(locs) && locs[k][1] <= i {
			depths[k] = depth
			k++
		}
		if next, skipped := skipNonCode(s, i); skipped {
			i = next
			continue
		}
		switch s[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			if depth > 0 {
				depth--
			}
		}
		i++
	}
	for ; k < len(locs); k++ {
		depths[k] = depth
	}
	return depths
}

// fieldBlock returns the inner text of the delimited value of `key:` when the
// value opens with the given delimiter
func fieldBlock(s string, field *regexp.Regexp, open byte) (string, bool) {
	value, ok := fieldValue(s, field)
	return openBlock(value, ok, open)
}

// topFieldBlock is fieldBlock over the least nested `key:`
func topFieldBlock(s string, field *regexp.Regexp, open byte) (string, bool) {
	value, ok := topFieldValue(s, field)
	return openBlock(value, ok, open)
}

func openBlock(value string, ok bool, open byte) (string, bool) {
	if !ok || value == "" || value[0] != open {
		return "", false
	}
	inner, _, ok := balanced(value, 0)
	return inner, ok
}

// stringField returns the quoted string value of `key:`
func stringField(s string, field *regexp.Regexp) string {
	value, ok := fieldValue(s, field)
	if !ok {
		return ""
	}
	str, _ := leadingString(value)
	return str
}

// leadingString returns the contents of a string literal at the start of s
func leadingString(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	q := s[0]
	if q != '\'' && q != '"' && q != '`' {
		return "", false
	}
	end := skipString(s, 0)
	if end > len(s) || s[end-1] != q || end < 2 {
		return "", false
	}
	return s[1 : end-1], true
}

// quotedStrings returns every string literal in s in textual order
func quotedStrings(s string) []string {
	var out []string
	for _, m := range quotedRe.FindAllStringSubmatch(s, -1) {
		switch {
		case strings.HasPrefix(m[0], "'"):
			out = append(out, m[1])
		case strings.HasPrefix(m[0], "\""):
			out = append(out, m[2])
		default:
			out = append(out, m[3])
		}
	}
	return out
}

// balanced returns the text between s[start] and its matching closer, and
// the index just past the closer. Only the opener's own pair is counted.
func balanced(s string, start int) (string, int, bool) {
	if start >= len(s) {
		return "", start, false
	}
	open := s[start]
	closer, ok := closers[open]
	if !ok {
		return "", start, false
	}

	depth := 0
	for i := start; i < len(s); {
		if next, skipped := skipNonCode(s, i); skipped {
			i = next
			continue
		}
		switch s[i] {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[start+1 : i], i + 1, true
			}
		}
		i++
	}
	return "", len(s), false
}

// topLevelBlocks splits s into its outermost {...} blocks by brace-depth counting
func topLevelBlocks(s string) []string {
	var blocks []string
	depth, start := 0, 0
	for i := 0; i < len(s); {
		if next, skipped := skipNonCode(s, i); skipped {
			i = next
			continue
		}
		switch s[i] {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					blocks = append(blocks, s[start:i+1])
				}
			}
		}
		i++
	}
	return blocks
}

// splitTopLevel splits s on commas that are not nested in any delimiter
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); {
		if next, skipped := skipNonCode(s, i); skipped {
			i = next
			continue
		}
		switch s[i] {
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = appendTrimmed(parts, s[start:i])
				start = i + 1
			}
		}
		i++
	}
	return appendTrimmed(parts, s[start:])
}

func appendTrimmed(parts []string, part string) []string {
	if p := strings.TrimSpace(part); p != "" {
		parts = append(parts, p)
	}
	return parts
}

// stripComments blanks out comments so field lookups never match inside
// them. Line breaks and offsets are preserved.
func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		next, skipped := skipNonCode(s, i)
		if !skipped {
			b.WriteByte(s[i])
			i++
			continue
		}
		if isComment(s, i) {
			for _, c := range []byte(s[i:next]) {
				if c == '\n' {
					b.WriteByte('\n')
				} else {
					b.WriteByte(' ')
				}
			}
		} else {
			b.WriteString(s[i:next])
		}
		i = next
	}
	return b.String()
}

func isComment(s string, i int) bool {
	return s[i] == '/' && i+1 < len(s) && (s[i+1] == '/' || s[i+1] == '*')
}

// skipNonCode jumps over a string literal, comment or regex literal starting at i
func skipNonCode(s string, i int) (int, bool) {
	switch s[i] {
	case '\'', '"', '`':
		return skipString(s, i), true
	case '/':
		if i+1 < len(s) {
			switch s[i+1] {
			case '/':
				if nl := strings.IndexByte(s[i:], '\n'); nl >= 0 {
					return i + nl + 1, true
				}
				return len(s), true
			case '*':
				if end := strings.Index(s[i+2:], "*/"); end >= 0 {
					return i + 2 + end + 2, true
				}
				return len(s), true
			}
		}
		if regexAllowed(s, i) {
			return skipRegex(s, i)
		}
	}
	return i, false
}

// regexAllowed reports whether a slash at i sits where an expression starts,
// so it opens a regex literal rather than a division
func regexAllowed(s string, i int) bool {
	j := i - 1
	for j >= 0 && (s[j] == ' ' || s[j] == '\t' || s[j] == '\r') {
		j--
	}
	if j < 0 || s[j] == '\n' {
		return true
	}
	return strings.IndexByte(":,([{=!&|?;", s[j]) >= 0
}

// skipRegex returns the index just past the regex literal opening at i,
// flags included. A literal not closed on its line is not a regex.
func skipRegex(s string, i int) (int, bool) {
	inClass := false
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if inClass {
				continue
			}
			j++
			for j < len(s) && s[j] >= 'a' && s[j] <= 'z' {
				j++
			}
			return j, true
		case '\n':
			return i, false
		}
	}
	return i, false
}

// skipString returns the index just past the string literal opening at i.
// Unterminated single and double quoted strings end at the line break.
func skipString(s string, i int) int {
	q := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case q:
			return j + 1
		case '\n':
			if q != '`' {
				return j
			}
		}
	}
	return len(s)
}
