package latex

import (
	"strings"

	"github.com/charmbracelet/postfmt/utils"
	"github.com/dlclark/regexp2"
)

var (
	bracedSuperscript = mustCompile(`\^\{([^}]+)\}`)
	singleSuperscript = mustCompile(`\^([0-9a-zA-Z])`)
	bracedSubscript   = mustCompile(`_\{([^}]+)\}`)
	singleSubscript   = mustCompile(`_([0-9a-zA-Z])`)
	fraction          = mustCompile(`\\frac\{([^}]+)\}\{([^}]+)\}`)
	squareRoot        = mustCompile(`\\sqrt\{([^}]+)\}`)
	nthRoot           = mustCompile(`\\sqrt\[([^\]]+)\]\{([^}]+)\}`)
	command           = mustCompile(`\\([a-zA-Z]+)`)
	textCommand       = mustCompile(`\\(?:text|mathrm)\{([^}]+)\}`)
)

func mustCompile(expr string) *regexp2.Regexp {
	return regexp2.MustCompile(expr, regexp2.None)
}

var spacing = strings.NewReplacer(
	`\,`, " ",
	`\;`, " ",
	`\:`, " ",
	`\!`, "",
	`\ `, " ",
)

// Convert rewrites LaTeX source into its Unicode approximation. The passes
// run in a fixed order: scripts, fractions, roots, Greek letters and symbols,
// function names, then cleanup of whatever is left.
func Convert(src string) string {
	s := scripts(src)

	s = replace(fraction, s, func(m *regexp2.Match) string {
		num, den := utils.Group(m, 1), utils.Group(m, 2)
		if f, ok := fractions[num+"/"+den]; ok {
			return f
		}
		return "(" + num + ")/(" + den + ")"
	})

	s = replace(squareRoot, s, func(m *regexp2.Match) string {
		return "√(" + utils.Group(m, 1) + ")"
	})
	s = replace(nthRoot, s, func(m *regexp2.Match) string {
		return mapScript(utils.Group(m, 1), superscripts) + "√(" + utils.Group(m, 2) + ")"
	})

	s = substitute(s, greek)
	s = substitute(s, symbols)
	s = replace(command, s, func(m *regexp2.Match) string {
		if name := utils.Group(m, 1); functions[name] {
			return name
		}
		return m.String()
	})

	return cleanup(s)
}

func scripts(s string) string {
	s = replace(bracedSuperscript, s, func(m *regexp2.Match) string {
		return mapScript(utils.Group(m, 1), superscripts)
	})
	s = replace(singleSuperscript, s, func(m *regexp2.Match) string {
		return mapScript(utils.Group(m, 1), superscripts)
	})
	s = replace(bracedSubscript, s, func(m *regexp2.Match) string {
		return mapScript(utils.Group(m, 1), subscripts)
	})
	return replace(singleSubscript, s, func(m *regexp2.Match) string {
		return mapScript(utils.Group(m, 1), subscripts)
	})
}

// mapScript maps every rune through table. Unmapped runes pass through, and
// commands such as \alpha are copied verbatim so later passes still see them.
func mapScript(s string, table map[rune]rune) string {
	r := []rune(s)

	var b strings.Builder
	for i := 0; i < len(r); i++ {
		if r[i] == '\\' {
			j := i + 1
			for j < len(r) && isLetter(r[j]) {
				j++
			}
			b.WriteString(string(r[i:j]))
			i = j - 1
			continue
		}
		if m, ok := table[r[i]]; ok {
			b.WriteRune(m)
		} else {
			b.WriteRune(r[i])
		}
	}
	return b.String()
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// substitute replaces whole command names found in table. Matching entire
// names keeps \in from eating the start of \infty.
func substitute(s string, table map[string]string) string {
	return replace(command, s, func(m *regexp2.Match) string {
		if sym, ok := table[utils.Group(m, 1)]; ok {
			return sym
		}
		return m.String()
	})
}

func cleanup(s string) string {
	s = replace(textCommand, s, func(m *regexp2.Match) string { return utils.Group(m, 1) })
	s = spacing.Replace(s)
	s = replace(command, s, func(m *regexp2.Match) string {
		name := utils.Group(m, 1)
		if sp, ok := spacingCommands[name]; ok {
			return sp
		}
		return name
	})
	return strings.NewReplacer("{", "", "}", "").Replace(s)
}

// replace applies fn to every match of re. On a matcher error the input is
// returned unchanged.
func replace(re *regexp2.Regexp, s string, fn func(*regexp2.Match) string) string {
	out, err := re.ReplaceFunc(s, func(m regexp2.Match) string { return fn(&m) }, -1, -1)
	if err != nil {
		return s
	}
	return out
}
