package rendering

import "strings"

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	"\u00a0", `~`,
	"\r\n", " ",
	"\n", " ",
)

// EscapeLaTeX escapes the characters LaTeX treats specially (\ { } $ & % # ^ _ ~).
// Non-breaking spaces become ties and line breaks become spaces.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}
	return latexReplacer.Replace(text)
}
