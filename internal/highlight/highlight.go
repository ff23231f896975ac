// Package highlight renders file contents as a read-only, line-numbered,
// syntax-highlighted block for the terminal.
package highlight

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Themes is the cycle order used by NextTheme
var Themes = []string{"monokai", "dracula", "nord", "github", "solarized-dark", "friendly"}

const (
	tabWidth  = 4
	gutterSep = "│ "
)

var gutterStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})

// Renderer turns text into styled terminal lines
type Renderer struct {
	theme       string
	style       *chroma.Style
	lineNumbers bool
	wrap        bool
}

// New creates a renderer. Unknown themes fall back to chroma's default style.
func New(theme string, lineNumbers, wrap bool) *Renderer {
	r := &Renderer{lineNumbers: lineNumbers, wrap: wrap}
	r.SetTheme(theme)
	return r
}

// Theme returns the active theme name
func (r *Renderer) Theme() string {
	return r.theme
}

// SetTheme switches the chroma style
func (r *Renderer) SetTheme(name string) {
	r.style = styles.Get(name)
	r.theme = r.style.Name
}

// NextTheme advances to the next entry of Themes and returns its name
func (r *Renderer) NextTheme() string {
	next := Themes[0]
	for i, name := range Themes {
		if name == r.theme {
			next = Themes[(i+1)%len(Themes)]
			break
		}
	}
	r.SetTheme(next)
	return r.theme
}

// LineNumbers reports whether the gutter is drawn
func (r *Renderer) LineNumbers() bool {
	return r.lineNumbers
}

// ToggleLineNumbers flips the gutter on or off
func (r *Renderer) ToggleLineNumbers() {
	r.lineNumbers = !r.lineNumbers
}

// Wrap reports whether long lines are wrapped
func (r *Renderer) Wrap() bool {
	return r.wrap
}

// ToggleWrap flips line wrapping
func (r *Renderer) ToggleWrap() {
	r.wrap = !r.wrap
}

// LanguageFor picks a lexer name from the file name, then the MIME type, then
// the contents. It returns "" when nothing matches.
func LanguageFor(name, mimeType, contents string) string {
	if name != "" {
		if l := lexers.Match(name); l != nil {
			return l.Config().Name
		}
	}
	if mimeType != "" {
		base := strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0])
		if l := lexers.MatchMimeType(base); l != nil {
			return l.Config().Name
		}
	}
	if contents != "" {
		if l := lexers.Analyse(contents); l != nil {
			return l.Config().Name
		}
	}
	return ""
}

type span struct {
	text  string
	style lipgloss.Style
}

// Render highlights text for languageHint. width bounds each output row,
// gutter included; width <= 0 disables wrapping. The text itself is never
// altered apart from tab expansion.
func (r *Renderer) Render(text, languageHint string, width int) string {
	lines := r.tokenLines(text, languageHint)

	digits := len(strconv.Itoa(len(lines)))
	gutterWidth := 0
	if r.lineNumbers {
		gutterWidth = digits + 1 + lipgloss.Width(gutterSep)
	}
	contentWidth := 0
	if r.wrap && width > 0 {
		contentWidth = width - gutterWidth
		if contentWidth < 1 {
			contentWidth = 1
		}
	}

	cache := map[chroma.TokenType]lipgloss.Style{}
	var out strings.Builder
	for i, line := range lines {
		rows := r.layoutLine(line, contentWidth, cache)
		for j, row := range rows {
			if out.Len() > 0 {
				out.WriteByte('\n')
			}
			if r.lineNumbers {
				label := strings.Repeat(" ", digits)
				if j == 0 {
					label = fmt.Sprintf("%*d", digits, i+1)
				}
				out.WriteString(gutterStyle.Render(label + " " + gutterSep))
			}
			for _, s := range row {
				out.WriteString(s.style.Render(s.text))
			}
		}
	}
	return out.String()
}

func (r *Renderer) tokenLines(text, languageHint string) [][]chroma.Token {
	lexer := lexers.Get(languageHint)
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	var tokens []chroma.Token
	iter, err := lexer.Tokenise(nil, text)
	if err != nil {
		tokens = []chroma.Token{{Type: chroma.Text, Value: text}}
	} else {
		tokens = iter.Tokens()
	}

	lines := chroma.SplitTokensIntoLines(tokens)
	for i := range lines {
		lines[i] = trimNewline(lines[i])
	}
	// lexers append a final newline; drop the empty line it produces
	if n := len(lines); n > 1 && lineEmpty(lines[n-1]) {
		lines = lines[:n-1]
	}
	if len(lines) == 0 {
		lines = [][]chroma.Token{nil}
	}
	return lines
}

func trimNewline(line []chroma.Token) []chroma.Token {
	if n := len(line); n > 0 {
		last := line[n-1]
		last.Value = strings.TrimSuffix(strings.TrimSuffix(last.Value, "\n"), "\r")
		line[n-1] = last
	}
	return line
}

func lineEmpty(line []chroma.Token) bool {
	for _, t := range line {
		if t.Value != "" {
			return false
		}
	}
	return true
}

// layoutLine splits one source line into rows no wider than width.
func (r *Renderer) layoutLine(line []chroma.Token, width int, cache map[chroma.TokenType]lipgloss.Style) [][]span {
	rows := [][]span{nil}
	col := 0

	add := func(text string, st lipgloss.Style) {
		if text == "" {
			return
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], span{text: text, style: st})
	}

	for _, tok := range line {
		st := r.tokenStyle(tok.Type, cache)
		value := strings.ReplaceAll(tok.Value, "\t", strings.Repeat(" ", tabWidth))

		if width <= 0 {
			add(value, st)
			continue
		}

		var chunk strings.Builder
		for _, ch := range value {
			w := lipgloss.Width(string(ch))
			if col > 0 && col+w > width {
				add(chunk.String(), st)
				chunk.Reset()
				rows = append(rows, nil)
				col = 0
			}
			chunk.WriteRune(ch)
			col += w
		}
		add(chunk.String(), st)
	}
	return rows
}

func (r *Renderer) tokenStyle(tt chroma.TokenType, cache map[chroma.TokenType]lipgloss.Style) lipgloss.Style {
	if st, ok := cache[tt]; ok {
		return st
	}
	entry := r.style.Get(tt)
	st := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		st = st.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	cache[tt] = st
	return st
}
