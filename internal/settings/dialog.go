package settings

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roboco-io/img2md/internal/ir"
)

// Dialog asks for the options in an interactive terminal form.
// Overrides are applied to the request defaults before the form opens.
type Dialog struct {
	In        io.Reader // nil means the program's stdin
	Out       io.Writer // nil means the program's stdout
	Overrides Overrides
}

func (d Dialog) Confirm(ctx context.Context, req Request) (ir.InsertOptions, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if d.In != nil {
		opts = append(opts, tea.WithInput(d.In))
	}
	if d.Out != nil {
		opts = append(opts, tea.WithOutput(d.Out))
	}

	req.Defaults = d.Overrides.Apply(req.Defaults)
	final, err := tea.NewProgram(newForm(req), opts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return ir.InsertOptions{}, ctx.Err()
		}
		return ir.InsertOptions{}, fmt.Errorf("settings dialog: %w", err)
	}

	f, ok := final.(form)
	if !ok || !f.confirmed {
		return ir.InsertOptions{}, ir.ErrUserCancelled
	}
	return f.opts, nil
}

type field int

const (
	fieldName field = iota
	fieldDir
	fieldWhite
	fieldRound
	fieldScale
	fieldInline
	fieldCount
)

const (
	scaleStep = 5
	minScale  = 1
	maxScale  = 1000
)

// form is the bubbletea model behind Dialog.
type form struct {
	req       Request
	opts      ir.InsertOptions
	focus     field
	confirmed bool
	cancelled bool
	errMsg    string
}

func newForm(req Request) form {
	opts := req.Defaults
	if opts.ScalePercent <= 0 {
		opts.ScalePercent = ir.NoScale
	}
	return form{req: req, opts: opts, focus: fieldName}
}

func (f form) Init() tea.Cmd {
	return nil
}

func (f form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}
	f.errMsg = ""

	switch key.String() {
	case "ctrl+c", "esc":
		f.cancelled = true
		return f, tea.Quit
	case "enter":
		if err := f.opts.Validate(); err != nil {
			f.errMsg = err.Error()
			return f, nil
		}
		f.confirmed = true
		return f, tea.Quit
	case "tab", "down":
		f.move(1)
		return f, nil
	case "shift+tab", "up":
		f.move(-1)
		return f, nil
	}

	switch f.focus {
	case fieldName:
		f.opts.ImageName = edit(f.opts.ImageName, key)
	case fieldDir:
		f.opts.DirectoryPattern = edit(f.opts.DirectoryPattern, key)
	case fieldWhite:
		if isToggle(key) {
			f.opts.WhiteAsTransparent = !f.opts.WhiteAsTransparent
		}
	case fieldRound:
		if isToggle(key) {
			f.opts.RoundCorners = !f.opts.RoundCorners
		}
	case fieldInline:
		if isToggle(key) {
			f.opts.Inline = !f.opts.Inline
		}
	case fieldScale:
		switch key.String() {
		case "left", "-":
			f.setScale(f.opts.ScalePercent - scaleStep)
		case "right", "+":
			f.setScale(f.opts.ScalePercent + scaleStep)
		case "backspace":
			f.setScale(f.opts.ScalePercent / 10)
		default:
			if key.Type == tea.KeyRunes && len(key.Runes) == 1 && key.Runes[0] >= '0' && key.Runes[0] <= '9' {
				f.setScale(f.opts.ScalePercent*10 + int(key.Runes[0]-'0'))
			}
		}
	}
	return f, nil
}

// move advances the focus, skipping the directory field while inlining.
func (f *form) move(delta int) {
	for i := 0; i < int(fieldCount); i++ {
		f.focus = field((int(f.focus) + delta + int(fieldCount)) % int(fieldCount))
		if f.focus != fieldDir || !f.opts.Inline {
			return
		}
	}
}

func (f *form) setScale(v int) {
	if v < minScale {
		v = minScale
	}
	if v > maxScale {
		v = maxScale
	}
	f.opts.ScalePercent = v
}

func isToggle(key tea.KeyMsg) bool {
	s := key.String()
	return s == " " || s == "space" || s == "x"
}

func edit(s string, key tea.KeyMsg) string {
	switch key.Type {
	case tea.KeyBackspace:
		r := []rune(s)
		if len(r) == 0 {
			return s
		}
		return string(r[:len(r)-1])
	case tea.KeySpace:
		return s + " "
	case tea.KeyRunes:
		return s + string(key.Runes)
	}
	return s
}

func (f form) View() string {
	var sb strings.Builder

	sb.WriteString("Paste Image Settings\n\n")
	fmt.Fprintf(&sb, "  source: %d x %d   output: %s\n\n",
		f.req.Width, f.req.Height, ProjectedSize(f.req.Width, f.req.Height, f.opts.ScalePercent))

	dir := f.opts.DirectoryPattern
	if f.opts.Inline {
		dir += "  (inline)"
	}

	rows := []struct {
		f    field
		text string
	}{
		{fieldName, fmt.Sprintf("Name       [%s]", f.opts.ImageName)},
		{fieldDir, fmt.Sprintf("Directory  [%s]", dir)},
		{fieldWhite, checkbox(f.opts.WhiteAsTransparent) + " White as transparent"},
		{fieldRound, checkbox(f.opts.RoundCorners) + fmt.Sprintf(" Round corners (%dpx)", f.opts.CornerRadius)},
		{fieldScale, fmt.Sprintf("Scale      < %d%% >", f.opts.ScalePercent)},
		{fieldInline, checkbox(f.opts.Inline) + " Inline image (base64)"},
	}
	for _, r := range rows {
		cursor := "  "
		if r.f == f.focus {
			cursor = "> "
		}
		sb.WriteString(cursor + r.text + "\n")
	}

	if f.errMsg != "" {
		sb.WriteString("\n  " + f.errMsg + "\n")
	}
	sb.WriteString("\nenter confirm | esc cancel | tab move | space toggle | left/right scale\n")
	return sb.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}
