package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/ivlev/adreel/internal/composition"
)

// Timeline describes a composition as markdown: its windows, the frames no
// window covers, overlapping windows and the audio handed to the encoder.
func Timeline(name string, c *composition.Composition) string {
	s := c.Settings()
	tl := c.Timeline()
	seconds := func(frame int) string { return fmt.Sprintf("%.2f", float64(frame)/float64(s.FPS)) }

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintf(&b, "%dx%d @ %d fps, %d frames (%s s), background `%s`\n\n",
		s.Width, s.Height, s.FPS, s.DurationInFrames, seconds(s.DurationInFrames), s.Background)

	b.WriteString("| # | Scene | Start | End | Frames | Seconds |\n")
	b.WriteString("|--:|-------|------:|----:|-------:|--------:|\n")
	for i, w := range tl.Windows() {
		fmt.Fprintf(&b, "| %d | %s | %d | %d | %d | %s-%s |\n",
			i+1, w.Scene, w.Start, w.End(), w.Duration, seconds(w.Start), seconds(w.End()))
	}

	b.WriteString("\n## Gaps\n\n")
	gaps := tl.Gaps(s.DurationInFrames)
	if len(gaps) == 0 {
		b.WriteString("None.\n")
	}
	for _, g := range gaps {
		fmt.Fprintf(&b, "- frames %d-%d (%d frames, background only)\n", g.Start, g.End-1, g.End-g.Start)
	}

	b.WriteString("\n## Overlaps\n\n")
	overlaps := tl.Overlaps()
	if len(overlaps) == 0 {
		b.WriteString("None.\n")
	}
	windows := tl.Windows()
	for _, o := range overlaps {
		fmt.Fprintf(&b, "- %s (#%d) is drawn over %s (#%d)\n", windows[o[1]].Scene, o[1]+1, windows[o[0]].Scene, o[0]+1)
	}

	b.WriteString("\n## Audio\n\n")
	audio := c.Audio()
	if len(audio) == 0 {
		b.WriteString("None.\n")
	}
	for _, a := range audio {
		fmt.Fprintf(&b, "- `%s` at volume %.2f from frame %d\n", a.Src, a.Volume, a.StartFrame)
	}
	return b.String()
}

// Print writes markdown to f, styled with glamour when f is a terminal.
func Print(f *os.File, markdown string) error {
	return Write(f, markdown, term.IsTerminal(int(f.Fd())))
}

// Write writes markdown to w, styled when styled is set.
func Write(w io.Writer, markdown string, styled bool) error {
	if !styled {
		_, err := io.WriteString(w, markdown)
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(markdown)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
