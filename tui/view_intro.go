package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/njyeung/termvid/player"
)

var logo = []string{
	" _                            _     _ ",
	"| |_ ___ _ __ _ __ ___ __   _(_) __| |",
	"| __/ _ \\ '__| '_ ` _ \\\\ \\ / / |/ _` |",
	"| ||  __/ |  | | | | | |\\ V /| | (_| |",
	" \\__\\___|_|  |_| |_| |_| \\_/ |_|\\__,_|",
}

func (m Model) viewIntro() string {
	var b strings.Builder
	b.WriteString(logoStyle.Render(strings.Join(logo, "\n")))
	b.WriteString("\n\n")

	for _, row := range infoRows(m.intro) {
		b.WriteString(labelStyle.Render(row[0]))
		b.WriteString(valueStyle.Render(row[1]))
		b.WriteString("\n")
	}

	if m.intro.Warning != "" {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(m.intro.Warning))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	secs := int(m.remaining.Seconds() + 0.5)
	b.WriteString(fmt.Sprintf("%s Starting in %ds...\n", m.spinner.View(), secs))
	b.WriteString(hintStyle.Render("Press Ctrl+C to stop, Enter to start now"))

	block := b.String()
	if m.width == 0 || m.height == 0 {
		return "\n" + block + "\n"
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

func infoRows(in Intro) [][2]string {
	info := in.Info
	rows := [][2]string{
		{"File", in.Name},
		{"Resolution", fmt.Sprintf("%dx%d", info.Width, info.Height)},
		{"Duration", player.FormatTime(info.Duration)},
		{"Frame rate", fmt.Sprintf("%.2f fps", info.FPS)},
		{"Quality", in.Quality.String()},
	}

	audio := "off"
	if in.Audio != "" {
		audio = in.Audio
	}
	rows = append(rows, [2]string{"Audio", audio})

	if in.Subtitle != "" {
		rows = append(rows, [2]string{"Subtitles", in.Subtitle})
	}
	return rows
}
