package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// WelcomeInfo contains information to display in the welcome screen.
type WelcomeInfo struct {
	// Model is the chat model identifier
	Model string
	// Tools are the names of the tools the agent can call
	Tools []string
	// Version is the toolchat version string
	Version string
}

// tips is the list of tips to display in the welcome screen.
// A "tip of the day" is selected based on the current date.
var tips = []string{
	"type help to list the available commands",
	"type clear to start a fresh conversation",
	"type history to review the turns of this session",
	"ask for a calculation and the agent will use math_tool",
	"ask about AAPL, GOOGL, MSFT, TSLA, AMZN or META for mock quotes",
	"ask about current events and the agent will search the web",
	"only the last 10 messages are kept as context",
	"set model in ~/.toolchat/config.yaml to try another model",
	"set logLevel: debug in ~/.toolchat/config.yaml for troubleshooting",
	"follow the log with tail -f ~/.toolchat/toolchat.log",
	"press Ctrl+C or Ctrl+D to exit",
}

// ASCII art logo, compact enough for narrow terminals
var logo = []string{
	" _       ",
	"| |_ ___ ",
	"| __/ __|",
	"| || (__ ",
	" \\__\\___|",
}

// tipForDate returns the tip shown for the day containing t.
func tipForDate(t time.Time) string {
	if len(tips) == 0 {
		return ""
	}
	days := t.Unix() / int64(24*time.Hour/time.Second)
	return tips[int(days%int64(len(tips)))]
}

// getTipOfTheDay returns a tip based on the current date.
func getTipOfTheDay() string {
	return tipForDate(time.Now())
}

// RenderWelcome renders the welcome screen to the given writer.
// The welcome screen displays the logo on the left and configuration info on the right.
func RenderWelcome(w io.Writer, info WelcomeInfo, termWidth int) {
	titleStyle := lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	logoStyle := lipgloss.NewStyle().Foreground(ColorYellow)
	labelStyle := lipgloss.NewStyle().Foreground(ColorGray)
	valueStyle := lipgloss.NewStyle().Foreground(ColorYellow)
	dimStyle := lipgloss.NewStyle().Foreground(ColorGray).Italic(true)

	logoWidth := 10
	minGap := 4
	maxInfoWidth := 40

	var infoLines []string
	infoLines = append(infoLines, titleStyle.Render("Tool-calling chat agent"))
	infoLines = append(infoLines, "")

	if info.Version == "dev" {
		infoLines = append(infoLines, labelStyle.Render("version: ")+dimStyle.Render("development"))
	} else if info.Version != "" {
		infoLines = append(infoLines, labelStyle.Render("version: ")+valueStyle.Render(info.Version))
	}

	if info.Model != "" {
		infoLines = append(infoLines, labelStyle.Render("model:   ")+valueStyle.Render(info.Model))
	} else {
		infoLines = append(infoLines, labelStyle.Render("model:   ")+dimStyle.Render("not configured"))
	}

	if len(info.Tools) > 0 {
		infoLines = append(infoLines, labelStyle.Render("tools:   ")+valueStyle.Render(strings.Join(info.Tools, ", ")))
	}

	numLines := len(logo)
	if len(infoLines) > numLines {
		numLines = len(infoLines)
	}

	infoWidth := termWidth - logoWidth - minGap
	if infoWidth > maxInfoWidth {
		infoWidth = maxInfoWidth
	}
	tip := getTipOfTheDay()

	if infoWidth < 20 {
		// Terminal too narrow, just show info without logo
		for _, line := range infoLines {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
		if tip != "" {
			fmt.Fprintln(w, dimStyle.Render("tip: "+tip))
		}
		fmt.Fprintln(w)
		return
	}

	var output strings.Builder
	output.WriteString("\n")

	gap := strings.Repeat(" ", minGap)
	for i := 0; i < numLines; i++ {
		logoLine := strings.Repeat(" ", logoWidth-1)
		if i < len(logo) {
			logoLine = logoStyle.Render(logo[i])
		}

		var infoLine string
		if i < len(infoLines) {
			infoLine = infoLines[i]
		}

		output.WriteString(strings.TrimRight(logoLine+gap+infoLine, " ") + "\n")
	}

	output.WriteString("\n")
	if tip != "" {
		output.WriteString(dimStyle.Render("tip: "+tip) + "\n")
	}
	output.WriteString("\n")

	fmt.Fprint(w, output.String())
}
