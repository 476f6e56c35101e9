package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders structure headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleValue       = lipgloss.NewStyle().Foreground(colorWhite)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder      = lipgloss.NewStyle().Foreground(colorDim)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFresh       = lipgloss.NewStyle().Foreground(colorGray)
)

// statusKind is one kind of status line, drawn as a colored icon.
type statusKind struct {
	icon  string
	style lipgloss.Style
	body  *lipgloss.Style // optional style for the message itself
}

var (
	warningBody = lipgloss.NewStyle().Foreground(colorYellow)

	statusSuccess = statusKind{"✓", lipgloss.NewStyle().Foreground(colorGreen), nil}
	statusError   = statusKind{"✗", lipgloss.NewStyle().Foreground(colorRed), nil}
	statusWarning = statusKind{"!", lipgloss.NewStyle().Foreground(colorYellow), &warningBody}
	statusInfo    = statusKind{"›", lipgloss.NewStyle().Foreground(colorGray), nil}
)

// out receives everything the commands print for the user. Logs and the
// spinner go to stderr instead. Tests swap it for a buffer.
var out io.Writer = os.Stdout

func printStatus(k statusKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if k.body != nil {
		msg = k.body.Render(msg)
	}
	fmt.Fprintln(out, k.style.Render(k.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { printStatus(statusSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(statusError, format, args...) }
func printWarning(format string, args ...any) { printStatus(statusWarning, format, args...) }
func printInfo(format string, args ...any)    { printStatus(statusInfo, format, args...) }

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written file path.
func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

// printStats prints "N atoms · M structures · cached|fresh".
func printStats(atoms, structures int, cached bool) {
	source := styleFresh.Render("fresh")
	if cached {
		source = styleCached.Render("cached")
	}
	sep := StyleDim.Render(" · ")
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d atoms", atoms)),
		StyleDim.Render(fmt.Sprintf("%d structures", structures)),
		source,
	}
	fmt.Fprintln(out, "  "+strings.Join(parts, sep))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(out, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(out) }
