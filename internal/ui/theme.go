package ui

import (
	"github.com/gdamore/tcell/v2"
)

// Theme defines the color scheme of the TUI.
var Theme = struct {
	Primary tcell.Color
	Success tcell.Color
	Warning tcell.Color
	Error   tcell.Color

	Text    tcell.Color
	TextDim tcell.Color

	Background tcell.Color
	Border     tcell.Color
}{
	Primary: tcell.ColorBlue,
	Success: tcell.ColorGreen,
	Warning: tcell.ColorYellow,
	Error:   tcell.ColorRed,

	Text:    tcell.ColorWhite,
	TextDim: tcell.ColorGray,

	Background: tcell.ColorBlack,
	Border:     tcell.ColorGray,
}

// TView color tags
const (
	TagLabel   = "[yellow]"
	TagValue   = "[white]"
	TagSuccess = "[green]"
	TagError   = "[red]"
	TagMuted   = "[gray]"
	TagReset   = "[-]"
)

// Panel titles (with padding for borders)
const (
	PanelStatus   = " Status "
	PanelProgress = " Progress "
	PanelLog      = " Log "
)

// HintsRunning is shown in the footer while a run is in progress.
const HintsRunning = "Ctrl-C cancel after the current table"

// HintsCancelling replaces it once a cancel was requested.
const HintsCancelling = "cancelling, Ctrl-C again to quit now"
