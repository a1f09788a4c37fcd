package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/mtaka/STN-Core/pkg/units"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

func displayStructuralError(serr *units.StructuralError) {
	fmt.Print("\n-- ")
	ErrorStyleBG.Print("Structural Error")

	label := fmt.Sprintf("statement %d", serr.Statement+1)
	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}
	dashCount := bannerLen - len(label) - len("Structural Error") - 1
	if dashCount < 1 {
		dashCount = 1
	}
	fmt.Print(" " + strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(label)

	fmt.Println(serr.Message)
	if serr.Unit() != "" {
		fmt.Print("  at ")
		ErrorColorFG.Println(serr.Unit())
	}
	fmt.Println()
}

func displayHeader(version, target string) {
	fmt.Print("stn ")
	InfoColorFG.Print("v" + version)
	fmt.Print(" -- target: ")
	InfoColorFG.Println(target)
}

// phaseSpinner stores the current phase spinner
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Evaluating")

func padPhase(phase string) string {
	pad := maxPhaseLength - len(phase) + 2
	if pad < 1 {
		pad = 1
	}
	return phase + strings.Repeat(" ", pad)
}

func displayBeginPhase(phase string) {
	displayEndPhase(true)

	currentPhase = phase
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner.Start(phase + "...")
	phaseStartTime = time.Now()
}

func displayEndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}
	if success {
		phaseSpinner.Success(
			padPhase(currentPhase),
			fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()),
		)
	} else {
		phaseSpinner.Fail(padPhase(currentPhase))
	}
	phaseSpinner = nil
}

func displayFinished(success bool, errorCount, warningCount int, outputPath string) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")
	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Print(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Print(" warnings)")
	}

	if success && outputPath != "" {
		fmt.Print(" -> ")
		InfoColorFG.Print(outputPath)
	}
	fmt.Println()
}
