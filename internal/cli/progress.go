package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
)

// NewSpinner returns an indeterminate progress indicator for long-running
// phases like oracle consultation.
func NewSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(os.Stderr); err != nil {
				slog.Warn("Failed to write newline after spinner", "error", err)
			}
		}),
	)
}

// FinishSpinner stops a spinner, logging rather than failing on error.
func FinishSpinner(bar *progressbar.ProgressBar) {
	if bar == nil {
		return
	}
	if err := bar.Finish(); err != nil {
		slog.Warn("Failed to finish spinner", "error", err)
	}
}
