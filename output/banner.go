package output

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
)

// tagline describes what a guardrail run actually verifies — printed
// alongside the version/license banner so a `check` invoked in a TTY shows
// what it is about to do, not just what it's called.
const tagline = "PHP call-graph reachability and paired-call verification"

// BannerOptions configures the startup banner display.
type BannerOptions struct {
	ShowBanner  bool // Show ASCII art logo
	ShowVersion bool // Show version information
	ShowLicense bool // Show license information
}

// DefaultBannerOptions returns default banner configuration.
func DefaultBannerOptions() BannerOptions {
	return BannerOptions{
		ShowBanner:  true,
		ShowVersion: true,
		ShowLicense: true,
	}
}

// PrintBanner displays the guardrail logo and run information. The tagline
// only prints alongside version or license info — with both suppressed
// only the logo (when ShowBanner is set) and a trailing blank line are
// written.
func PrintBanner(w io.Writer, version string, opts BannerOptions) {
	if w == nil {
		return
	}

	if !opts.ShowBanner {
		writeCompactInfo(w, version, opts)
		return
	}

	fmt.Fprintln(w, GetASCIILogo())
	writeCompactInfo(w, version, opts)
}

func writeCompactInfo(w io.Writer, version string, opts BannerOptions) {
	if opts.ShowVersion {
		fmt.Fprintf(w, "Version: %s\n", version)
	}
	if opts.ShowLicense {
		fmt.Fprintln(w, "License: AGPL-3.0")
	}
	if opts.ShowVersion || opts.ShowLicense {
		fmt.Fprintf(w, "%s | https://guardrail.dev\n", tagline)
	}
	fmt.Fprintln(w)
}

// GetASCIILogo generates the ASCII art logo for "Guardrail".
func GetASCIILogo() string {
	// Use "standard" font for compact output
	fig := figure.NewFigure("Guardrail", "standard", true)
	return fig.String()
}

// GetCompactBanner returns a single-line banner for non-TTY output.
func GetCompactBanner(version string) string {
	return fmt.Sprintf("Guardrail v%s | %s | https://guardrail.dev", version, tagline)
}

// ShouldShowBanner determines if banner should be displayed.
func ShouldShowBanner(isTTY bool, noBannerFlag bool) bool {
	// Never show if --no-banner is set
	if noBannerFlag {
		return false
	}
	// Show full banner only in TTY
	return isTTY
}
