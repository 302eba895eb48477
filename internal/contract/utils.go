package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/repograde/repograde/schema"
)

// Color variables for console output.
var (
	PlatinumColor = color.New(color.FgCyan, color.Bold)   // top certification band
	GoldColor     = color.New(color.FgYellow, color.Bold) // strong result
	SilverColor   = color.New(color.FgWhite)              // solid result
	BronzeColor   = color.New(color.FgMagenta)            // minimum certification
	NeedsColor    = color.New(color.FgRed, color.Bold)    // below certification
)

// GetColorTierLabel returns a colored certification label for console output.
func GetColorTierLabel(tier schema.CertTier) string {
	switch tier {
	case schema.PlatinumTier:
		return PlatinumColor.Sprint(string(tier))
	case schema.GoldTier:
		return GoldColor.Sprint(string(tier))
	case schema.SilverTier:
		return SilverColor.Sprint(string(tier))
	case schema.BronzeTier:
		return BronzeColor.Sprint(string(tier))
	default:
		return NeedsColor.Sprint(string(tier))
	}
}

// StatusGlyph returns a short marker for a record status in table output.
func StatusGlyph(status schema.Status, useEmojis bool) string {
	if useEmojis {
		switch status {
		case schema.PassStatus:
			return "✅"
		case schema.FailStatus:
			return "❌"
		case schema.SkippedStatus:
			return "⏭️"
		case schema.NotApplicableStatus:
			return "➖"
		default:
			return "⚠️"
		}
	}
	return string(status)
}

// ParseBoolString parses common yes/no style values used by CLI flags.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yes", "true", "1", "on":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes/no, true/false, 1/0 or on/off (received %q)", s)
	}
}

// SelectOutputFile returns the file to write output to.
// An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error to stderr and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning to stderr without disrupting the run.
func LogWarn(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  %s: %v\n", msg, err)
		return
	}
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}
