// Package fftime renders and parses the converter's HH:MM:SS time tokens.
package fftime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
)

// FormatSeconds converts seconds to the HH:MM:SS form the converter accepts
// for -ss, -t and -to.
func FormatSeconds(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := seconds - float64(hours*3600) - float64(minutes*60)
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, int(secs))
}

// FormatSecondsPrecise keeps two fractional digits, for frame-accurate seeks.
func FormatSecondsPrecise(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := seconds - float64(hours*3600) - float64(minutes*60)
	return fmt.Sprintf("%02d:%02d:%05.2f", hours, minutes, secs)
}

// Format renders a Timecode: Raw verbatim when set, Seconds otherwise.
func Format(t domain.Timecode) string {
	if t.Raw != "" {
		return t.Raw
	}
	return FormatSeconds(t.Seconds)
}

// ParseTimemark converts an HH:MM:SS.ss timemark back into seconds. Returns 0
// for anything that is not three colon-separated fields.
func ParseTimemark(timemark string) float64 {
	parts := strings.Split(timemark, ":")
	if len(parts) != 3 {
		return 0
	}
	hours, err1 := strconv.ParseFloat(parts[0], 64)
	minutes, err2 := strconv.ParseFloat(parts[1], 64)
	seconds, err3 := strconv.ParseFloat(parts[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0
	}
	return hours*3600 + minutes*60 + seconds
}

// FormatSize renders a resolution spec as a -s token. A zero dimension maps
// to the converter's auto sentinel -1. Empty result means no token.
func FormatSize(s domain.SizeSpec) string {
	if s.Raw != "" {
		return s.Raw
	}
	if s.Width == 0 && s.Height == 0 {
		return ""
	}
	w := strconv.Itoa(s.Width)
	if s.Width == 0 {
		w = "-1"
	}
	h := strconv.Itoa(s.Height)
	if s.Height == 0 {
		h = "-1"
	}
	return w + "x" + h
}
