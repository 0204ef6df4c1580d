// Package progress incrementally parses the converter's diagnostic stream
// into structured snapshots. The parser is stateful in exactly one respect:
// it remembers the first reported total duration so later lines can carry a
// percent-complete figure.
package progress

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
	"github.com/parth181195/ffmpeg-forge/internal/fftime"
)

var (
	durationRe = regexp.MustCompile(`Duration:\s*(\d{2}):(\d{2}):(\d{2}\.\d{2})`)
	frameRe    = regexp.MustCompile(`frame=\s*(\d+)`)
	fpsRe      = regexp.MustCompile(`fps=\s*([\d.]+)`)
	bitrateRe  = regexp.MustCompile(`bitrate=\s*([\d.]+)kbits/s`)
	sizeRe     = regexp.MustCompile(`size=\s*(\d+)kB`)
	timeRe     = regexp.MustCompile(`time=(\d{2}:\d{2}:\d{2}\.\d{2})`)
	speedRe    = regexp.MustCompile(`speed=\s*([\d.]+)x`)
	videoRe    = regexp.MustCompile(`Video:\s*([^,\s]+)`)
	audioRe    = regexp.MustCompile(`Audio:\s*([^,\s]+)`)
)

// errorPhrases flags lines that look like failures. Advisory only: several
// of these also appear in harmless warnings, so they never drive control
// flow.
var errorPhrases = []string{
	"error",
	"invalid",
	"failed",
	"cannot",
	"unable to",
	"does not contain",
	"no such file",
	"permission denied",
}

// Parser consumes diagnostic lines in arrival order. Not safe for concurrent
// use; each execution owns one.
type Parser struct {
	duration float64
}

// Duration reports the total duration observed so far, 0 when none.
func (p *Parser) Duration() float64 { return p.duration }

// SetDuration primes the total duration, for callers that learned it from a
// probe instead of the stream header.
func (p *Parser) SetDuration(seconds float64) { p.duration = seconds }

// ParseDuration recognizes the stream-header duration line and records the
// total. Returns the parsed seconds and whether the line matched.
func (p *Parser) ParseDuration(line string) (float64, bool) {
	m := durationRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.ParseFloat(m[3], 64)
	total := float64(hours)*3600 + float64(minutes)*60 + seconds
	p.duration = total
	return total, true
}

// ParseProgress recognizes one progress snapshot. A line qualifies only when
// it carries both a time marker and a bitrate token; within a qualifying
// line, frame count and fps are optional, but a record with neither a frame
// count nor a timemark is dropped. Percent is clamped to 100, rounded to two
// decimals, and reported as 0 until a duration has been observed.
func (p *Parser) ParseProgress(line string) (domain.Progress, bool) {
	if !strings.Contains(line, "time=") || !strings.Contains(line, "bitrate=") {
		return domain.Progress{}, false
	}

	var prog domain.Progress

	if m := frameRe.FindStringSubmatch(line); m != nil {
		prog.Frames, _ = strconv.ParseInt(m[1], 10, 64)
	}
	if m := fpsRe.FindStringSubmatch(line); m != nil {
		prog.FPS, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := bitrateRe.FindStringSubmatch(line); m != nil {
		prog.Kbps, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := sizeRe.FindStringSubmatch(line); m != nil {
		prog.SizeKB, _ = strconv.ParseInt(m[1], 10, 64)
	}
	if m := speedRe.FindStringSubmatch(line); m != nil {
		prog.Speed, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := timeRe.FindStringSubmatch(line); m != nil {
		prog.Timemark = m[1]
		if p.duration > 0 {
			current := fftime.ParseTimemark(prog.Timemark)
			percent := math.Min(current/p.duration*100, 100)
			prog.Percent = math.Round(percent*100) / 100
		}
	}

	if prog.Frames == 0 && prog.Timemark == "" {
		return domain.Progress{}, false
	}
	return prog, true
}

// LooksLikeError reports whether a line matches one of the failure phrases,
// case-insensitively.
func LooksLikeError(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range errorPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// ParseCodecInfo pulls the stream codec names out of a stream-description
// line. Either field may be empty.
func ParseCodecInfo(line string) (videoCodec, audioCodec string, ok bool) {
	if m := videoRe.FindStringSubmatch(line); m != nil {
		videoCodec = m[1]
	}
	if m := audioRe.FindStringSubmatch(line); m != nil {
		audioCodec = m[1]
	}
	return videoCodec, audioCodec, videoCodec != "" || audioCodec != ""
}
