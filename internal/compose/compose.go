// Package compose lays multiple videos out in one frame: picture-in-picture
// overlays and side-by-side comparison stacks.
package compose

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
	"github.com/parth181195/ffmpeg-forge/internal/fftime"
	"github.com/parth181195/ffmpeg-forge/internal/input"
)

// overlayCoords maps named corners to overlay filter expressions with a 10px
// margin.
var overlayCoords = map[domain.OverlayPosition][2]string{
	domain.OverlayTopLeft:     {"10", "10"},
	domain.OverlayTopRight:    {"main_w-overlay_w-10", "10"},
	domain.OverlayBottomLeft:  {"10", "main_h-overlay_h-10"},
	domain.OverlayBottomRight: {"main_w-overlay_w-10", "main_h-overlay_h-10"},
}

// Composer runs layout jobs against one converter binary.
type Composer struct {
	ffmpegPath string
}

func New(ffmpegPath string) *Composer {
	return &Composer{ffmpegPath: ffmpegPath}
}

// PictureInPicture overlays cfg.Overlay onto cfg.Main at the configured
// position, optionally scaled and framed, and selects the surviving audio.
func (c *Composer) PictureInPicture(ctx context.Context, cfg domain.PictureInPictureConfig) (string, error) {
	if cfg.Output == "" {
		return "", domain.NewInvalidConfiguration([]string{"picture-in-picture requires an output path"})
	}
	main, err := input.StageInput(cfg.Main)
	if err != nil {
		return "", err
	}
	defer main.Cleanup()
	overlay, err := input.StageInput(cfg.Overlay)
	if err != nil {
		return "", err
	}
	defer overlay.Cleanup()

	var graph strings.Builder
	label := "[1:v]"
	if cfg.OverlaySize != nil && !cfg.OverlaySize.IsZero() {
		size := strings.Replace(fftime.FormatSize(*cfg.OverlaySize), "x", ":", 1)
		fmt.Fprintf(&graph, "%sscale=%s[scaled];", label, size)
		label = "[scaled]"
	}
	if cfg.Border != nil && cfg.Border.Width > 0 {
		color := cfg.Border.Color
		if color == "" {
			color = "white"
		}
		w := cfg.Border.Width
		fmt.Fprintf(&graph, "%spad=iw+%d:ih+%d:%d:%d:%s[bordered];", label, 2*w, 2*w, w, w, color)
		label = "[bordered]"
	}
	fmt.Fprintf(&graph, "%sformat=rgba[ovl];", label)

	x, y := cfg.X, cfg.Y
	if x == "" || y == "" {
		pos := cfg.Position
		if pos == "" {
			pos = domain.OverlayBottomRight
		}
		coords, ok := overlayCoords[pos]
		if !ok {
			coords = overlayCoords[domain.OverlayBottomRight]
		}
		x, y = coords[0], coords[1]
	}
	fmt.Fprintf(&graph, "[0:v][ovl]overlay=%s:%s[outv]", x, y)

	audio := cfg.Audio
	if audio == "" {
		audio = domain.AudioFromMain
	}
	if audio == domain.AudioFromBoth {
		graph.WriteString(";[0:a][1:a]amix=inputs=2:duration=first[outa]")
	}

	args := []string{
		"-hide_banner",
		"-i", main.Path,
		"-i", overlay.Path,
		"-filter_complex", graph.String(),
		"-map", "[outv]",
	}
	switch audio {
	case domain.AudioFromMain:
		args = append(args, "-map", "0:a?")
	case domain.AudioFromOverlay:
		args = append(args, "-map", "1:a?")
	case domain.AudioFromBoth:
		args = append(args, "-map", "[outa]")
	case domain.AudioNone:
		args = append(args, "-an")
	}

	codec := cfg.VideoCodec
	if codec == "" {
		codec = "libx264"
	}
	args = append(args, "-c:v", codec)
	if cfg.VideoBitrate != "" {
		args = append(args, "-b:v", cfg.VideoBitrate)
	}
	if audio != domain.AudioNone {
		args = append(args, "-c:a", "aac")
	}
	args = append(args, "-y", cfg.Output)

	if err := c.run(ctx, args); err != nil {
		return "", err
	}
	return cfg.Output, nil
}

// SideBySide stacks two videos horizontally or vertically. MatchSize scales
// both to a common target first; stacking requires equal heights (hstack) or
// widths (vstack), so mismatched sources should enable it.
func (c *Composer) SideBySide(ctx context.Context, cfg domain.SideBySideConfig) (string, error) {
	if cfg.Output == "" {
		return "", domain.NewInvalidConfiguration([]string{"side-by-side requires an output path"})
	}
	left, err := input.StageInput(cfg.Left)
	if err != nil {
		return "", err
	}
	defer left.Cleanup()
	right, err := input.StageInput(cfg.Right)
	if err != nil {
		return "", err
	}
	defer right.Cleanup()

	var graph strings.Builder
	if cfg.MatchSize {
		size := cfg.TargetSize
		if size == "" {
			size = "1280x720"
		}
		size = strings.Replace(size, "x", ":", 1)
		fmt.Fprintf(&graph, "[0:v]scale=%s[l];[1:v]scale=%s[r];", size, size)
	} else {
		graph.WriteString("[0:v]null[l];[1:v]null[r];")
	}

	stack := "hstack"
	if cfg.Orientation == "vertical" {
		stack = "vstack"
	}
	fmt.Fprintf(&graph, "[l][r]%s=inputs=2[outv]", stack)

	audio := cfg.Audio
	if audio == "" {
		audio = domain.AudioFromMain
	}
	if audio == domain.AudioFromBoth {
		graph.WriteString(";[0:a][1:a]amerge=inputs=2[outa]")
	}

	args := []string{
		"-hide_banner",
		"-i", left.Path,
		"-i", right.Path,
		"-filter_complex", graph.String(),
		"-map", "[outv]",
	}
	switch audio {
	case domain.AudioFromMain:
		args = append(args, "-map", "0:a?")
	case domain.AudioFromOverlay:
		args = append(args, "-map", "1:a?")
	case domain.AudioFromBoth:
		args = append(args, "-map", "[outa]", "-ac", "2")
	case domain.AudioNone:
		args = append(args, "-an")
	}

	codec := cfg.VideoCodec
	if codec == "" {
		codec = "libx264"
	}
	args = append(args, "-c:v", codec)
	if audio != domain.AudioNone {
		args = append(args, "-c:a", "aac")
	}
	args = append(args, "-y", cfg.Output)

	if err := c.run(ctx, args); err != nil {
		return "", err
	}
	return cfg.Output, nil
}

func (c *Composer) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return domain.NewExecutionFailed(
			"composition failed",
			c.ffmpegPath+" "+strings.Join(args, " "),
			stderr.String(), err,
		)
	}
	return nil
}
