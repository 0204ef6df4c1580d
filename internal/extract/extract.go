// Package extract pulls still frames out of video: thumbnail batches under
// several selection strategies, and one-off screenshots.
package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
	"github.com/parth181195/ffmpeg-forge/internal/fftime"
	"github.com/parth181195/ffmpeg-forge/internal/filters"
	"github.com/parth181195/ffmpeg-forge/internal/input"
)

// Extractor runs frame extraction against one converter/probe binary pair.
type Extractor struct {
	ffmpegPath  string
	ffprobePath string
}

func New(ffmpegPath, ffprobePath string) *Extractor {
	return &Extractor{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// Thumbnails extracts frames per the configured strategy.
func (e *Extractor) Thumbnails(ctx context.Context, cfg domain.ThumbnailConfig) (domain.ThumbnailResult, error) {
	staged, err := input.StageInput(cfg.Input)
	if err != nil {
		return domain.ThumbnailResult{}, err
	}
	defer staged.Cleanup()

	switch cfg.Strategy {
	case domain.ThumbnailAtTimes:
		return e.byTimes(ctx, staged.Path, cfg, timesToSeconds(cfg.Times))
	case domain.ThumbnailByCount:
		return e.byCount(ctx, staged.Path, cfg)
	case domain.ThumbnailByInterval:
		return e.byInterval(ctx, staged.Path, cfg)
	case domain.ThumbnailByScene:
		return e.byScene(ctx, staged.Path, cfg)
	case domain.ThumbnailBestQuality:
		return e.byBestQuality(ctx, staged.Path, cfg)
	default:
		return domain.ThumbnailResult{}, domain.NewInvalidConfiguration(
			[]string{fmt.Sprintf("unknown thumbnail strategy %q", cfg.Strategy)})
	}
}

func (e *Extractor) byTimes(ctx context.Context, inputPath string, cfg domain.ThumbnailConfig, times []float64) (domain.ThumbnailResult, error) {
	if len(times) == 0 {
		return domain.ThumbnailResult{}, domain.NewInvalidConfiguration(
			[]string{"times are required for time-based extraction"})
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
		return domain.ThumbnailResult{}, domain.NewInvalidOutput(cfg.Output, "failed to create output directory", err)
	}

	result := domain.ThumbnailResult{Timestamps: times}
	for i, t := range times {
		outputFile := numberedOutput(cfg.Output, i+1)

		args := []string{"-hide_banner", "-ss", fftime.FormatSecondsPrecise(t), "-i", inputPath, "-vframes", "1"}
		args = appendFrameOpts(args, cfg.Size, cfg.Quality)
		args = append(args, "-y", outputFile)

		if err := e.runFFmpeg(ctx, args); err != nil {
			return domain.ThumbnailResult{}, err
		}
		result.Files = append(result.Files, outputFile)
	}
	result.Count = len(result.Files)
	return result, nil
}

func (e *Extractor) byCount(ctx context.Context, inputPath string, cfg domain.ThumbnailConfig) (domain.ThumbnailResult, error) {
	if cfg.Count < 1 {
		return domain.ThumbnailResult{}, domain.NewInvalidConfiguration(
			[]string{"count is required for count-based extraction"})
	}
	duration, err := e.Duration(ctx, inputPath)
	if err != nil {
		return domain.ThumbnailResult{}, err
	}

	usable := duration - cfg.SkipFirst - cfg.SkipLast
	times := make([]float64, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		times = append(times, cfg.SkipFirst+usable/float64(cfg.Count+1)*float64(i+1))
	}
	return e.byTimes(ctx, inputPath, cfg, times)
}

func (e *Extractor) byInterval(ctx context.Context, inputPath string, cfg domain.ThumbnailConfig) (domain.ThumbnailResult, error) {
	if cfg.Interval <= 0 {
		return domain.ThumbnailResult{}, domain.NewInvalidConfiguration(
			[]string{"interval is required for interval-based extraction"})
	}
	duration, err := e.Duration(ctx, inputPath)
	if err != nil {
		return domain.ThumbnailResult{}, err
	}

	var times []float64
	for t := cfg.SkipFirst; t < duration-cfg.SkipLast; t += cfg.Interval {
		times = append(times, t)
	}
	return e.byTimes(ctx, inputPath, cfg, times)
}

func (e *Extractor) byScene(ctx context.Context, inputPath string, cfg domain.ThumbnailConfig) (domain.ThumbnailResult, error) {
	threshold := cfg.SceneThreshold
	if threshold == 0 {
		threshold = 0.4
	}
	pattern := patternOutput(cfg.Output)
	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
		return domain.ThumbnailResult{}, domain.NewInvalidOutput(cfg.Output, "failed to create output directory", err)
	}

	args := []string{
		"-hide_banner", "-i", inputPath,
		"-vf", fmt.Sprintf("select='gt(scene,%s)',showinfo", strconv.FormatFloat(threshold, 'f', -1, 64)),
		"-vsync", "vfr",
	}
	args = appendFrameOpts(args, cfg.Size, cfg.Quality)
	args = append(args, pattern)

	if err := e.runFFmpeg(ctx, args); err != nil {
		return domain.ThumbnailResult{}, err
	}

	files := generatedFiles(pattern)
	return domain.ThumbnailResult{Files: files, Count: len(files)}, nil
}

func (e *Extractor) byBestQuality(ctx context.Context, inputPath string, cfg domain.ThumbnailConfig) (domain.ThumbnailResult, error) {
	count := cfg.Count
	if count == 0 {
		count = 5
	}
	pattern := patternOutput(cfg.Output)
	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
		return domain.ThumbnailResult{}, domain.NewInvalidOutput(cfg.Output, "failed to create output directory", err)
	}

	args := []string{
		"-hide_banner", "-i", inputPath,
		"-vf", "thumbnail=" + strconv.Itoa(count),
		"-vsync", "vfr",
	}
	args = appendFrameOpts(args, cfg.Size, nil)
	args = append(args, "-frames:v", strconv.Itoa(count), pattern)

	if err := e.runFFmpeg(ctx, args); err != nil {
		return domain.ThumbnailResult{}, err
	}

	files := generatedFiles(pattern)
	return domain.ThumbnailResult{Files: files, Count: len(files)}, nil
}

// Screenshot grabs a single frame, selected by time or frame number.
func (e *Extractor) Screenshot(ctx context.Context, cfg domain.ScreenshotConfig) (string, error) {
	staged, err := input.StageInput(cfg.Input)
	if err != nil {
		return "", err
	}
	defer staged.Cleanup()

	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
		return "", domain.NewInvalidOutput(cfg.Output, "failed to create output directory", err)
	}

	args := []string{"-hide_banner"}
	if cfg.Time != nil {
		args = append(args, "-ss", fftime.Format(*cfg.Time))
	}
	args = append(args, "-i", staged.Path)

	var vf []string
	if cfg.Frame != nil {
		vf = append(vf, fmt.Sprintf("select='eq(n,%d)'", *cfg.Frame))
	}
	if chain := filters.VideoChain(cfg.Filters); chain != "" {
		vf = append(vf, chain)
	}
	if len(vf) > 0 {
		args = append(args, "-vf", strings.Join(vf, ","))
	}
	args = append(args, "-vframes", "1")

	args = appendFrameOpts(args, cfg.Size, cfg.Quality)
	if cfg.AspectRatio != "" {
		args = append(args, "-aspect", cfg.AspectRatio)
	}
	args = append(args, "-y", cfg.Output)

	if err := e.runFFmpeg(ctx, args); err != nil {
		return "", err
	}
	return cfg.Output, nil
}

// Screenshots grabs multiple frames into a folder, at explicit timestamps or
// derived from a count or interval.
func (e *Extractor) Screenshots(ctx context.Context, cfg domain.ScreenshotsConfig) (domain.ThumbnailResult, error) {
	staged, err := input.StageInput(cfg.Input)
	if err != nil {
		return domain.ThumbnailResult{}, err
	}
	defer staged.Cleanup()

	folder := cfg.Folder
	if folder == "" {
		folder = "."
	}
	filename := cfg.Filename
	if filename == "" {
		filename = "screenshot-%i.jpg"
	}
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return domain.ThumbnailResult{}, domain.NewInvalidOutput(folder, "failed to create output directory", err)
	}

	var times []float64
	switch {
	case len(cfg.Timestamps) > 0:
		times = timesToSeconds(cfg.Timestamps)
	case cfg.Count > 0:
		duration, err := e.Duration(ctx, staged.Path)
		if err != nil {
			return domain.ThumbnailResult{}, err
		}
		interval := duration / float64(cfg.Count+1)
		for i := 1; i <= cfg.Count; i++ {
			times = append(times, interval*float64(i))
		}
	case cfg.Interval > 0:
		duration, err := e.Duration(ctx, staged.Path)
		if err != nil {
			return domain.ThumbnailResult{}, err
		}
		for t := 0.0; t < duration; t += cfg.Interval {
			times = append(times, t)
		}
	default:
		return domain.ThumbnailResult{}, domain.NewInvalidConfiguration(
			[]string{"one of timestamps, count or interval is required"})
	}

	result := domain.ThumbnailResult{Timestamps: times}
	for i, t := range times {
		outputFile := filepath.Join(folder, strings.ReplaceAll(filename, "%i", strconv.Itoa(i+1)))

		args := []string{"-hide_banner", "-ss", fftime.FormatSecondsPrecise(t), "-i", staged.Path, "-vframes", "1"}
		args = appendFrameOpts(args, cfg.Size, cfg.Quality)
		if chain := filters.VideoChain(cfg.Filters); chain != "" {
			args = append(args, "-vf", chain)
		}
		args = append(args, "-y", outputFile)

		if err := e.runFFmpeg(ctx, args); err != nil {
			return domain.ThumbnailResult{}, err
		}
		result.Files = append(result.Files, outputFile)
	}
	result.Count = len(result.Files)
	return result, nil
}

// Duration probes only the container duration, in seconds.
func (e *Extractor) Duration(ctx context.Context, inputPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, e.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, domain.NewInvalidInput(inputPath, "failed to probe duration", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, domain.NewInvalidInput(inputPath, "unparseable duration", err)
	}
	return duration, nil
}

func (e *Extractor) runFFmpeg(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return domain.NewExecutionFailed(
			"frame extraction failed",
			e.ffmpegPath+" "+strings.Join(args, " "),
			stderr.String(), err,
		)
	}
	return nil
}

func appendFrameOpts(args []string, size *domain.SizeSpec, quality *int) []string {
	if size != nil {
		if s := fftime.FormatSize(*size); s != "" {
			args = append(args, "-s", s)
		}
	}
	if quality != nil {
		args = append(args, "-q:v", strconv.Itoa(*quality))
	}
	return args
}

// numberedOutput expands an output name for the i-th frame: a %d pattern is
// substituted, otherwise an index suffix goes before the extension.
func numberedOutput(output string, i int) string {
	if strings.Contains(output, "%d") {
		return strings.ReplaceAll(output, "%d", strconv.Itoa(i))
	}
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "-" + strconv.Itoa(i) + ext
}

// patternOutput ensures the output name carries a %d slot for the
// converter's own sequence numbering.
func patternOutput(output string) string {
	if strings.Contains(output, "%d") {
		return output
	}
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "-%d" + ext
}

// generatedFiles walks a %d pattern from 1 upward until the first gap.
func generatedFiles(pattern string) []string {
	var files []string
	for i := 1; ; i++ {
		file := strings.ReplaceAll(pattern, "%d", strconv.Itoa(i))
		if _, err := os.Stat(file); err != nil {
			break
		}
		files = append(files, file)
	}
	return files
}

func timesToSeconds(times []domain.Timecode) []float64 {
	out := make([]float64, 0, len(times))
	for _, t := range times {
		if t.Raw != "" {
			out = append(out, fftime.ParseTimemark(t.Raw))
		} else {
			out = append(out, t.Seconds)
		}
	}
	return out
}
