// Package trailer cuts short preview reels out of longer videos. Segments are
// selected by position, by scene detection or by even distribution, extracted
// individually, then spliced back together with optional music and fades.
package trailer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
	"github.com/parth181195/ffmpeg-forge/internal/fftime"
	"github.com/parth181195/ffmpeg-forge/internal/input"
)

const (
	defaultSegmentCount    = 5
	defaultSegmentDuration = 5.0
	defaultMaxDuration     = 30.0
	defaultSceneThreshold  = 0.4
	defaultMinSceneLength  = 2.0
	defaultMusicVolume     = 0.3
	segmentFadeDuration    = 0.5
)

var ptsTimeRe = regexp.MustCompile(`pts_time:([\d.]+)`)

// Generator runs trailer jobs against one converter binary.
type Generator struct {
	ffmpegPath  string
	ffprobePath string
}

func New(ffmpegPath, ffprobePath string) *Generator {
	return &Generator{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// Generate builds a trailer from cfg.Input. Segment selection follows the
// configured strategy; the cut list is capped at MaxDuration, shortening the
// last segment when it straddles the cap.
func (g *Generator) Generate(ctx context.Context, cfg domain.TrailerConfig) (domain.TrailerResult, error) {
	if cfg.Output == "" {
		return domain.TrailerResult{}, domain.NewInvalidConfiguration([]string{"trailer generation requires an output path"})
	}
	staged, err := input.StageInput(cfg.Input)
	if err != nil {
		return domain.TrailerResult{}, err
	}
	defer staged.Cleanup()

	sourceDuration, err := g.duration(ctx, staged.Path)
	if err != nil {
		return domain.TrailerResult{}, err
	}

	segments, err := g.selectSegments(ctx, staged.Path, cfg, sourceDuration)
	if err != nil {
		return domain.TrailerResult{}, err
	}
	maxDuration := cfg.MaxDuration
	if maxDuration <= 0 {
		maxDuration = defaultMaxDuration
	}
	segments = trimToMaxDuration(segments, maxDuration)
	if len(segments) == 0 {
		return domain.TrailerResult{}, domain.NewInvalidConfiguration([]string{"no segments selected; source may be shorter than one segment"})
	}

	segmentFiles := make([]string, 0, len(segments))
	defer func() {
		for _, f := range segmentFiles {
			os.Remove(f)
		}
	}()
	for _, seg := range segments {
		path, err := g.extractSegment(ctx, staged.Path, seg, cfg)
		if err != nil {
			return domain.TrailerResult{}, err
		}
		segmentFiles = append(segmentFiles, path)
	}

	if err := g.splice(ctx, segmentFiles, cfg); err != nil {
		return domain.TrailerResult{}, err
	}

	var total float64
	for _, seg := range segments {
		total += seg.Duration
	}
	return domain.TrailerResult{Output: cfg.Output, Duration: total, Segments: segments}, nil
}

func (g *Generator) selectSegments(ctx context.Context, inputPath string, cfg domain.TrailerConfig, sourceDuration float64) ([]domain.TrailerSegment, error) {
	segDuration := cfg.SegmentDuration
	if segDuration <= 0 {
		segDuration = defaultSegmentDuration
	}
	count := cfg.SegmentCount
	if count <= 0 {
		count = defaultSegmentCount
	}

	switch cfg.Strategy {
	case domain.TrailerByScenes:
		return g.segmentsFromScenes(ctx, inputPath, cfg, sourceDuration, segDuration)

	case domain.TrailerByDuration:
		maxDuration := cfg.MaxDuration
		if maxDuration <= 0 {
			maxDuration = defaultMaxDuration
		}
		count = int(maxDuration / segDuration)
		if count < 1 {
			count = 1
		}
		return positionedSegments(sourceDuration, segDuration, count, domain.SelectDistributed), nil

	case domain.TrailerByHighlights:
		// Without content analysis, highlights degrade to an even spread with
		// descending scores toward the end of the source.
		segments := positionedSegments(sourceDuration, segDuration, count, domain.SelectDistributed)
		for i := range segments {
			segments[i].Score = 1 - float64(i)/float64(2*len(segments))
			segments[i].Reason = "highlight"
		}
		return segments, nil

	default: // TrailerBySegments
		selection := cfg.Selection
		if selection == "" {
			selection = domain.SelectDistributed
		}
		return positionedSegments(sourceDuration, segDuration, count, selection), nil
	}
}

// positionedSegments places count segments of segDuration within a source of
// sourceDuration according to the selection mode.
func positionedSegments(sourceDuration, segDuration float64, count int, selection domain.SegmentSelection) []domain.TrailerSegment {
	if sourceDuration < segDuration {
		return nil
	}
	maxStart := sourceDuration - segDuration

	segments := make([]domain.TrailerSegment, 0, count)
	add := func(start float64) {
		if start < 0 {
			start = 0
		}
		if start > maxStart {
			start = maxStart
		}
		segments = append(segments, domain.TrailerSegment{
			StartTime: start,
			Duration:  segDuration,
			Score:     1,
			Reason:    string(selection),
		})
	}

	switch selection {
	case domain.SelectBeginning:
		for i := 0; i < count; i++ {
			add(float64(i) * segDuration)
		}
	case domain.SelectEnd:
		for i := count - 1; i >= 0; i-- {
			add(sourceDuration - float64(i+1)*segDuration)
		}
	case domain.SelectMiddle:
		block := float64(count) * segDuration
		start := (sourceDuration - block) / 2
		for i := 0; i < count; i++ {
			add(start + float64(i)*segDuration)
		}
	default: // distributed
		if count == 1 {
			add(maxStart / 2)
			break
		}
		for i := 0; i < count; i++ {
			add(maxStart * float64(i) / float64(count-1))
		}
	}
	return segments
}

func (g *Generator) segmentsFromScenes(ctx context.Context, inputPath string, cfg domain.TrailerConfig, sourceDuration, segDuration float64) ([]domain.TrailerSegment, error) {
	threshold := defaultSceneThreshold
	minScene := defaultMinSceneLength
	if cfg.SceneDetection != nil {
		if cfg.SceneDetection.Threshold > 0 {
			threshold = cfg.SceneDetection.Threshold
		}
		if cfg.SceneDetection.MinSceneDuration > 0 {
			minScene = cfg.SceneDetection.MinSceneDuration
		}
	}

	times, err := g.detectScenes(ctx, inputPath, threshold)
	if err != nil {
		return nil, err
	}

	segments := make([]domain.TrailerSegment, 0, len(times))
	for i, start := range times {
		end := sourceDuration
		if i+1 < len(times) {
			end = times[i+1]
		}
		if end-start < minScene {
			continue
		}
		duration := segDuration
		if start+duration > end {
			duration = end - start
		}
		segments = append(segments, domain.TrailerSegment{
			StartTime: start,
			Duration:  duration,
			Score:     1,
			Reason:    "scene change",
		})
	}
	if len(segments) == 0 {
		// Fall back to an even spread when the source has no hard cuts.
		return positionedSegments(sourceDuration, segDuration, defaultSegmentCount, domain.SelectDistributed), nil
	}
	return segments, nil
}

// detectScenes runs a discard-output pass with the scene-change select filter
// and reads cut timestamps from showinfo's log lines. Time zero is always
// included as the first scene start.
func (g *Generator) detectScenes(ctx context.Context, inputPath string, threshold float64) ([]float64, error) {
	filter := fmt.Sprintf("select='gt(scene,%s)',showinfo", strconv.FormatFloat(threshold, 'f', -1, 64))
	cmd := exec.CommandContext(ctx, g.ffmpegPath,
		"-hide_banner",
		"-i", inputPath,
		"-vf", filter,
		"-f", "null", "-",
	)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	// The null muxer run can exit nonzero on malformed tails while still
	// having logged usable showinfo lines, so the output is parsed first.
	runErr := cmd.Run()

	times := []float64{0}
	for _, m := range ptsTimeRe.FindAllStringSubmatch(stderr.String(), -1) {
		if t, err := strconv.ParseFloat(m[1], 64); err == nil && t > 0 {
			times = append(times, t)
		}
	}
	if len(times) == 1 && runErr != nil {
		return nil, domain.NewExecutionFailed(
			"scene detection failed",
			g.ffmpegPath+" -i "+inputPath,
			stderr.String(), runErr,
		)
	}
	return times, nil
}

// trimToMaxDuration caps the cut list, shrinking the last segment to fit
// rather than dropping it outright.
func trimToMaxDuration(segments []domain.TrailerSegment, maxDuration float64) []domain.TrailerSegment {
	trimmed := make([]domain.TrailerSegment, 0, len(segments))
	var total float64
	for _, seg := range segments {
		if total+seg.Duration <= maxDuration {
			trimmed = append(trimmed, seg)
			total += seg.Duration
			continue
		}
		remaining := maxDuration - total
		if remaining > 0.5 {
			seg.Duration = remaining
			trimmed = append(trimmed, seg)
		}
		break
	}
	return trimmed
}

// extractSegment cuts one segment to a temp file, re-encoding so the pieces
// splice cleanly regardless of the source's keyframe placement.
func (g *Generator) extractSegment(ctx context.Context, inputPath string, seg domain.TrailerSegment, cfg domain.TrailerConfig) (string, error) {
	outPath := filepath.Join(os.TempDir(), "ffmpeg-forge-"+uuid.NewString()+".mp4")

	args := []string{
		"-hide_banner",
		"-ss", fftime.FormatSecondsPrecise(seg.StartTime),
		"-i", inputPath,
		"-t", strconv.FormatFloat(seg.Duration, 'f', 2, 64),
	}

	codec, bitrate := "libx264", ""
	if cfg.Video != nil {
		if cfg.Video.Codec != "" {
			codec = cfg.Video.Codec
		}
		bitrate = cfg.Video.Bitrate
	}
	args = append(args, "-c:v", codec)
	if bitrate != "" {
		args = append(args, "-b:v", bitrate)
	}
	if cfg.Video != nil && cfg.Video.Size != "" {
		args = append(args, "-s", cfg.Video.Size)
	}
	if cfg.Video != nil && cfg.Video.FPS > 0 {
		args = append(args, "-r", strconv.FormatFloat(cfg.Video.FPS, 'f', -1, 64))
	}

	if cfg.Audio != nil && cfg.Audio.Disabled {
		args = append(args, "-an")
	} else {
		args = append(args, "-c:a", "aac")
		if cfg.Audio != nil && cfg.Audio.FadeInOut {
			fadeOut := seg.Duration - segmentFadeDuration
			if fadeOut < 0 {
				fadeOut = 0
			}
			args = append(args, "-af", fmt.Sprintf(
				"afade=t=in:st=0:d=%.1f,afade=t=out:st=%.2f:d=%.1f",
				segmentFadeDuration, fadeOut, segmentFadeDuration,
			))
		}
	}

	args = append(args, "-y", outPath)
	if err := g.run(ctx, args, "segment extraction failed"); err != nil {
		os.Remove(outPath)
		return "", err
	}
	return outPath, nil
}

// splice joins the extracted segments and applies the audio post-pass (music
// bed, loudness normalization) in the same invocation.
func (g *Generator) splice(ctx context.Context, segmentFiles []string, cfg domain.TrailerConfig) error {
	listPath := filepath.Join(os.TempDir(), "ffmpeg-forge-"+uuid.NewString()+".txt")
	var list strings.Builder
	for _, f := range segmentFiles {
		fmt.Fprintf(&list, "file '%s'\n", strings.ReplaceAll(f, "'", `'\''`))
	}
	if err := os.WriteFile(listPath, []byte(list.String()), 0o644); err != nil {
		return domain.NewInvalidInput(listPath, "failed to write segment list", err)
	}
	defer os.Remove(listPath)

	args := []string{
		"-hide_banner",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
	}

	withMusic := cfg.Audio != nil && !cfg.Audio.Disabled && cfg.Audio.Music != ""
	normalize := cfg.Audio != nil && !cfg.Audio.Disabled && cfg.Audio.Normalize

	switch {
	case withMusic:
		volume := defaultMusicVolume
		if cfg.Audio.MusicVolume > 0 {
			volume = cfg.Audio.MusicVolume
		}
		mix := fmt.Sprintf("[1:a]volume=%s[music];[0:a][music]amix=inputs=2:duration=first", strconv.FormatFloat(volume, 'f', -1, 64))
		if normalize {
			mix += ",loudnorm"
		}
		mix += "[outa]"
		args = append(args,
			"-i", cfg.Audio.Music,
			"-filter_complex", mix,
			"-map", "0:v",
			"-map", "[outa]",
			"-c:v", "copy",
			"-c:a", "aac",
		)

	case normalize:
		args = append(args,
			"-af", "loudnorm",
			"-c:v", "copy",
			"-c:a", "aac",
		)

	default:
		args = append(args, "-c", "copy")
	}

	args = append(args, "-y", cfg.Output)
	return g.run(ctx, args, "trailer assembly failed")
}

func (g *Generator) duration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, g.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, domain.NewInvalidInput(path, "failed to probe duration", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, domain.NewInvalidInput(path, "unparseable duration", err)
	}
	return duration, nil
}

func (g *Generator) run(ctx context.Context, args []string, message string) error {
	cmd := exec.CommandContext(ctx, g.ffmpegPath, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return domain.NewExecutionFailed(
			message,
			g.ffmpegPath+" "+strings.Join(args, " "),
			stderr.String(), err,
		)
	}
	return nil
}
