// Package concat joins and multiplexes media files. The demuxer method
// splices same-codec inputs without re-encoding; the filter method re-encodes
// through a concat filter graph and tolerates mismatched inputs.
package concat

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
	"github.com/parth181195/ffmpeg-forge/internal/input"
)

// Joiner runs concatenation and merge jobs against one converter binary.
type Joiner struct {
	ffmpegPath  string
	ffprobePath string
}

func New(ffmpegPath, ffprobePath string) *Joiner {
	return &Joiner{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// Concatenate joins the configured inputs into one output. At least two
// inputs are required. The demuxer method is the default; normalization or
// transitions force the filter method since both need a re-encode.
func (j *Joiner) Concatenate(ctx context.Context, cfg domain.ConcatenationConfig) (domain.ConcatenationResult, error) {
	if len(cfg.Inputs) < 2 {
		return domain.ConcatenationResult{}, domain.NewInvalidConfiguration([]string{"concatenation requires at least two inputs"})
	}
	if cfg.Output == "" {
		return domain.ConcatenationResult{}, domain.NewInvalidConfiguration([]string{"concatenation requires an output path"})
	}

	staged := make([]*input.Staged, 0, len(cfg.Inputs))
	defer func() {
		for _, s := range staged {
			s.Cleanup()
		}
	}()
	paths := make([]string, 0, len(cfg.Inputs))
	for _, in := range cfg.Inputs {
		s, err := input.StageInput(in)
		if err != nil {
			return domain.ConcatenationResult{}, err
		}
		staged = append(staged, s)
		paths = append(paths, s.Path)
	}

	method := cfg.Method
	if method == "" {
		method = domain.ConcatDemuxer
	}
	if cfg.Normalize != nil && cfg.Normalize.Enabled {
		method = domain.ConcatFilter
	}
	if cfg.Transitions != nil && cfg.Transitions.Enabled {
		method = domain.ConcatFilter
	}

	var err error
	switch method {
	case domain.ConcatDemuxer:
		err = j.concatDemuxer(ctx, paths, cfg.Output)
	case domain.ConcatFilter:
		err = j.concatFilter(ctx, paths, cfg)
	default:
		return domain.ConcatenationResult{}, domain.NewInvalidConfiguration([]string{fmt.Sprintf("unknown concatenation method %q", method)})
	}
	if err != nil {
		return domain.ConcatenationResult{}, err
	}

	result := domain.ConcatenationResult{Output: cfg.Output, InputCount: len(paths)}
	if d, err := j.duration(ctx, cfg.Output); err == nil {
		result.Duration = d
	}
	return result, nil
}

// concatDemuxer writes a concat list file and splices the inputs with stream
// copy. Inputs must share codec parameters for this to produce a valid file.
func (j *Joiner) concatDemuxer(ctx context.Context, paths []string, output string) error {
	listPath := filepath.Join(os.TempDir(), "ffmpeg-forge-"+uuid.NewString()+".txt")
	var list strings.Builder
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		// Single quotes in the path are escaped per the demuxer's quoting
		// rules: close, escaped quote, reopen.
		abs = strings.ReplaceAll(abs, "'", `'\''`)
		fmt.Fprintf(&list, "file '%s'\n", abs)
	}
	if err := os.WriteFile(listPath, []byte(list.String()), 0o644); err != nil {
		return domain.NewInvalidInput(listPath, "failed to write concat list", err)
	}
	defer os.Remove(listPath)

	args := []string{
		"-hide_banner",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y", output,
	}
	return j.run(ctx, args)
}

// concatFilter joins through a filter graph. When normalization is enabled
// every input is scaled to the common size first; otherwise inputs pass
// through null filters into the concat node. Transitions route to chained
// crossfade nodes instead of a concat node.
func (j *Joiner) concatFilter(ctx context.Context, paths []string, cfg domain.ConcatenationConfig) error {
	args := []string{"-hide_banner"}
	for _, p := range paths {
		args = append(args, "-i", p)
	}

	n := len(paths)
	var graph strings.Builder
	videoLabels := make([]string, 0, n)
	for i := 0; i < n; i++ {
		label := fmt.Sprintf("[v%d]", i)
		if cfg.Normalize != nil && cfg.Normalize.Enabled && cfg.Normalize.VideoSize != "" {
			size := strings.Replace(cfg.Normalize.VideoSize, "x", ":", 1)
			fmt.Fprintf(&graph, "[%d:v]scale=%s,setsar=1%s;", i, size, label)
		} else {
			fmt.Fprintf(&graph, "[%d:v]null%s;", i, label)
		}
		videoLabels = append(videoLabels, label)
	}

	if cfg.Transitions != nil && cfg.Transitions.Enabled {
		if err := j.crossfadeGraph(ctx, &graph, videoLabels, paths, cfg); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(&graph, "%sconcat=n=%d:v=1:a=0[outv];", strings.Join(videoLabels, ""), n)
		for i := 0; i < n; i++ {
			fmt.Fprintf(&graph, "[%d:a]", i)
		}
		fmt.Fprintf(&graph, "concat=n=%d:v=0:a=1[outa]", n)
	}

	args = append(args,
		"-filter_complex", strings.TrimSuffix(graph.String(), ";"),
		"-map", "[outv]",
		"-map", "[outa]",
	)

	videoCodec, audioCodec := "libx264", "aac"
	if cfg.Normalize != nil && cfg.Normalize.Enabled {
		if cfg.Normalize.VideoCodec != "" {
			videoCodec = cfg.Normalize.VideoCodec
		}
		if cfg.Normalize.AudioCodec != "" {
			audioCodec = cfg.Normalize.AudioCodec
		}
	}
	args = append(args, "-c:v", videoCodec)
	if cfg.Normalize != nil && cfg.Normalize.Enabled && cfg.Normalize.VideoBitrate != "" {
		args = append(args, "-b:v", cfg.Normalize.VideoBitrate)
	}
	args = append(args, "-c:a", audioCodec)
	args = append(args, "-y", cfg.Output)
	return j.run(ctx, args)
}

// crossfadeGraph appends chained xfade/acrossfade nodes to the graph. Every
// xfade joint needs the running stream offset, so each input is probed for
// its duration first.
func (j *Joiner) crossfadeGraph(ctx context.Context, graph *strings.Builder, videoLabels, paths []string, cfg domain.ConcatenationConfig) error {
	transition := cfg.Transitions.Type
	if transition == "" {
		transition = "fade"
	}
	fade := cfg.Transitions.Duration
	if fade <= 0 {
		fade = 1
	}

	durations := make([]float64, len(paths))
	for i, p := range paths {
		d, err := j.duration(ctx, p)
		if err != nil {
			return err
		}
		durations[i] = d
	}

	prev := videoLabels[0]
	acc := durations[0]
	for i := 1; i < len(paths); i++ {
		out := fmt.Sprintf("[x%d]", i)
		if i == len(paths)-1 {
			out = "[outv]"
		}
		fmt.Fprintf(graph, "%s%sxfade=transition=%s:duration=%s:offset=%s%s;",
			prev, videoLabels[i], transition,
			strconv.FormatFloat(fade, 'f', -1, 64),
			strconv.FormatFloat(acc-fade, 'f', 2, 64), out)
		prev = out
		acc += durations[i] - fade
	}

	aprev := "[0:a]"
	for i := 1; i < len(paths); i++ {
		out := fmt.Sprintf("[ax%d]", i)
		if i == len(paths)-1 {
			out = "[outa]"
		}
		fmt.Fprintf(graph, "%s[%d:a]acrossfade=d=%s%s;", aprev, i,
			strconv.FormatFloat(fade, 'f', -1, 64), out)
		aprev = out
	}
	return nil
}

// Merge multiplexes separate video, audio and subtitle inputs into one
// container, stream-copying by default.
func (j *Joiner) Merge(ctx context.Context, cfg domain.MergeConfig) (string, error) {
	if len(cfg.Inputs) < 2 {
		return "", domain.NewInvalidConfiguration([]string{"merge requires at least two inputs"})
	}
	if cfg.Output == "" {
		return "", domain.NewInvalidConfiguration([]string{"merge requires an output path"})
	}

	staged := make([]*input.Staged, 0, len(cfg.Inputs))
	defer func() {
		for _, s := range staged {
			s.Cleanup()
		}
	}()

	args := []string{"-hide_banner"}
	for _, in := range cfg.Inputs {
		s, err := input.StageInput(in.Source)
		if err != nil {
			return "", err
		}
		staged = append(staged, s)
		args = append(args, "-i", s.Path)
	}
	for i, in := range cfg.Inputs {
		switch in.Type {
		case "audio":
			args = append(args, "-map", strconv.Itoa(i)+":a")
		case "subtitle":
			args = append(args, "-map", strconv.Itoa(i)+":s")
		default:
			args = append(args, "-map", strconv.Itoa(i)+":v")
		}
	}

	videoCodec, audioCodec := cfg.VideoCodec, cfg.AudioCodec
	if videoCodec == "" {
		videoCodec = "copy"
	}
	if audioCodec == "" {
		audioCodec = "copy"
	}
	args = append(args, "-c:v", videoCodec, "-c:a", audioCodec)
	if hasStream(cfg.Inputs, "subtitle") {
		args = append(args, "-c:s", "mov_text")
	}
	args = append(args, "-y", cfg.Output)

	if err := j.run(ctx, args); err != nil {
		return "", err
	}
	return cfg.Output, nil
}

func hasStream(inputs []domain.MergeStream, streamType string) bool {
	for _, in := range inputs {
		if in.Type == streamType {
			return true
		}
	}
	return false
}

func (j *Joiner) duration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, j.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, domain.NewInvalidInput(path, "failed to probe duration", err)
	}
	return strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
}

func (j *Joiner) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, j.ffmpegPath, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return domain.NewExecutionFailed(
			"concatenation failed",
			j.ffmpegPath+" "+strings.Join(args, " "),
			stderr.String(), err,
		)
	}
	return nil
}
