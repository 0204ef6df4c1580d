// Package command compiles a conversion configuration into the converter's
// argument vector. Emission order is fixed: the converter assigns meaning to
// flags by position relative to the input token, so reordering changes
// semantics.
package command

import (
	"sort"
	"strconv"
	"strings"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
	"github.com/parth181195/ffmpeg-forge/internal/fftime"
	"github.com/parth181195/ffmpeg-forge/internal/filters"
	"github.com/parth181195/ffmpeg-forge/internal/hwaccel"
)

// Validate runs the pre-flight checks and collects every violation rather
// than stopping at the first, so all problems surface in one pass. An empty
// slice means the configuration is generatable.
func Validate(cfg *domain.ConversionConfig) []string {
	var problems []string

	if cfg.Input.IsZero() {
		problems = append(problems, "input is required")
	}
	if cfg.Output.IsZero() {
		problems = append(problems, "output is required")
	}

	if cfg.Video != nil {
		if cfg.Video.Upscale != nil && cfg.Video.Downscale != nil {
			problems = append(problems, "cannot use both upscale and downscale")
		}
		if cfg.Video.Upscale != nil && cfg.Video.Size != nil && !cfg.Video.Size.IsZero() {
			problems = append(problems, "cannot use both upscale and size")
		}
	}

	if cfg.Timing != nil {
		if cfg.Timing.Duration != nil && cfg.Timing.To != nil {
			problems = append(problems, "cannot use both duration and to")
		}
	}

	return problems
}

// Generate compiles the configuration into an argument vector. inputPath and
// outputPath are the already-materialized filesystem endpoints (buffer and
// stream sources are staged to temp files before generation). hw is the
// hardware codec resolution for the configured video codec; the zero value
// means software.
//
// A resolution with IsHardware false under a configuration that disallows
// software fallback is a hard error; otherwise the degrade is silent.
func Generate(cfg *domain.ConversionConfig, inputPath, outputPath string, hw hwaccel.Resolution) ([]string, error) {
	if problems := Validate(cfg); len(problems) > 0 {
		return nil, domain.NewInvalidConfiguration(problems)
	}

	video := cfg.Video
	if video != nil && !video.Disabled && video.Codec != "" && cfg.HardwareAcceleration.WantsHardwareCodec() {
		if hw.IsHardware {
			substituted := *video
			substituted.Codec = hw.Codec
			video = &substituted
		} else if !cfg.HardwareAcceleration.AllowsSoftwareFallback() {
			accel := cfg.HardwareAcceleration.Type
			if accel == "" {
				accel = domain.AccelAny
			}
			return nil, domain.NewHardwareUnavailable(video.Codec, accel)
		}
	}

	args := []string{"-hide_banner"}

	// The acceleration context flag must precede the input token.
	if flag := contextFlag(cfg, hw); flag != "" {
		args = append(args, "-hwaccel", flag)
	}

	opts := cfg.Options
	if opts != nil && opts.Threads != nil {
		args = append(args, "-threads", strconv.Itoa(*opts.Threads))
	}
	if opts != nil {
		args = append(args, opts.InputOptions...)
	}

	// Pre-input seek snaps to keyframes but skips decoding the lead-in.
	timing := cfg.Timing
	if timing != nil && timing.FastSeek && timing.Seek != nil {
		args = append(args, "-ss", fftime.Format(*timing.Seek))
	}

	args = append(args, "-i", inputPath)

	// Post-input seek decodes from the start but lands frame-accurate.
	if timing != nil && !timing.FastSeek {
		if timing.Seek != nil {
			args = append(args, "-ss", fftime.Format(*timing.Seek))
		}
		if timing.Duration != nil {
			args = append(args, "-t", fftime.Format(*timing.Duration))
		} else if timing.To != nil {
			args = append(args, "-to", fftime.Format(*timing.To))
		}
	}

	if video != nil {
		args = appendVideoArgs(args, video)
	}
	if cfg.Audio != nil {
		args = appendAudioArgs(args, cfg.Audio)
	}

	if cfg.Format != "" {
		args = append(args, "-f", cfg.Format)
	}

	if len(cfg.ComplexFilters) > 0 {
		args = append(args, "-filter_complex", filters.ComplexGraph(cfg.ComplexFilters))
	}

	if opts != nil {
		args = appendAdvancedArgs(args, opts)
		args = append(args, opts.OutputOptions...)
	}

	args = append(args, "-y", outputPath)

	return args, nil
}

// GenerateString renders the vector as a display command for logging and the
// start callback. Not shell-safe; diagnostics only.
func GenerateString(ffmpegPath string, args []string) string {
	return ffmpegPath + " " + strings.Join(args, " ")
}

// contextFlag picks the -hwaccel value: an explicitly configured class wins,
// otherwise the class a substitution resolved to.
func contextFlag(cfg *domain.ConversionConfig, hw hwaccel.Resolution) string {
	hwCfg := cfg.HardwareAcceleration
	if hwCfg == nil || !hwCfg.Enabled {
		return ""
	}
	if hwCfg.Type != "" && hwCfg.Type != domain.AccelAny && hwCfg.Type != domain.AccelCPU {
		return hwaccel.ContextFlag(hwCfg.Type)
	}
	if hw.IsHardware {
		return hw.ContextFlag
	}
	return ""
}

func appendVideoArgs(args []string, video *domain.VideoConfig) []string {
	if video.Disabled {
		return append(args, "-vn")
	}

	if video.Codec != "" {
		args = append(args, "-c:v", video.Codec)
	}
	if video.Bitrate != "" {
		args = append(args, "-b:v", video.Bitrate)
	}
	if video.Quality != nil {
		// The H.26x family takes a rate factor; everything else takes the
		// generic quality scale. Substring match on the effective codec,
		// so a hardware substitution like h264_nvenc still lands on -crf.
		if strings.Contains(video.Codec, "264") || strings.Contains(video.Codec, "265") {
			args = append(args, "-crf", strconv.Itoa(*video.Quality))
		} else {
			args = append(args, "-q:v", strconv.Itoa(*video.Quality))
		}
	}
	if video.FPS != 0 {
		args = append(args, "-r", strconv.FormatFloat(video.FPS, 'f', -1, 64))
	}
	if video.Size != nil {
		if size := fftime.FormatSize(*video.Size); size != "" {
			args = append(args, "-s", size)
		}
	}
	if video.AspectRatio != "" {
		args = append(args, "-aspect", video.AspectRatio)
	}
	if video.Preset != "" {
		args = append(args, "-preset", video.Preset)
	}
	if video.Profile != "" {
		args = append(args, "-profile:v", video.Profile)
	}
	if video.Level != "" {
		args = append(args, "-level", video.Level)
	}
	if video.PixelFormat != "" {
		args = append(args, "-pix_fmt", video.PixelFormat)
	}
	if video.KeyframeInterval != 0 {
		args = append(args, "-g", strconv.Itoa(video.KeyframeInterval))
	}
	if video.BFrames != nil {
		args = append(args, "-bf", strconv.Itoa(*video.BFrames))
	}
	if video.Refs != nil {
		args = append(args, "-refs", strconv.Itoa(*video.Refs))
	}
	if video.Frames != nil {
		args = append(args, "-frames:v", strconv.Itoa(*video.Frames))
	}
	if video.Loop != nil {
		args = append(args, "-loop", strconv.Itoa(*video.Loop))
	}

	return appendVideoFilters(args, video)
}

// appendVideoFilters combines the resize sub-chains and the standard filter
// chain into one -vf flag, resize clauses first so the standard chain
// operates on the final geometry.
func appendVideoFilters(args []string, video *domain.VideoConfig) []string {
	var parts []string
	if video.Upscale != nil {
		parts = append(parts, filters.Upscale(*video.Upscale)...)
	}
	if video.Downscale != nil {
		parts = append(parts, filters.Downscale(*video.Downscale)...)
	}
	if chain := filters.VideoChain(video.Filters); chain != "" {
		parts = append(parts, chain)
	}
	if len(parts) > 0 {
		args = append(args, "-vf", strings.Join(parts, ","))
	}
	return args
}

func appendAudioArgs(args []string, audio *domain.AudioConfig) []string {
	if audio.Disabled {
		return append(args, "-an")
	}

	if audio.Codec != "" {
		args = append(args, "-c:a", audio.Codec)
	}
	if audio.Bitrate != "" {
		args = append(args, "-b:a", audio.Bitrate)
	}
	if audio.Quality != nil {
		args = append(args, "-q:a", strconv.Itoa(*audio.Quality))
	}
	if audio.Channels != 0 {
		args = append(args, "-ac", strconv.Itoa(audio.Channels))
	}
	if audio.Frequency != 0 {
		args = append(args, "-ar", strconv.Itoa(audio.Frequency))
	}
	if audio.Profile != "" {
		args = append(args, "-profile:a", audio.Profile)
	}

	// Loudness normalization and the configured chain share one -af flag,
	// loudnorm first.
	var chain []string
	if audio.VolumeNormalization {
		chain = append(chain, "loudnorm")
	}
	if filterChain := filters.AudioChain(audio.Filters); filterChain != "" {
		chain = append(chain, filterChain)
	}
	if len(chain) > 0 {
		args = append(args, "-af", strings.Join(chain, ","))
	}
	return args
}

func appendAdvancedArgs(args []string, opts *domain.AdvancedOptions) []string {
	if opts.TwoPass {
		logFile := opts.PassLogFile
		if logFile == "" {
			logFile = "ffmpeg2pass"
		}
		args = append(args, "-pass", "1", "-passlogfile", logFile)
	}

	if len(opts.Metadata) > 0 {
		keys := make([]string, 0, len(opts.Metadata))
		for k := range opts.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			args = append(args, "-metadata", k+"="+opts.Metadata[k])
		}
	}

	if opts.Subtitles != "" {
		if opts.BurnSubtitles {
			args = append(args, "-vf", "subtitles="+opts.Subtitles)
		} else {
			args = append(args, "-i", opts.Subtitles, "-c:s", "mov_text")
		}
	}

	return args
}
