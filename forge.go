// Package ffmpegforge is a typed wrapper around the ffmpeg and ffprobe
// executables: declarative conversion configs compiled to exact argument
// vectors, live progress parsing, hardware encoder resolution, capability
// queries, media probing, and helpers for thumbnails, screenshots, trailers,
// concatenation and multi-input composition.
//
// # Basic Usage
//
//	forge := ffmpegforge.New(ffmpegforge.Options{})
//
//	err := forge.Convert(ctx, &ffmpegforge.ConversionConfig{
//	    Input:  ffmpegforge.Input{Path: "in.mov"},
//	    Output: ffmpegforge.Output{Path: "out.mp4"},
//	    Video:  &ffmpegforge.VideoConfig{Codec: "libx264", Bitrate: "1M"},
//	    Audio:  &ffmpegforge.AudioConfig{Codec: "aac", Bitrate: "128k"},
//	})
//
// # Progress and Cancellation
//
// ConvertWithCallbacks reports parsed progress lines as they arrive. Start
// returns a handle whose Cancel first asks the converter to quit gracefully
// and force-kills it two seconds later if it has not exited.
//
//	exec, err := forge.Start(ctx, cfg, &ffmpegforge.ConversionCallbacks{
//	    OnProgress: func(p ffmpegforge.Progress) { fmt.Println(p.Percent) },
//	})
//	...
//	exec.Cancel()
//
// # Hardware Acceleration
//
// With HardwareAcceleration enabled the configured software codec is swapped
// for the best detected vendor's encoder (NVENC, Quick Sync, AMF, VAAPI,
// VideoToolbox), falling back to the software codec unless fallback is
// disallowed.
package ffmpegforge

import (
	"context"
	"log/slog"
	"os"

	"github.com/parth181195/ffmpeg-forge/internal/capability"
	"github.com/parth181195/ffmpeg-forge/internal/compose"
	"github.com/parth181195/ffmpeg-forge/internal/concat"
	"github.com/parth181195/ffmpeg-forge/internal/domain"
	"github.com/parth181195/ffmpeg-forge/internal/engine"
	"github.com/parth181195/ffmpeg-forge/internal/extract"
	"github.com/parth181195/ffmpeg-forge/internal/probe"
	"github.com/parth181195/ffmpeg-forge/internal/trailer"
)

type (
	// Input is a conversion source: a file path, an in-memory buffer, or a
	// stream. Buffers and streams are drained to a temp file before the
	// converter is spawned.
	Input = domain.Input

	// Output is a conversion destination: a file path or a writer that the
	// finished file is copied into.
	Output = domain.Output

	// ConversionConfig is the full declarative description of one conversion.
	ConversionConfig = domain.ConversionConfig

	VideoConfig     = domain.VideoConfig
	AudioConfig     = domain.AudioConfig
	TimingConfig    = domain.TimingConfig
	AdvancedOptions = domain.AdvancedOptions

	SizeSpec = domain.SizeSpec
	Timecode = domain.Timecode

	VideoFilters = domain.VideoFilters
	AudioFilters = domain.AudioFilters
	FilterSpec   = domain.FilterSpec

	HardwareAccelConfig = domain.HardwareAccelConfig
	Acceleration        = domain.Acceleration
	HardwareInfo        = domain.HardwareInfo

	// Progress is one snapshot parsed from the converter's diagnostic stream.
	Progress            = domain.Progress
	ConversionCallbacks = domain.ConversionCallbacks
	BatchCallbacks      = domain.BatchCallbacks

	MediaMetadata  = domain.MediaMetadata
	VideoMetadata  = domain.VideoMetadata
	ImageMetadata  = domain.ImageMetadata
	StreamMetadata = domain.StreamMetadata

	VersionInfo  = domain.VersionInfo
	Formats      = domain.Formats
	Codecs       = domain.Codecs
	Capabilities = domain.Capabilities

	ConversionSuggestion     = domain.ConversionSuggestion
	ConversionCompatibility  = domain.ConversionCompatibility
	ConversionRecommendation = domain.ConversionRecommendation
	UseCase                  = domain.UseCase

	ThumbnailConfig   = domain.ThumbnailConfig
	ThumbnailResult   = domain.ThumbnailResult
	ThumbnailStrategy = domain.ThumbnailStrategy
	ScreenshotConfig  = domain.ScreenshotConfig
	ScreenshotsConfig = domain.ScreenshotsConfig

	ConcatenationConfig = domain.ConcatenationConfig
	ConcatenationResult = domain.ConcatenationResult
	ConcatMethod        = domain.ConcatMethod
	ConcatNormalize     = domain.ConcatNormalize
	ConcatTransitions   = domain.ConcatTransitions
	MergeConfig         = domain.MergeConfig
	MergeStream         = domain.MergeStream

	PictureInPictureConfig = domain.PictureInPictureConfig
	SideBySideConfig       = domain.SideBySideConfig
	OverlayPosition        = domain.OverlayPosition
	OverlayBorder          = domain.OverlayBorder
	AudioSource            = domain.AudioSource

	TrailerConfig         = domain.TrailerConfig
	TrailerResult         = domain.TrailerResult
	TrailerStrategy       = domain.TrailerStrategy
	TrailerSegment        = domain.TrailerSegment
	TrailerAudio          = domain.TrailerAudio
	TrailerVideo          = domain.TrailerVideo
	SegmentSelection      = domain.SegmentSelection
	SceneDetectionOptions = domain.SceneDetectionOptions

	// Execution is a handle on one running conversion.
	Execution = engine.Execution
)

const (
	AccelCPU          = domain.AccelCPU
	AccelNVIDIA       = domain.AccelNVIDIA
	AccelIntel        = domain.AccelIntel
	AccelAMD          = domain.AccelAMD
	AccelVAAPI        = domain.AccelVAAPI
	AccelVideoToolbox = domain.AccelVideoToolbox
	AccelV4L2         = domain.AccelV4L2
	AccelDXVA2        = domain.AccelDXVA2
	AccelAny          = domain.AccelAny
)

const (
	UseCaseWeb           = domain.UseCaseWeb
	UseCaseMobile        = domain.UseCaseMobile
	UseCaseQuality       = domain.UseCaseQuality
	UseCaseSize          = domain.UseCaseSize
	UseCaseCompatibility = domain.UseCaseCompatibility
)

const (
	ThumbnailAtTimes     = domain.ThumbnailAtTimes
	ThumbnailByCount     = domain.ThumbnailByCount
	ThumbnailByInterval  = domain.ThumbnailByInterval
	ThumbnailByScene     = domain.ThumbnailByScene
	ThumbnailBestQuality = domain.ThumbnailBestQuality
)

const (
	ConcatDemuxer = domain.ConcatDemuxer
	ConcatFilter  = domain.ConcatFilter
)

const (
	OverlayTopLeft     = domain.OverlayTopLeft
	OverlayTopRight    = domain.OverlayTopRight
	OverlayBottomLeft  = domain.OverlayBottomLeft
	OverlayBottomRight = domain.OverlayBottomRight

	AudioFromMain    = domain.AudioFromMain
	AudioFromOverlay = domain.AudioFromOverlay
	AudioFromBoth    = domain.AudioFromBoth
	AudioNone        = domain.AudioNone
)

const (
	TrailerBySegments   = domain.TrailerBySegments
	TrailerByDuration   = domain.TrailerByDuration
	TrailerByScenes     = domain.TrailerByScenes
	TrailerByHighlights = domain.TrailerByHighlights

	SelectBeginning   = domain.SelectBeginning
	SelectMiddle      = domain.SelectMiddle
	SelectEnd         = domain.SelectEnd
	SelectDistributed = domain.SelectDistributed
)

// Options configures the executable paths and logging of an FFmpeg instance.
// Everything is optional.
type Options struct {
	// FFmpegPath locates the converter. Falls back to the FFMPEG_PATH
	// environment variable, then the bare name "ffmpeg" on the search path.
	FFmpegPath string

	// FFprobePath locates the probe tool. Falls back to FFPROBE_PATH, then
	// "ffprobe".
	FFprobePath string

	// Logger receives debug logging from the execution engine. Nil means
	// slog.Default().
	Logger *slog.Logger
}

func (o *Options) setDefaults() {
	if o.FFmpegPath == "" {
		o.FFmpegPath = os.Getenv("FFMPEG_PATH")
	}
	if o.FFmpegPath == "" {
		o.FFmpegPath = "ffmpeg"
	}
	if o.FFprobePath == "" {
		o.FFprobePath = os.Getenv("FFPROBE_PATH")
	}
	if o.FFprobePath == "" {
		o.FFprobePath = "ffprobe"
	}
}

// FFmpeg is the main entry point. It is stateless apart from the configured
// executable paths; one instance is safe for concurrent use, and each
// conversion owns exactly one external process.
type FFmpeg struct {
	opts Options

	engine       *engine.Engine
	capabilities *capability.Client
	prober       *probe.Prober
	extractor    *extract.Extractor
	joiner       *concat.Joiner
	composer     *compose.Composer
	trailers     *trailer.Generator
}

// New creates an FFmpeg instance with the given options.
func New(opts Options) *FFmpeg {
	opts.setDefaults()
	return &FFmpeg{
		opts:         opts,
		engine:       engine.New(opts.FFmpegPath, opts.Logger),
		capabilities: capability.NewClient(opts.FFmpegPath),
		prober:       probe.NewProber(opts.FFprobePath),
		extractor:    extract.New(opts.FFmpegPath, opts.FFprobePath),
		joiner:       concat.New(opts.FFmpegPath, opts.FFprobePath),
		composer:     compose.New(opts.FFmpegPath),
		trailers:     trailer.New(opts.FFmpegPath, opts.FFprobePath),
	}
}

// FFmpegPath returns the resolved converter path.
func (f *FFmpeg) FFmpegPath() string { return f.opts.FFmpegPath }

// FFprobePath returns the resolved probe tool path.
func (f *FFmpeg) FFprobePath() string { return f.opts.FFprobePath }

// Check verifies that both executables respond to a version invocation.
// Call it once at startup to fail fast on a broken installation.
func (f *FFmpeg) Check(ctx context.Context) error {
	if _, err := f.capabilities.Version(ctx); err != nil {
		return err
	}
	return f.prober.Check(ctx)
}
