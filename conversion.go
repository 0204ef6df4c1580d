package ffmpegforge

import (
	"context"

	"github.com/parth181195/ffmpeg-forge/internal/command"
	"github.com/parth181195/ffmpeg-forge/internal/hwaccel"
)

// Validate runs the pre-flight checks and returns every problem found, not
// just the first. An empty slice means the config is runnable.
func (f *FFmpeg) Validate(cfg *ConversionConfig) []string {
	return command.Validate(cfg)
}

// Args compiles the config into the exact argument vector a conversion would
// run, without spawning anything. Hardware detection still runs when the
// config asks for it, since the resolved encoder changes the vector. Buffer
// and stream endpoints are shown with placeholder paths.
func (f *FFmpeg) Args(ctx context.Context, cfg *ConversionConfig) ([]string, error) {
	var hw hwaccel.Resolution
	if cfg.Video != nil && cfg.HardwareAcceleration.WantsHardwareCodec() {
		hw = hwaccel.Resolve(ctx, f.opts.FFmpegPath, cfg.Video.Codec, cfg.HardwareAcceleration.Type)
	}
	inputPath := cfg.Input.Path
	if inputPath == "" {
		inputPath = "<staged input>"
	}
	outputPath := cfg.Output.Path
	if outputPath == "" {
		outputPath = "<staged output>"
	}
	return command.Generate(cfg, inputPath, outputPath, hw)
}

// Convert runs one conversion to completion.
func (f *FFmpeg) Convert(ctx context.Context, cfg *ConversionConfig) error {
	return f.engine.Execute(ctx, cfg, nil)
}

// ConvertWithCallbacks runs one conversion to completion, reporting progress
// through the callbacks. OnStart fires before the process spawns; exactly one
// of OnEnd or OnError fires last, carrying the same error that is returned.
func (f *FFmpeg) ConvertWithCallbacks(ctx context.Context, cfg *ConversionConfig, callbacks *ConversionCallbacks) error {
	return f.engine.Execute(ctx, cfg, callbacks)
}

// Start begins a conversion and returns a handle for observing or cancelling
// it. Cancel asks the converter to quit gracefully and escalates to a kill
// after two seconds; a cancelled conversion fails with KindCancelled, never
// KindExecutionFailed.
func (f *FFmpeg) Start(ctx context.Context, cfg *ConversionConfig, callbacks *ConversionCallbacks) (*Execution, error) {
	return f.engine.Start(ctx, cfg, callbacks)
}

// ConvertToBuffer runs one conversion and returns the finished file's bytes.
// The config's Output is ignored; an explicit Format keeps the converter's
// container inference working without an output extension.
func (f *FFmpeg) ConvertToBuffer(ctx context.Context, cfg *ConversionConfig, callbacks *ConversionCallbacks) ([]byte, error) {
	return f.engine.ExecuteToBuffer(ctx, cfg, callbacks)
}

// ConvertBatch runs the configs one at a time, in order. A failing item
// reports through OnItemError and the batch continues; OnComplete fires
// exactly once after every item has settled.
func (f *FFmpeg) ConvertBatch(ctx context.Context, configs []*ConversionConfig, callbacks *BatchCallbacks) {
	f.engine.ExecuteBatch(ctx, configs, callbacks)
}

// ConvertBatchParallel runs the configs with at most maxConcurrent in flight
// at once (default 2). Per-item failures never abort the batch; event order
// across items is unspecified.
func (f *FFmpeg) ConvertBatchParallel(ctx context.Context, configs []*ConversionConfig, maxConcurrent int, callbacks *BatchCallbacks) {
	f.engine.ExecuteBatchParallel(ctx, configs, maxConcurrent, callbacks)
}
