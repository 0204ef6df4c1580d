package domain

// SizeSpec describes an output resolution. Raw takes precedence when set and
// is passed through verbatim ("1920x1080", "50%"). Otherwise Width/Height are
// used, with 0 meaning auto-calculate that dimension.
type SizeSpec struct {
	Raw    string
	Width  int
	Height int
}

// IsZero reports whether no resolution was requested.
func (s SizeSpec) IsZero() bool {
	return s.Raw == "" && s.Width == 0 && s.Height == 0
}

// Timecode is a point or span in media time. Raw takes precedence when set
// ("00:01:30"); otherwise Seconds is formatted as HH:MM:SS.
type Timecode struct {
	Raw     string
	Seconds float64
}

// IsZero reports whether the timecode was left unset.
func (t Timecode) IsZero() bool {
	return t.Raw == "" && t.Seconds == 0
}

// VideoConfig configures the output video stream.
type VideoConfig struct {
	Codec   string
	Bitrate string
	Quality *int // CRF for the H.26x families, -q:v otherwise

	FPS         float64
	Size        *SizeSpec
	AspectRatio string
	Disabled    bool

	Frames *int
	Loop   *int

	Preset           string
	Profile          string
	Level            string
	PixelFormat      string
	KeyframeInterval int
	BFrames          *int
	Refs             *int

	Filters   *VideoFilters
	Upscale   *UpscaleOptions
	Downscale *DownscaleOptions
}

// AudioConfig configures the output audio stream.
type AudioConfig struct {
	Codec     string
	Bitrate   string
	Quality   *int
	Channels  int
	Frequency int
	Disabled  bool

	Profile             string
	VolumeNormalization bool

	Filters *AudioFilters
}

// TimingConfig selects a window of the input. Duration and To are mutually
// exclusive. FastSeek places the seek before the input token, which is faster
// but snaps to keyframes; without it the seek is exact but decodes from the
// start.
type TimingConfig struct {
	Seek     *Timecode
	Duration *Timecode
	To       *Timecode
	FastSeek bool
}

// AdvancedOptions are the escape hatches: raw argument passthrough, metadata
// tags, two-pass logging and subtitle handling.
type AdvancedOptions struct {
	InputOptions  []string
	OutputOptions []string

	Threads *int

	TwoPass     bool
	PassLogFile string

	Metadata map[string]string

	Subtitles     string
	BurnSubtitles bool
}

// ConversionConfig is the full declarative description of one conversion.
type ConversionConfig struct {
	Input  Input
	Output Output

	Format string

	Video *VideoConfig
	Audio *AudioConfig

	Timing *TimingConfig

	HardwareAcceleration *HardwareAccelConfig

	ComplexFilters []FilterSpec

	Options *AdvancedOptions
}

// Progress is one snapshot parsed from the converter's diagnostic stream.
type Progress struct {
	Frames   int64
	FPS      float64
	Kbps     float64
	SizeKB   int64
	Timemark string
	Percent  float64
	Speed    float64
}

// ConversionCallbacks observe a single execution. OnStart always fires before
// any OnProgress; exactly one of OnEnd or OnError fires last.
type ConversionCallbacks struct {
	OnStart    func(command string)
	OnProgress func(Progress)
	OnEnd      func()
	OnError    func(error)
}

// BatchCallbacks observe a batch run. OnComplete fires exactly once after
// every item has settled, however many of them failed.
type BatchCallbacks struct {
	OnProgress     func(index int, progress Progress)
	OnItemComplete func(index int)
	OnItemError    func(index int, err error)
	OnComplete     func()
}
