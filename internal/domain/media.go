package domain

// ConcatMethod selects how inputs are joined.
type ConcatMethod string

const (
	// ConcatDemuxer joins same-codec inputs via the concat demuxer without
	// re-encoding.
	ConcatDemuxer ConcatMethod = "concat"
	// ConcatFilter joins through a filter graph, re-encoding; required when
	// inputs differ in codec or geometry.
	ConcatFilter ConcatMethod = "filter"
)

// ConcatNormalize re-encodes all inputs to one common shape during a
// filter-based join.
type ConcatNormalize struct {
	Enabled      bool
	VideoCodec   string
	VideoBitrate string
	VideoSize    string
	AudioCodec   string
}

// ConcatTransitions crossfades between joined inputs.
type ConcatTransitions struct {
	Enabled  bool
	Type     string // xfade transition name, default fade
	Duration float64
}

// ConcatenationConfig describes one join of multiple inputs.
type ConcatenationConfig struct {
	Inputs []Input
	Output string
	Method ConcatMethod

	Normalize   *ConcatNormalize
	Transitions *ConcatTransitions
}

// ConcatenationResult reports the joined output.
type ConcatenationResult struct {
	Output     string
	Duration   float64
	InputCount int
}

// MergeStream is one input of a stream merge, tagged by stream type.
type MergeStream struct {
	Source Input
	Type   string // video, audio, subtitle
}

// MergeConfig multiplexes separate video/audio/subtitle inputs into one
// container.
type MergeConfig struct {
	Inputs []MergeStream
	Output string

	VideoCodec string // default copy
	AudioCodec string // default copy
}

// OverlayPosition is a named corner for picture-in-picture placement.
type OverlayPosition string

const (
	OverlayTopLeft     OverlayPosition = "top-left"
	OverlayTopRight    OverlayPosition = "top-right"
	OverlayBottomLeft  OverlayPosition = "bottom-left"
	OverlayBottomRight OverlayPosition = "bottom-right"
)

// AudioSource selects which input's audio survives a composition.
type AudioSource string

const (
	AudioFromMain    AudioSource = "main"
	AudioFromOverlay AudioSource = "overlay"
	AudioFromBoth    AudioSource = "both"
	AudioNone        AudioSource = "none"
)

// PictureInPictureConfig overlays one video onto another.
type PictureInPictureConfig struct {
	Main    Input
	Overlay Input
	Output  string

	Position OverlayPosition
	X, Y     string // explicit coordinates override Position

	OverlaySize *SizeSpec
	Border      *OverlayBorder

	Audio AudioSource

	VideoCodec   string
	VideoBitrate string
}

// OverlayBorder frames the overlay.
type OverlayBorder struct {
	Width int
	Color string
}

// SideBySideConfig stacks two videos for comparison.
type SideBySideConfig struct {
	Left   Input
	Right  Input
	Output string

	// Orientation is horizontal (default) or vertical.
	Orientation string

	MatchSize  bool
	TargetSize string // default 1280x720 when MatchSize is set

	Audio AudioSource // main selects left, overlay selects right

	VideoCodec string
}

// TrailerStrategy selects how trailer segments are chosen.
type TrailerStrategy string

const (
	// TrailerBySegments cuts a fixed number of segments.
	TrailerBySegments TrailerStrategy = "segments"
	// TrailerByDuration fits as many segments as the max duration allows.
	TrailerByDuration TrailerStrategy = "duration"
	// TrailerByScenes cuts at detected scene changes.
	TrailerByScenes TrailerStrategy = "scenes"
	// TrailerByHighlights approximates highlight selection by even
	// distribution.
	TrailerByHighlights TrailerStrategy = "highlights"
)

// SegmentSelection places fixed-count segments within the source.
type SegmentSelection string

const (
	SelectBeginning   SegmentSelection = "beginning"
	SelectMiddle      SegmentSelection = "middle"
	SelectEnd         SegmentSelection = "end"
	SelectDistributed SegmentSelection = "distributed"
)

// TrailerSegment is one cut of the source, with the reason it was picked.
type TrailerSegment struct {
	StartTime float64
	Duration  float64
	Score     float64
	Reason    string
}

// SceneDetectionOptions tunes scene-based segment selection.
type SceneDetectionOptions struct {
	Threshold        float64 // default 0.4
	MinSceneDuration float64 // default 2
}

// TrailerAudio controls the trailer's sound: source audio, optional
// background music, loudness normalization and per-segment fades.
type TrailerAudio struct {
	Disabled    bool
	Music       string
	MusicVolume float64 // default 0.3
	Normalize   bool
	FadeInOut   bool
}

// TrailerVideo is the trailer's output encoding.
type TrailerVideo struct {
	Codec   string
	Bitrate string
	Size    string
	FPS     float64
}

// TrailerConfig describes one trailer generation run.
type TrailerConfig struct {
	Input  Input
	Output string

	Strategy    TrailerStrategy
	MaxDuration float64

	SegmentCount    int
	SegmentDuration float64 // default 5
	Selection       SegmentSelection

	SceneDetection *SceneDetectionOptions

	Video *TrailerVideo
	Audio *TrailerAudio
}

// TrailerResult reports the generated trailer and its cut list.
type TrailerResult struct {
	Output   string
	Duration float64
	Segments []TrailerSegment
}
