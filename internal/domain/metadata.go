package domain

// FormatMetadata is the container-level block of a probe result.
type FormatMetadata struct {
	Filename       string
	FormatName     string
	FormatLongName string
	StartTime      string
	Duration       string
	Size           string
	BitRate        string
	ProbeScore     int
	Tags           map[string]string
}

// SideData is one side-channel record attached to a stream, e.g. the display
// matrix carrying rotation for phone recordings.
type SideData struct {
	Type     string
	Rotation *float64
}

// StreamMetadata is one stream of a probe result. Type-specific fields are
// simply zero when not applicable.
type StreamMetadata struct {
	Index         int
	CodecName     string
	CodecLongName string
	CodecType     string
	CodecTag      string

	Width              int
	Height             int
	CodedWidth         int
	CodedHeight        int
	DisplayAspectRatio string
	PixelFormat        string
	FrameRate          string
	AvgFrameRate       string

	SampleRate    string
	Channels      int
	ChannelLayout string
	BitsPerSample int

	Duration  string
	StartTime string
	BitRate   string
	Tags      map[string]string

	SideDataList []SideData
}

// MediaMetadata is the structured result of one probe invocation.
type MediaMetadata struct {
	Format  FormatMetadata
	Streams []StreamMetadata
}

// VideoMetadata is the video-oriented view of MediaMetadata. Parsing fails
// when the media has no video-typed stream.
type VideoMetadata struct {
	Format          FormatMetadata
	VideoStreams    []StreamMetadata
	AudioStreams    []StreamMetadata
	SubtitleStreams []StreamMetadata

	Duration    float64
	Width       int
	Height      int
	FrameRate   float64
	VideoCodec  string
	AudioCodec  string
	BitrateKbps float64
	Size        int64
	Rotation    *int
}

// ImageMetadata is the still-image view of MediaMetadata.
type ImageMetadata struct {
	Format      FormatMetadata
	Width       int
	Height      int
	PixelFormat string
	Codec       string
	Size        int64
}
