package domain

// ThumbnailStrategy selects how thumbnail timestamps are chosen.
type ThumbnailStrategy string

const (
	// ThumbnailAtTimes extracts one frame per explicitly listed time.
	ThumbnailAtTimes ThumbnailStrategy = "time"
	// ThumbnailByCount distributes N frames evenly across the duration.
	ThumbnailByCount ThumbnailStrategy = "count"
	// ThumbnailByInterval extracts one frame every Interval seconds.
	ThumbnailByInterval ThumbnailStrategy = "interval"
	// ThumbnailByScene extracts a frame at each detected scene change.
	ThumbnailByScene ThumbnailStrategy = "scene"
	// ThumbnailBestQuality lets the converter pick representative frames.
	ThumbnailBestQuality ThumbnailStrategy = "quality"
)

// ThumbnailConfig describes one thumbnail extraction run. Output is a path
// or a pattern containing %d; without %d an index suffix is added per frame.
type ThumbnailConfig struct {
	Input    Input
	Output   string
	Strategy ThumbnailStrategy

	Times    []Timecode
	Count    int
	Interval float64

	SkipFirst float64
	SkipLast  float64

	SceneThreshold float64

	Size    *SizeSpec
	Quality *int
}

// ThumbnailResult lists the frames an extraction produced. Timestamps are
// empty for strategies where the converter picks the frames itself.
type ThumbnailResult struct {
	Files      []string
	Count      int
	Timestamps []float64
}

// ScreenshotConfig describes a single-frame grab, by time or frame number.
type ScreenshotConfig struct {
	Input  Input
	Output string

	Time  *Timecode
	Frame *int

	Size        *SizeSpec
	AspectRatio string
	Quality     *int
	Filters     *VideoFilters
}

// ScreenshotsConfig describes a multi-frame grab into a folder. Exactly one
// of Timestamps, Count or Interval selects the times.
type ScreenshotsConfig struct {
	Input    Input
	Folder   string
	Filename string // pattern with %i, default screenshot-%i.jpg

	Timestamps []Timecode
	Count      int
	Interval   float64

	Size    *SizeSpec
	Quality *int
	Filters *VideoFilters
}
