package domain

// Scaling algorithms understood by the converter's scale filter.
const (
	ScaleFastBilinear = "fast_bilinear"
	ScaleBilinear     = "bilinear"
	ScaleBicubic      = "bicubic"
	ScaleNeighbor     = "neighbor"
	ScaleArea         = "area"
	ScaleBicublin     = "bicublin"
	ScaleGauss        = "gauss"
	ScaleSinc         = "sinc"
	ScaleLanczos      = "lanczos"
	ScaleSpline       = "spline"
)

// ScaleFilter resizes the video. Zero Width or Height means auto (-1).
type ScaleFilter struct {
	Width                    string
	Height                   string
	Algorithm                string
	ForceOriginalAspectRatio string // disable, decrease, increase
	ForceDivisibleBy         int
}

// CropFilter cuts a region out of the frame. X/Y default to centering
// expressions when empty.
type CropFilter struct {
	Width  string
	Height string
	X      string
	Y      string
}

// PadFilter letterboxes the frame to Width x Height.
type PadFilter struct {
	Width  string
	Height string
	X      string
	Y      string
	Color  string
}

// DeinterlaceFilter removes interlacing artifacts.
type DeinterlaceFilter struct {
	Mode   string // yadif, bwdif, w3fdif
	Parity string // tff, bff, auto
	Deint  string // all, interlaced
}

// VideoDenoiseFilter reduces video noise. Strengths are pointers so that an
// explicit zero survives serialization.
type VideoDenoiseFilter struct {
	Filter        string // hqdn3d, nlmeans, atadenoise, vaguedenoiser
	LumaSpatial   *float64
	ChromaSpatial *float64
	LumaTmp       *float64
	ChromaTmp     *float64
}

// SharpenFilter maps onto the unsharp filter.
type SharpenFilter struct {
	LumaMsizeX   *int
	LumaMsizeY   *int
	LumaAmount   *float64
	ChromaMsizeX *int
	ChromaMsizeY *int
	ChromaAmount *float64
}

// ColorFilter adjusts brightness/contrast/saturation/gamma via eq.
type ColorFilter struct {
	Brightness *float64
	Contrast   *float64
	Saturation *float64
	Gamma      *float64
	GammaR     *float64
	GammaG     *float64
	GammaB     *float64
}

// RotateFilter rotates by an angle expression.
type RotateFilter struct {
	Angle     string
	FillColor string
	Bilinear  *bool
}

// FlipFilter mirrors the frame.
type FlipFilter struct {
	Horizontal bool
	Vertical   bool
}

// WatermarkFilter overlays an image. An Opacity value routes through the
// alpha overlay variant instead of a bare overlay.
type WatermarkFilter struct {
	Input   string
	X       string
	Y       string
	Opacity *float64
	Enable  string
}

// TextFilter draws text on the frame. Single quotes in Text are escaped.
type TextFilter struct {
	Text        string
	FontFile    string
	FontSize    int
	FontColor   string
	X           string
	Y           string
	ShadowColor string
	ShadowX     *int
	ShadowY     *int
	BorderW     *int
	BorderColor string
}

// FadeFilter fades the video in or out.
type FadeFilter struct {
	Type       string // in, out
	StartFrame *int
	NBFrames   *int
	StartTime  *float64
	Duration   *float64
	Color      string
}

// VolumeFilter adjusts gain; Volume accepts a factor or a dB expression.
type VolumeFilter struct {
	Volume    string
	Precision string // fixed, float, double
}

// AudioDenoiseFilter maps onto afftdn.
type AudioDenoiseFilter struct {
	NoiseReduction *float64
	NoiseType      string // white, vinyl, shellac, hiss
}

// EqualizerFilter is one parametric EQ band.
type EqualizerFilter struct {
	Frequency int
	WidthType string // h, q, o, s
	Width     *float64
	Gain      *float64
}

// VideoFilters is the unordered bag of per-stream video filters. The chain
// builder imposes the canonical application order regardless of which fields
// are set.
type VideoFilters struct {
	Scale       *ScaleFilter
	Crop        *CropFilter
	Pad         *PadFilter
	Deinterlace *DeinterlaceFilter
	Denoise     *VideoDenoiseFilter
	Sharpen     *SharpenFilter
	Color       *ColorFilter
	Rotate      *RotateFilter
	Flip        *FlipFilter
	Watermark   *WatermarkFilter
	Text        *TextFilter
	Fade        *FadeFilter
	Custom      []string
}

// AudioFilters is the unordered bag of per-stream audio filters.
type AudioFilters struct {
	Volume    *VolumeFilter
	Denoise   *AudioDenoiseFilter
	Equalizer []EqualizerFilter
	Tempo     float64 // 0 = unset; otherwise 0.5..2.0
	Pitch     *int    // semitone offset
	Custom    []string
}

// FilterSpec is one clause of a complex multi-input filter graph.
type FilterSpec struct {
	Inputs  []string
	Filter  string
	Options map[string]string
	Outputs []string
}

// UpscaleOptions expand into a pre-denoise / scale / post-sharpen sub-chain
// placed before the standard filter chain.
type UpscaleOptions struct {
	Algorithm          string
	TargetWidth        int
	TargetHeight       int
	EnhanceSharpness   bool
	DenoiseBeforeScale bool
	SharpnessAmount    float64
}

// DownscaleOptions mirror UpscaleOptions for size reduction.
type DownscaleOptions struct {
	Algorithm       string
	TargetWidth     int
	TargetHeight    int
	Deinterlace     bool
	PreserveDetails bool
}
