// Package filters serializes filter configurations into the converter's
// filter-graph expressions. Filters are unordered in the configuration; the
// chain builders impose a canonical application order because the graph is
// order-sensitive (crop before scale keeps crop coordinates in source space,
// denoise before scale preserves detail ahead of resampling).
package filters

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
)

// Scale renders a scale clause. Zero dimensions map to the auto sentinel -1.
func Scale(f domain.ScaleFilter) string {
	width := f.Width
	if width == "" {
		width = "-1"
	}
	height := f.Height
	if height == "" {
		height = "-1"
	}
	parts := []string{width + ":" + height}
	if f.Algorithm != "" {
		parts = append(parts, "flags="+f.Algorithm)
	}
	if f.ForceOriginalAspectRatio != "" {
		parts = append(parts, "force_original_aspect_ratio="+f.ForceOriginalAspectRatio)
	}
	if f.ForceDivisibleBy != 0 {
		parts = append(parts, "force_divisible_by="+strconv.Itoa(f.ForceDivisibleBy))
	}
	return "scale=" + strings.Join(parts, ":")
}

// Crop renders a crop clause, centering by default.
func Crop(f domain.CropFilter) string {
	x := f.X
	if x == "" {
		x = "(iw-w)/2"
	}
	y := f.Y
	if y == "" {
		y = "(ih-h)/2"
	}
	return fmt.Sprintf("crop=%s:%s:%s:%s", f.Width, f.Height, x, y)
}

// Pad renders a pad clause.
func Pad(f domain.PadFilter) string {
	parts := []string{f.Width, f.Height}
	if f.X != "" {
		parts = append(parts, f.X)
	}
	if f.Y != "" {
		parts = append(parts, f.Y)
	}
	if f.Color != "" {
		parts = append(parts, f.Color)
	}
	return "pad=" + strings.Join(parts, ":")
}

// Deinterlace renders a yadif-family clause. Parity and deint selectors are
// translated to the filter's numeric arguments.
func Deinterlace(f domain.DeinterlaceFilter) string {
	mode := f.Mode
	if mode == "" {
		mode = "yadif"
	}
	var parts []string
	if f.Parity != "" {
		parity := map[string]string{"tff": "0", "bff": "1", "auto": "-1"}[f.Parity]
		if parity == "" {
			parity = "-1"
		}
		parts = append(parts, parity)
	}
	if f.Deint != "" {
		deint := map[string]string{"all": "0", "interlaced": "1"}[f.Deint]
		if deint == "" {
			deint = "0"
		}
		parts = append(parts, deint)
	}
	if len(parts) == 0 {
		return mode
	}
	return mode + "=" + strings.Join(parts, ":")
}

// Denoise renders an hqdn3d-family clause.
func Denoise(f domain.VideoDenoiseFilter) string {
	name := f.Filter
	if name == "" {
		name = "hqdn3d"
	}
	var parts []string
	for _, v := range []*float64{f.LumaSpatial, f.ChromaSpatial, f.LumaTmp, f.ChromaTmp} {
		if v != nil {
			parts = append(parts, formatFloat(*v))
		}
	}
	if len(parts) == 0 {
		return name
	}
	return name + "=" + strings.Join(parts, ":")
}

// Sharpen renders an unsharp clause.
func Sharpen(f domain.SharpenFilter) string {
	var parts []string
	if f.LumaMsizeX != nil {
		parts = append(parts, "luma_msize_x="+strconv.Itoa(*f.LumaMsizeX))
	}
	if f.LumaMsizeY != nil {
		parts = append(parts, "luma_msize_y="+strconv.Itoa(*f.LumaMsizeY))
	}
	if f.LumaAmount != nil {
		parts = append(parts, "luma_amount="+formatFloat(*f.LumaAmount))
	}
	if f.ChromaMsizeX != nil {
		parts = append(parts, "chroma_msize_x="+strconv.Itoa(*f.ChromaMsizeX))
	}
	if f.ChromaMsizeY != nil {
		parts = append(parts, "chroma_msize_y="+strconv.Itoa(*f.ChromaMsizeY))
	}
	if f.ChromaAmount != nil {
		parts = append(parts, "chroma_amount="+formatFloat(*f.ChromaAmount))
	}
	if len(parts) == 0 {
		return "unsharp"
	}
	return "unsharp=" + strings.Join(parts, ":")
}

// Color renders an eq clause.
func Color(f domain.ColorFilter) string {
	var parts []string
	add := func(key string, v *float64) {
		if v != nil {
			parts = append(parts, key+"="+formatFloat(*v))
		}
	}
	add("brightness", f.Brightness)
	add("contrast", f.Contrast)
	add("saturation", f.Saturation)
	add("gamma", f.Gamma)
	add("gamma_r", f.GammaR)
	add("gamma_g", f.GammaG)
	add("gamma_b", f.GammaB)
	return "eq=" + strings.Join(parts, ":")
}

// Rotate renders a rotate clause; fill color and the bilinear switch both
// serialize when present.
func Rotate(f domain.RotateFilter) string {
	parts := []string{"a=" + f.Angle}
	if f.FillColor != "" {
		parts = append(parts, "fillcolor="+f.FillColor)
	}
	if f.Bilinear != nil {
		b := "0"
		if *f.Bilinear {
			b = "1"
		}
		parts = append(parts, "bilinear="+b)
	}
	return "rotate=" + strings.Join(parts, ":")
}

// Flip renders hflip/vflip clauses.
func Flip(f domain.FlipFilter) string {
	var parts []string
	if f.Horizontal {
		parts = append(parts, "hflip")
	}
	if f.Vertical {
		parts = append(parts, "vflip")
	}
	return strings.Join(parts, ",")
}

// Watermark renders an overlay clause. An opacity value routes through the
// alpha variant rather than a bare overlay.
func Watermark(f domain.WatermarkFilter) string {
	var parts []string
	if f.X != "" {
		parts = append(parts, "x="+f.X)
	}
	if f.Y != "" {
		parts = append(parts, "y="+f.Y)
	}
	if f.Opacity != nil {
		return fmt.Sprintf("overlay=%s:format=auto:alpha=%s", strings.Join(parts, ":"), formatFloat(*f.Opacity))
	}
	if f.Enable != "" {
		parts = append(parts, "enable='"+f.Enable+"'")
	}
	return "overlay=" + strings.Join(parts, ":")
}

// Text renders a drawtext clause, escaping single quotes in the literal text.
func Text(f domain.TextFilter) string {
	escaped := strings.ReplaceAll(f.Text, "'", `\'`)
	parts := []string{"text='" + escaped + "'"}
	if f.FontFile != "" {
		parts = append(parts, "fontfile="+f.FontFile)
	}
	if f.FontSize != 0 {
		parts = append(parts, "fontsize="+strconv.Itoa(f.FontSize))
	}
	if f.FontColor != "" {
		parts = append(parts, "fontcolor="+f.FontColor)
	}
	if f.X != "" {
		parts = append(parts, "x="+f.X)
	}
	if f.Y != "" {
		parts = append(parts, "y="+f.Y)
	}
	if f.ShadowColor != "" {
		parts = append(parts, "shadowcolor="+f.ShadowColor)
	}
	if f.ShadowX != nil {
		parts = append(parts, "shadowx="+strconv.Itoa(*f.ShadowX))
	}
	if f.ShadowY != nil {
		parts = append(parts, "shadowy="+strconv.Itoa(*f.ShadowY))
	}
	if f.BorderW != nil {
		parts = append(parts, "borderw="+strconv.Itoa(*f.BorderW))
	}
	if f.BorderColor != "" {
		parts = append(parts, "bordercolor="+f.BorderColor)
	}
	return "drawtext=" + strings.Join(parts, ":")
}

// Fade renders a fade clause.
func Fade(f domain.FadeFilter) string {
	parts := []string{"type=" + f.Type}
	if f.StartFrame != nil {
		parts = append(parts, "start_frame="+strconv.Itoa(*f.StartFrame))
	}
	if f.NBFrames != nil {
		parts = append(parts, "nb_frames="+strconv.Itoa(*f.NBFrames))
	}
	if f.StartTime != nil {
		parts = append(parts, "start_time="+formatFloat(*f.StartTime))
	}
	if f.Duration != nil {
		parts = append(parts, "duration="+formatFloat(*f.Duration))
	}
	if f.Color != "" {
		parts = append(parts, "color="+f.Color)
	}
	return "fade=" + strings.Join(parts, ":")
}

// Volume renders a volume clause.
func Volume(f domain.VolumeFilter) string {
	parts := []string{"volume=" + f.Volume}
	if f.Precision != "" {
		parts = append(parts, "precision="+f.Precision)
	}
	return strings.Join(parts, ":")
}

// AudioDenoise renders an afftdn clause.
func AudioDenoise(f domain.AudioDenoiseFilter) string {
	var parts []string
	if f.NoiseReduction != nil {
		parts = append(parts, "nr="+formatFloat(*f.NoiseReduction))
	}
	if f.NoiseType != "" {
		parts = append(parts, "nf="+f.NoiseType)
	}
	if len(parts) == 0 {
		return "afftdn"
	}
	return "afftdn=" + strings.Join(parts, ":")
}

// Equalizer renders one parametric EQ band.
func Equalizer(f domain.EqualizerFilter) string {
	parts := []string{"f=" + strconv.Itoa(f.Frequency)}
	if f.WidthType != "" {
		parts = append(parts, "t="+f.WidthType)
	}
	if f.Width != nil {
		parts = append(parts, "w="+formatFloat(*f.Width))
	}
	if f.Gain != nil {
		parts = append(parts, "g="+formatFloat(*f.Gain))
	}
	return "equalizer=" + strings.Join(parts, ":")
}

// Tempo renders an atempo clause.
func Tempo(tempo float64) string {
	return "atempo=" + formatFloat(tempo)
}

// Pitch synthesizes a pitch shift as a sample-rate resample composite; the
// converter has no native pitch filter.
func Pitch(semitones int) string {
	return fmt.Sprintf("asetrate=44100*2^(%d/12),aresample=44100", semitones)
}

// Upscale expands an upscale descriptor into its sub-chain: optional
// pre-denoise, the scale itself, optional post-sharpen.
func Upscale(o domain.UpscaleOptions) []string {
	var chain []string
	if o.DenoiseBeforeScale {
		chain = append(chain, "hqdn3d=4:3:6:4.5")
	}
	chain = append(chain, fmt.Sprintf("scale=%d:%d:flags=%s", o.TargetWidth, o.TargetHeight, o.Algorithm))
	if o.EnhanceSharpness {
		amount := o.SharpnessAmount
		if amount == 0 {
			amount = 1.0
		}
		chain = append(chain, fmt.Sprintf("unsharp=5:5:%s:5:5:0.0", formatFloat(amount)))
	}
	return chain
}

// Downscale expands a downscale descriptor; detail preservation forces the
// lanczos resampler.
func Downscale(o domain.DownscaleOptions) []string {
	var chain []string
	if o.Deinterlace {
		chain = append(chain, "yadif=0:-1:0")
	}
	algorithm := o.Algorithm
	if o.PreserveDetails {
		algorithm = domain.ScaleLanczos
	}
	chain = append(chain, fmt.Sprintf("scale=%d:%d:flags=%s", o.TargetWidth, o.TargetHeight, algorithm))
	return chain
}

// VideoChain serializes the full video filter bag in canonical order:
// deinterlace, crop, denoise, scale, pad, color, sharpen, rotate, flip,
// text, fade, then raw custom filters last. Returns "" when no filter is
// set. Watermarks are excluded: overlay needs a second input, so they only
// work through the complex-graph path.
func VideoChain(f *domain.VideoFilters) string {
	if f == nil {
		return ""
	}
	var chain []string
	if f.Deinterlace != nil {
		chain = append(chain, Deinterlace(*f.Deinterlace))
	}
	if f.Crop != nil {
		chain = append(chain, Crop(*f.Crop))
	}
	if f.Denoise != nil {
		chain = append(chain, Denoise(*f.Denoise))
	}
	if f.Scale != nil {
		chain = append(chain, Scale(*f.Scale))
	}
	if f.Pad != nil {
		chain = append(chain, Pad(*f.Pad))
	}
	if f.Color != nil {
		chain = append(chain, Color(*f.Color))
	}
	if f.Sharpen != nil {
		chain = append(chain, Sharpen(*f.Sharpen))
	}
	if f.Rotate != nil {
		chain = append(chain, Rotate(*f.Rotate))
	}
	if f.Flip != nil {
		if clause := Flip(*f.Flip); clause != "" {
			chain = append(chain, clause)
		}
	}
	if f.Text != nil {
		chain = append(chain, Text(*f.Text))
	}
	if f.Fade != nil {
		chain = append(chain, Fade(*f.Fade))
	}
	chain = append(chain, f.Custom...)
	return strings.Join(chain, ",")
}

// AudioChain serializes the audio filter bag in canonical order: denoise,
// one equalizer clause per band, tempo, pitch, volume, then custom. Volume
// stays last so gain staging reflects all prior processing.
func AudioChain(f *domain.AudioFilters) string {
	if f == nil {
		return ""
	}
	var chain []string
	if f.Denoise != nil {
		chain = append(chain, AudioDenoise(*f.Denoise))
	}
	for _, band := range f.Equalizer {
		chain = append(chain, Equalizer(band))
	}
	if f.Tempo != 0 {
		chain = append(chain, Tempo(f.Tempo))
	}
	if f.Pitch != nil {
		chain = append(chain, Pitch(*f.Pitch))
	}
	if f.Volume != nil {
		chain = append(chain, Volume(*f.Volume))
	}
	chain = append(chain, f.Custom...)
	return strings.Join(chain, ",")
}

// ComplexGraph serializes a multi-input filter graph as semicolon-joined
// clauses of the form {[in...]}name=k=v:k=v{[out...]}.
func ComplexGraph(specs []domain.FilterSpec) string {
	clauses := make([]string, 0, len(specs))
	for _, spec := range specs {
		var b strings.Builder
		for _, in := range spec.Inputs {
			b.WriteString("[" + in + "]")
		}
		b.WriteString(spec.Filter)
		if len(spec.Options) > 0 {
			opts := make([]string, 0, len(spec.Options))
			for _, k := range sortedKeys(spec.Options) {
				opts = append(opts, k+"="+spec.Options[k])
			}
			b.WriteString("=" + strings.Join(opts, ":"))
		}
		for _, out := range spec.Outputs {
			b.WriteString("[" + out + "]")
		}
		clauses = append(clauses, b.String())
	}
	return strings.Join(clauses, ";")
}

// Option maps are rendered in sorted key order so generated graphs are
// deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
