package filters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
)

func floatp(v float64) *float64 { return &v }
func intp(v int) *int           { return &v }

func TestVideoChainCanonicalOrder(t *testing.T) {
	// Declared deliberately out of application order; the chain builder must
	// still emit deinterlace, crop, denoise, scale, pad, color, sharpen,
	// rotate, flip, text, fade, custom.
	f := &domain.VideoFilters{
		Fade:        &domain.FadeFilter{Type: "in"},
		Custom:      []string{"setpts=PTS/2"},
		Scale:       &domain.ScaleFilter{Width: "1280", Height: "720"},
		Flip:        &domain.FlipFilter{Horizontal: true},
		Crop:        &domain.CropFilter{Width: "640", Height: "480"},
		Deinterlace: &domain.DeinterlaceFilter{},
	}

	chain := VideoChain(f)
	clauses := strings.Split(chain, ",")
	require.Len(t, clauses, 6)
	assert.Equal(t, "yadif", clauses[0])
	assert.True(t, strings.HasPrefix(clauses[1], "crop="))
	assert.True(t, strings.HasPrefix(clauses[2], "scale="))
	assert.Equal(t, "hflip", clauses[3])
	assert.True(t, strings.HasPrefix(clauses[4], "fade="))
	assert.Equal(t, "setpts=PTS/2", clauses[5])
}

func TestVideoChainEmptyBag(t *testing.T) {
	assert.Equal(t, "", VideoChain(nil))
	assert.Equal(t, "", VideoChain(&domain.VideoFilters{}))
}

func TestScaleDefaultsToAutoDimensions(t *testing.T) {
	assert.Equal(t, "scale=-1:720", Scale(domain.ScaleFilter{Height: "720"}))
	assert.Equal(t, "scale=1280:-1:flags=lanczos", Scale(domain.ScaleFilter{Width: "1280", Algorithm: domain.ScaleLanczos}))
}

func TestCropCentersByDefault(t *testing.T) {
	assert.Equal(t, "crop=640:480:(iw-w)/2:(ih-h)/2", Crop(domain.CropFilter{Width: "640", Height: "480"}))
	assert.Equal(t, "crop=640:480:0:0", Crop(domain.CropFilter{Width: "640", Height: "480", X: "0", Y: "0"}))
}

func TestTextEscapesSingleQuotes(t *testing.T) {
	clause := Text(domain.TextFilter{Text: "it's live"})
	assert.Contains(t, clause, `text='it\'s live'`)
}

func TestVideoChainSkipsWatermark(t *testing.T) {
	// Overlay needs a second input stream, which a single -vf chain never
	// has. Watermarks must only surface through the complex-graph path.
	only := &domain.VideoFilters{Watermark: &domain.WatermarkFilter{X: "10", Y: "10"}}
	assert.Equal(t, "", VideoChain(only))

	mixed := &domain.VideoFilters{
		Watermark: &domain.WatermarkFilter{X: "10", Y: "10"},
		Scale:     &domain.ScaleFilter{Width: "1280", Height: "720"},
	}
	chain := VideoChain(mixed)
	assert.Equal(t, "scale=1280:720", chain)
	assert.NotContains(t, chain, "overlay")
}

func TestWatermarkOpacityRoutesThroughAlphaVariant(t *testing.T) {
	plain := Watermark(domain.WatermarkFilter{X: "10", Y: "10"})
	assert.Equal(t, "overlay=x=10:y=10", plain)

	alpha := Watermark(domain.WatermarkFilter{X: "10", Y: "10", Opacity: floatp(0.5)})
	assert.Equal(t, "overlay=x=10:y=10:format=auto:alpha=0.5", alpha)
}

func TestAudioChainVolumeStaysLast(t *testing.T) {
	f := &domain.AudioFilters{
		Volume:  &domain.VolumeFilter{Volume: "2"},
		Tempo:   1.5,
		Denoise: &domain.AudioDenoiseFilter{},
	}

	chain := AudioChain(f)
	assert.Equal(t, "afftdn,atempo=1.5,volume=2", chain)
}

func TestPitchSynthesizesResampleComposite(t *testing.T) {
	assert.Equal(t, "asetrate=44100*2^(3/12),aresample=44100", Pitch(3))
}

func TestUpscaleSubChain(t *testing.T) {
	parts := Upscale(domain.UpscaleOptions{
		Algorithm:          domain.ScaleLanczos,
		TargetWidth:        3840,
		TargetHeight:       2160,
		DenoiseBeforeScale: true,
		EnhanceSharpness:   true,
	})
	require.Len(t, parts, 3)
	assert.Equal(t, "hqdn3d=4:3:6:4.5", parts[0])
	assert.Equal(t, "scale=3840:2160:flags=lanczos", parts[1])
	assert.Equal(t, "unsharp=5:5:1:5:5:0.0", parts[2])
}

func TestDownscalePreserveDetailsForcesLanczos(t *testing.T) {
	parts := Downscale(domain.DownscaleOptions{
		Algorithm:       domain.ScaleBilinear,
		TargetWidth:     640,
		TargetHeight:    360,
		PreserveDetails: true,
	})
	require.Len(t, parts, 1)
	assert.Equal(t, "scale=640:360:flags=lanczos", parts[0])
}

func TestComplexGraphSerialization(t *testing.T) {
	graph := ComplexGraph([]domain.FilterSpec{
		{
			Inputs:  []string{"0:v"},
			Filter:  "scale",
			Options: map[string]string{"w": "640", "h": "360"},
			Outputs: []string{"small"},
		},
		{
			Inputs:  []string{"1:v", "small"},
			Filter:  "overlay",
			Outputs: []string{"out"},
		},
	})
	assert.Equal(t, "[0:v]scale=h=360:w=640[small];[1:v][small]overlay[out]", graph)
}

func TestEqualizerBands(t *testing.T) {
	clause := Equalizer(domain.EqualizerFilter{
		Frequency: 1000,
		WidthType: "q",
		Width:     floatp(1.5),
		Gain:      floatp(-3),
	})
	assert.Equal(t, "equalizer=f=1000:t=q:w=1.5:g=-3", clause)
}

func TestSharpenRendersOnlySetFields(t *testing.T) {
	assert.Equal(t, "unsharp", Sharpen(domain.SharpenFilter{}))
	assert.Equal(t, "unsharp=luma_amount=1.2", Sharpen(domain.SharpenFilter{LumaAmount: floatp(1.2)}))
}

func TestDeinterlaceTranslatesSelectors(t *testing.T) {
	clause := Deinterlace(domain.DeinterlaceFilter{Mode: "yadif", Parity: "tff", Deint: "interlaced"})
	assert.Equal(t, "yadif=0:1", clause)
}

func TestFadeClause(t *testing.T) {
	clause := Fade(domain.FadeFilter{Type: "out", StartTime: floatp(25), Duration: floatp(2.5)})
	assert.Equal(t, "fade=type=out:start_time=25:duration=2.5", clause)
}

func TestRotateWithFill(t *testing.T) {
	bilinear := true
	clause := Rotate(domain.RotateFilter{Angle: "PI/4", FillColor: "black", Bilinear: &bilinear})
	assert.Equal(t, "rotate=a=PI/4:fillcolor=black:bilinear=1", clause)
}

func TestShadowedText(t *testing.T) {
	clause := Text(domain.TextFilter{
		Text:        "title",
		FontSize:    24,
		FontColor:   "white",
		ShadowColor: "black",
		ShadowX:     intp(2),
		ShadowY:     intp(2),
	})
	assert.Equal(t, "drawtext=text='title':fontsize=24:fontcolor=white:shadowcolor=black:shadowx=2:shadowy=2", clause)
}
