package fftime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parth181195/ffmpeg-forge/internal/domain"
)

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatSeconds(0))
	assert.Equal(t, "00:01:30", FormatSeconds(90))
	assert.Equal(t, "01:01:01", FormatSeconds(3661))
	assert.Equal(t, "02:46:40", FormatSeconds(10000))
}

func TestFormatSecondsPrecise(t *testing.T) {
	assert.Equal(t, "00:00:05.50", FormatSecondsPrecise(5.5))
	assert.Equal(t, "00:01:30.25", FormatSecondsPrecise(90.25))
}

func TestFormatPrefersRawTimecode(t *testing.T) {
	assert.Equal(t, "00:01:30", Format(domain.Timecode{Raw: "00:01:30", Seconds: 999}))
	assert.Equal(t, "00:00:45", Format(domain.Timecode{Seconds: 45}))
}

func TestParseTimemark(t *testing.T) {
	assert.Equal(t, 50.0, ParseTimemark("00:00:50.00"))
	assert.Equal(t, 3661.5, ParseTimemark("01:01:01.50"))
	assert.Equal(t, 0.0, ParseTimemark("nonsense"))
	assert.Equal(t, 0.0, ParseTimemark("01:02"))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "50%", FormatSize(domain.SizeSpec{Raw: "50%"}))
	assert.Equal(t, "1920x1080", FormatSize(domain.SizeSpec{Width: 1920, Height: 1080}))
	assert.Equal(t, "1280x-1", FormatSize(domain.SizeSpec{Width: 1280}))
	assert.Equal(t, "-1x720", FormatSize(domain.SizeSpec{Height: 720}))
	assert.Equal(t, "", FormatSize(domain.SizeSpec{}))
}
