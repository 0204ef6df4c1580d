package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const videoProbeJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_long_name": "H.264 / AVC / MPEG-4 AVC",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "pix_fmt": "yuv420p",
      "r_frame_rate": "30/1",
      "avg_frame_rate": "30/1",
      "tags": {"rotate": "90"},
      "side_data_list": [
        {"side_data_type": "Display Matrix", "rotation": -90}
      ]
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "sample_rate": "48000",
      "channels": 2,
      "channel_layout": "stereo"
    }
  ],
  "format": {
    "filename": "in.mp4",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
    "duration": "120.500000",
    "size": "15000000",
    "bit_rate": "996000",
    "probe_score": 100,
    "tags": {"major_brand": "isom"}
  }
}`

const imageProbeJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "png",
      "codec_type": "video",
      "width": 800,
      "height": 600,
      "pix_fmt": "rgba",
      "r_frame_rate": "0/0",
      "avg_frame_rate": "0/0"
    }
  ],
  "format": {
    "filename": "img.png",
    "format_name": "png_pipe",
    "size": "52000"
  }
}`

func TestParseMediaMetadata(t *testing.T) {
	meta, err := ParseMediaMetadata([]byte(videoProbeJSON))
	require.NoError(t, err)

	assert.Equal(t, "in.mp4", meta.Format.Filename)
	assert.Equal(t, "120.500000", meta.Format.Duration)
	assert.Equal(t, "isom", meta.Format.Tags["major_brand"])

	require.Len(t, meta.Streams, 2)
	assert.Equal(t, "h264", meta.Streams[0].CodecName)
	assert.Equal(t, 1920, meta.Streams[0].Width)
	assert.Equal(t, "30/1", meta.Streams[0].AvgFrameRate)
	assert.Equal(t, 2, meta.Streams[1].Channels)

	require.Len(t, meta.Streams[0].SideDataList, 1)
	assert.Equal(t, "Display Matrix", meta.Streams[0].SideDataList[0].Type)
}

func TestParseMediaMetadataMalformed(t *testing.T) {
	_, err := ParseMediaMetadata([]byte("not json"))
	require.Error(t, err)
}

func TestParseMediaMetadataOptionalFieldsAbsent(t *testing.T) {
	meta, err := ParseMediaMetadata([]byte(`{"streams": [], "format": {}}`))
	require.NoError(t, err)
	assert.NotNil(t, meta.Format.Tags)
	assert.Empty(t, meta.Streams)
}

func TestVideoMetadataView(t *testing.T) {
	meta, err := ParseMediaMetadata([]byte(videoProbeJSON))
	require.NoError(t, err)

	video, err := VideoMetadata(meta)
	require.NoError(t, err)

	assert.Equal(t, 120.5, video.Duration)
	assert.Equal(t, 1920, video.Width)
	assert.Equal(t, 1080, video.Height)
	assert.Equal(t, 30.0, video.FrameRate)
	assert.Equal(t, "h264", video.VideoCodec)
	assert.Equal(t, "aac", video.AudioCodec)
	assert.Equal(t, 996.0, video.BitrateKbps)
	assert.Equal(t, int64(15000000), video.Size)
	require.Len(t, video.VideoStreams, 1)
	require.Len(t, video.AudioStreams, 1)
}

func TestRotationSideDataWinsOverTag(t *testing.T) {
	meta, err := ParseMediaMetadata([]byte(videoProbeJSON))
	require.NoError(t, err)

	video, err := VideoMetadata(meta)
	require.NoError(t, err)
	require.NotNil(t, video.Rotation)
	assert.Equal(t, -90, *video.Rotation)
}

func TestVideoMetadataRequiresVideoStream(t *testing.T) {
	meta, err := ParseMediaMetadata([]byte(`{"streams": [{"codec_type": "audio", "codec_name": "mp3"}], "format": {}}`))
	require.NoError(t, err)

	_, err = VideoMetadata(meta)
	require.Error(t, err)
}

func TestImageMetadataView(t *testing.T) {
	meta, err := ParseMediaMetadata([]byte(imageProbeJSON))
	require.NoError(t, err)

	img, err := ImageMetadata(meta)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Width)
	assert.Equal(t, 600, img.Height)
	assert.Equal(t, "rgba", img.PixelFormat)
	assert.Equal(t, "png", img.Codec)
	assert.Equal(t, int64(52000), img.Size)
}

func TestVideoImageClassification(t *testing.T) {
	video, err := ParseMediaMetadata([]byte(videoProbeJSON))
	require.NoError(t, err)
	assert.True(t, IsVideo(video))
	assert.False(t, IsImage(video))

	image, err := ParseMediaMetadata([]byte(imageProbeJSON))
	require.NoError(t, err)
	assert.False(t, IsVideo(image))
	assert.True(t, IsImage(image))
}
