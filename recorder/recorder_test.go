package recorder

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func fakeStarter(buf *bytes.Buffer, runErr error, sizes *[][2]int) starter {
	return func(width, height int) (io.WriteCloser, <-chan error) {
		*sizes = append(*sizes, [2]int{width, height})
		errc := make(chan error, 1)
		errc <- runErr
		return nopCloser{buf}, errc
	}
}

func TestNewRequiresOutput(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	r, err := New(Options{OutputFile: "out.mp4"})
	require.NoError(t, err)
	assert.Equal(t, 60, r.opts.FPS)
}

func TestArgs(t *testing.T) {
	in := InputArgs(800, 600, 30)
	assert.Equal(t, "800x600", in["s"])
	assert.Equal(t, "rgba", in["pix_fmt"])
	assert.Equal(t, 30, in["framerate"])

	out := OutputArgs(Options{OutputFile: "out.mp4"})
	assert.Equal(t, "libx264", out["c:v"])
	assert.Equal(t, "vflip", out["vf"])
	assert.NotContains(t, out, "tag:v")

	out = OutputArgs(Options{OutputFile: "out.mp4", Codec: "hevc"})
	assert.Equal(t, "libx265", out["c:v"])
	assert.Equal(t, "hvc1", out["tag:v"])

	out = OutputArgs(Options{OutputFile: "out.mkv", Codec: "hevc"})
	assert.NotContains(t, out, "tag:v")
}

func TestOutputArgsMP4ExtensionIgnoresCase(t *testing.T) {
	for _, file := range []string{"CLIP.MP4", "dir/take.Mp4"} {
		out := OutputArgs(Options{OutputFile: file, Codec: "hevc"})
		assert.Equal(t, "hvc1", out["tag:v"], file)
	}
	for _, file := range []string{"mp4", "out.mp4.mkv", "dir.mp4/out"} {
		out := OutputArgs(Options{OutputFile: file, Codec: "hevc"})
		assert.NotContains(t, out, "tag:v", file)
	}
}

func TestWriteFrameStartsOnceAndStreams(t *testing.T) {
	var buf bytes.Buffer
	var sizes [][2]int
	r, err := New(Options{OutputFile: "out.mp4"})
	require.NoError(t, err)
	r.start = fakeStarter(&buf, nil, &sizes)

	frame := bytes.Repeat([]byte{1, 2, 3, 4}, 2*2)
	require.NoError(t, r.WriteFrame(frame, 2, 2))
	require.NoError(t, r.WriteFrame(frame, 2, 2))
	assert.Equal(t, [][2]int{{2, 2}}, sizes)
	assert.Equal(t, int64(2), r.Frames())
	assert.Equal(t, 2*len(frame), buf.Len())

	assert.Error(t, r.WriteFrame(bytes.Repeat([]byte{0}, 3*2*4), 3, 2))
	assert.Error(t, r.WriteFrame(frame[:4], 2, 2))

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
}

func TestCloseReportsFFmpegFailure(t *testing.T) {
	var buf bytes.Buffer
	var sizes [][2]int
	r, err := New(Options{OutputFile: "out.mp4"})
	require.NoError(t, err)
	r.start = fakeStarter(&buf, errors.New("exit status 1"), &sizes)

	require.NoError(t, r.WriteFrame(make([]byte, 4), 1, 1))
	assert.ErrorContains(t, r.Close(), "exit status 1")
}

func TestCloseWithoutFrames(t *testing.T) {
	r, err := New(Options{OutputFile: "out.mp4"})
	require.NoError(t, err)
	assert.NoError(t, r.Close())
	assert.Error(t, r.WriteFrame(nil, 0, 0))
}
