// Package recorder pipes rendered frames into ffmpeg to produce a video file.
package recorder

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type Options struct {
	OutputFile string
	FPS        int
	// Codec is "h264" (default) or "hevc".
	Codec      string
	FFmpegPath string
}

type starter func(width, height int) (io.WriteCloser, <-chan error)

// Recorder starts ffmpeg on the first frame, so the video takes the size of
// the framebuffer rather than the requested window size.
type Recorder struct {
	opts   Options
	start  starter
	w      io.WriteCloser
	errc   <-chan error
	width  int
	height int
	frames int64
}

func New(opts Options) (*Recorder, error) {
	if opts.OutputFile == "" {
		return nil, fmt.Errorf("recorder: no output file")
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	r := &Recorder{opts: opts}
	r.start = r.startFFmpeg
	return r, nil
}

// InputArgs describes the raw frames written to ffmpeg's stdin.
func InputArgs(width, height, fps int) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": fps,
	}
}

// OutputArgs selects the encoder. Frames arrive bottom-up from glReadPixels,
// so they are flipped on the way out.
func OutputArgs(opts Options) ffmpeg.KwArgs {
	args := ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}
	if opts.Codec == "hevc" {
		args["c:v"] = "libx265"
		if strings.EqualFold(filepath.Ext(opts.OutputFile), ".mp4") {
			args["tag:v"] = "hvc1"
		}
	} else {
		args["c:v"] = "libx264"
	}
	return args
}

func (r *Recorder) startFFmpeg(width, height int) (io.WriteCloser, <-chan error) {
	pipeReader, pipeWriter := io.Pipe()
	ffmpegCmd := ffmpeg.Input("pipe:", InputArgs(width, height, r.opts.FPS)).
		Output(r.opts.OutputFile, OutputArgs(r.opts)).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if r.opts.FFmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(r.opts.FFmpegPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// Unblock the render loop if ffmpeg exits before reading everything.
		pipeReader.Close()
		errc <- err
	}()
	return pipeWriter, errc
}

// WriteFrame sends one RGBA frame. Every frame must have the size of the first.
func (r *Recorder) WriteFrame(pixels []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("recorder: invalid frame size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return fmt.Errorf("recorder: frame has %d bytes, want %d", len(pixels), width*height*4)
	}
	if r.w == nil {
		log.Printf("Recording %dx%d at %d fps to %s", width, height, r.opts.FPS, r.opts.OutputFile)
		r.width, r.height = width, height
		r.w, r.errc = r.start(width, height)
	}
	if width != r.width || height != r.height {
		return fmt.Errorf("recorder: frame size changed from %dx%d to %dx%d", r.width, r.height, width, height)
	}
	if _, err := r.w.Write(pixels); err != nil {
		return fmt.Errorf("failed to write frame %d to ffmpeg: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (r *Recorder) Frames() int64 { return r.frames }

// Close flushes the stream and waits for ffmpeg to finish.
func (r *Recorder) Close() error {
	if r.w == nil {
		return nil
	}
	r.w.Close()
	err := <-r.errc
	r.w = nil
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	log.Printf("Successfully recorded %d frames to %s", r.frames, r.opts.OutputFile)
	return nil
}
