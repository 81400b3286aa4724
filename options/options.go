package options

import (
	"flag"
	"fmt"

	"github.com/richinsley/golearngl/graphics"
)

// Options holds the command-line configuration. Zero width/height and an
// empty title keep the selected scene's own window settings.
type Options struct {
	Scene          *string
	Width          *int
	Height         *int
	Title          *string
	VertexShader   *string
	FragmentShader *string
	Lenient        *bool
	Help           *bool
	List           *bool
	// Recording options
	OutputFile *string
	Frames     *int
	FPS        *int
	Codec      *string
	FFmpegPath *string
}

// Register defines all flags on fs.
func Register(fs *flag.FlagSet) *Options {
	return &Options{
		Scene:          fs.String("scene", "triangle", "Scene to run (window, triangle, shaders, game)"),
		Width:          fs.Int("width", 0, "Window width (0 keeps the scene default)"),
		Height:         fs.Int("height", 0, "Window height (0 keeps the scene default)"),
		Title:          fs.String("title", "", "Window title (empty keeps the scene default)"),
		VertexShader:   fs.String("vert", "", "Vertex shader file for the shaders scene"),
		FragmentShader: fs.String("frag", "", "Fragment shader file for the shaders scene"),
		Lenient:        fs.Bool("lenient", false, "Log shader compile/link errors and keep running"),
		Help:           fs.Bool("help", false, "Show help message"),
		List:           fs.Bool("list", false, "List available scenes"),
		OutputFile:     fs.String("record", "", "Record frames to this video file (renders in a hidden window)"),
		Frames:         fs.Int("frames", 0, "Stop after this many frames (0 runs until the window closes)"),
		FPS:            fs.Int("fps", 60, "Frames per second of the recording"),
		Codec:          fs.String("codec", "h264", "Recording codec (h264, hevc)"),
		FFmpegPath:     fs.String("ffmpeg", "", "Path to ffmpeg executable"),
	}
}

// Validate rejects values no scene can run with.
func (o *Options) Validate() error {
	if *o.Width < 0 || *o.Height < 0 {
		return fmt.Errorf("invalid window size %dx%d", *o.Width, *o.Height)
	}
	if *o.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", *o.Frames)
	}
	if *o.OutputFile != "" && *o.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", *o.FPS)
	}
	if *o.Codec != "h264" && *o.Codec != "hevc" {
		return fmt.Errorf("unsupported codec %q", *o.Codec)
	}
	return nil
}

// Recording reports whether frames should be captured to a file.
func (o *Options) Recording() bool {
	return *o.OutputFile != ""
}

// Window applies the overrides to a scene's window settings.
func (o *Options) Window(base graphics.WindowConfig) graphics.WindowConfig {
	if *o.Width > 0 {
		base.Width = *o.Width
	}
	if *o.Height > 0 {
		base.Height = *o.Height
	}
	if *o.Title != "" {
		base.Title = *o.Title
	}
	if o.Recording() {
		base.Visible = false
	}
	return base
}
