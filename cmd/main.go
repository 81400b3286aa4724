package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	app "github.com/richinsley/golearngl/app"
	glfwcontext "github.com/richinsley/golearngl/glfwcontext"
	options "github.com/richinsley/golearngl/options"
	recorder "github.com/richinsley/golearngl/recorder"
	scene "github.com/richinsley/golearngl/scene"
	shader "github.com/richinsley/golearngl/shader"
	translator "github.com/richinsley/golearngl/translator"
)

func init() {
	runtime.LockOSThread()
}

func run(opts *options.Options) int {
	shaderOpts := []shader.Option{shader.WithTranslator(translator.New())}
	if *opts.Lenient {
		shaderOpts = append(shaderOpts, shader.WithPolicy(shader.Lenient))
	}

	s, err := scene.New(*opts.Scene, scene.Options{
		VertexPath:    *opts.VertexShader,
		FragmentPath:  *opts.FragmentShader,
		ShaderOptions: shaderOpts,
	})
	if err != nil {
		log.Printf("Error: %v", err)
		return app.ExitFailure
	}

	cfg := app.Config{
		Window:    opts.Window(s.Window()),
		MaxFrames: *opts.Frames,
	}

	if opts.Recording() {
		rec, err := recorder.New(recorder.Options{
			OutputFile: *opts.OutputFile,
			FPS:        *opts.FPS,
			Codec:      *opts.Codec,
			FFmpegPath: *opts.FFmpegPath,
		})
		if err != nil {
			log.Printf("Error: %v", err)
			return app.ExitFailure
		}
		cfg.Sink = rec
		if cfg.MaxFrames == 0 {
			cfg.MaxFrames = *opts.FPS * 10
			log.Printf("No -frames given, recording %d frames", cfg.MaxFrames)
		}
		code := app.Run(glfwcontext.Platform{}, cfg, s)
		if err := rec.Close(); err != nil {
			log.Printf("Recording failed: %v", err)
			return app.ExitFailure
		}
		return code
	}

	return app.Run(glfwcontext.Platform{}, cfg, s)
}

func main() {
	opts := options.Register(flag.CommandLine)
	flag.Parse()

	if *opts.Help {
		fmt.Println("OpenGL tutorial scenes")
		flag.PrintDefaults()
		return
	}
	if *opts.List {
		fmt.Println(strings.Join(scene.Names(), "\n"))
		return
	}
	if err := opts.Validate(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(app.ExitFailure)
	}

	os.Exit(run(opts))
}
