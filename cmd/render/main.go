// Command render rasterizes a Mandelbrot viewport into a PNG file.
//
// The heavy lifting happens in the render package; this binary only parses
// flags, logs coalesced progress and encodes the finished buffer.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/nfnt/resize"
	"github.com/pkg/profile"

	mandel "github.com/robertmryan/Mandelbrot"
	"github.com/robertmryan/Mandelbrot/progress"
	"github.com/robertmryan/Mandelbrot/render"
)

var views = map[string]mandel.Viewport{
	"classic":  mandel.ClassicView,
	"seahorse": mandel.SeahorseValley,
	"elephant": mandel.ElephantValley,
	"minibrot": mandel.SpiralMinibrot,
	"triple":   mandel.TripleSpiral,
	"dragon":   mandel.ValleyOfTheDragon,
}

func main() {
	var (
		width      = flag.Int("w", 1920, "output width in pixels")
		height     = flag.Int("h", 1080, "output height in pixels")
		mode       = flag.String("mode", "par", "execution mode: par or seq")
		workers    = flag.Int("workers", 0, "worker pool size (0 = all cores)")
		view       = flag.String("view", "classic", "viewport: classic, seahorse, elephant, minibrot, triple or dragon")
		out        = flag.String("o", "mandel.png", "output file")
		scaleWidth = flag.Uint("scale", 0, "downscale the output to this width (0 = keep full size)")
		cpuprofile = flag.Bool("cpuprofile", false, "write a CPU profile next to the output")
	)
	flag.Parse()

	if *cpuprofile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if err := run(*view, *mode, *workers, *width, *height, *scaleWidth, *out); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run(view, mode string, workers, width, height int, scaleWidth uint, out string) error {
	v, ok := views[view]
	if !ok {
		return fmt.Errorf("unknown view %q", view)
	}

	raster := mandel.Raster{Rows: height, Columns: width}
	buf := make(mandel.Buffer, raster.Pixels())
	eng := render.New(render.Config{Workers: workers})

	start := time.Now()
	var (
		job *render.Job
		err error
	)
	switch mode {
	case "par":
		job, err = eng.Parallel(v, raster, buf)
	case "seq":
		job, err = eng.Sequential(v, raster, buf)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		return err
	}

	job.Watch(progress.DefaultInterval, func(f float64) {
		log.Printf("rendered: %.1f%%", f*100)
	})
	job.Wait()
	log.Printf("render took %v", time.Since(start))

	var img image.Image = buf.Image(raster)
	if scaleWidth > 0 {
		img = resize.Resize(scaleWidth, 0, img, resize.Lanczos3)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	log.Printf("image saved to %q", out)
	return nil
}
