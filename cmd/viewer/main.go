// Command viewer opens a desktop window, renders the selected viewport in
// the background and shows the frame once every pixel is written. While
// workers are still running it displays a progress readout sampled once per
// display frame rather than once per pixel.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	mandel "github.com/robertmryan/Mandelbrot"
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

type game struct {
	view   string
	raster mandel.Raster
	buf    mandel.Buffer
	job    *render.Job

	// frame is uploaded exactly once, after the job completes; before that
	// the worker pool still owns the buffer.
	frame *ebiten.Image
}

func (g *game) Update() error {
	if g.frame != nil {
		return nil
	}
	select {
	case <-g.job.Done():
		g.frame = ebiten.NewImage(g.raster.Columns, g.raster.Rows)
		g.frame.WritePixels(g.buf.Bytes())
	default:
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.frame != nil {
		screen.DrawImage(g.frame, nil)
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%s — done", g.view))
		return
	}
	screen.Fill(color.RGBA{R: 0x3a, G: 0x3a, B: 0x6e, A: 0xff})
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s — rendering: %.1f%%", g.view, g.job.Fraction()*100))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.raster.Columns, g.raster.Rows
}

func main() {
	var (
		width      = flag.Int("w", 1280, "window width in pixels")
		height     = flag.Int("h", 720, "window height in pixels")
		workers    = flag.Int("workers", 0, "worker pool size (0 = all cores)")
		view       = flag.String("view", "classic", "viewport: classic, seahorse, elephant, minibrot, triple or dragon")
		sequential = flag.Bool("seq", false, "render on a single goroutine")
	)
	flag.Parse()

	v, ok := views[*view]
	if !ok {
		log.Fatalf("unknown view %q", *view)
	}

	raster := mandel.Raster{Rows: *height, Columns: *width}
	buf := make(mandel.Buffer, raster.Pixels())
	eng := render.New(render.Config{Workers: *workers})

	var (
		job *render.Job
		err error
	)
	if *sequential {
		job, err = eng.Sequential(v, raster, buf)
	} else {
		job, err = eng.Parallel(v, raster, buf)
	}
	if err != nil {
		log.Fatalf("render: %v", err)
	}

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Mandelbrot")
	if err := ebiten.RunGame(&game{view: *view, raster: raster, buf: buf, job: job}); err != nil {
		log.Fatalf("viewer: %v", err)
	}
}
