// Command server renders one Mandelbrot frame at startup and serves it over
// HTTP: a websocket stream of coalesced render progress for browser clients,
// the finished frame as PNG, and the static files hosting the WASM web
// client.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"net/http"
	"sync"
	"time"

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

func main() {
	var (
		addr    = flag.String("addr", ":8080", "listen address")
		view    = flag.String("view", "seahorse", "viewport: classic, seahorse, elephant, minibrot, triple or dragon")
		width   = flag.Int("w", 1920, "frame width in pixels")
		height  = flag.Int("h", 1080, "frame height in pixels")
		workers = flag.Int("workers", 0, "worker pool size (0 = all cores)")
	)
	flag.Parse()

	if err := run(*addr, *view, *workers, *width, *height); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run(addr, view string, workers, width, height int) error {
	v, ok := views[view]
	if !ok {
		return fmt.Errorf("unknown view %q", view)
	}

	raster := mandel.Raster{Rows: height, Columns: width}
	buf := make(mandel.Buffer, raster.Pixels())

	job, err := render.New(render.Config{Workers: workers}).Parallel(v, raster, buf)
	if err != nil {
		return err
	}
	job.Watch(time.Second, func(f float64) {
		log.Printf("rendered: %.1f%%", f*100)
	})

	s := &server{raster: raster, buf: buf, job: job}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleStream)
	mux.HandleFunc("/image.png", pngHandler(s))
	mux.Handle("/", http.FileServer(http.Dir("./static")))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("listening on http://localhost%s", addr)
	return srv.ListenAndServe()
}

// server owns the frame being rendered and the job handle that clients
// observe. The buffer is read only after the job reports completion.
type server struct {
	raster mandel.Raster
	buf    mandel.Buffer
	job    *render.Job

	frameOnce sync.Once
	frame     []byte
	frameErr  error
}

// Image implements mandel.ImageProvider; it blocks until rendering is done.
func (s *server) Image() (*image.RGBA, error) {
	s.job.Wait()
	return s.buf.Image(s.raster), nil
}
