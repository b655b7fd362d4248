package main

import (
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/klauspost/compress/zstd"

	mandel "github.com/robertmryan/Mandelbrot"
)

// streamMessage is one message of the websocket protocol: a header on
// connect, progress on a fixed cadence, and a single frame message once
// rendering completes.
type streamMessage struct {
	Type     string  `json:"type"` // "header", "progress" or "frame"
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	Fraction float64 `json:"fraction,omitempty"`

	// Frame carries the zstd-compressed RGBA framebuffer.
	Frame []byte `json:"frame,omitempty"`
}

// streamInterval is how often connected clients see the running fraction.
// Clients are never woken per pixel.
const streamInterval = 250 * time.Millisecond

// handleStream upgrades the connection and pushes coalesced render progress
// to one websocket client, finishing with a compressed copy of the
// framebuffer.
func (s *server) handleStream(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"}, // TODO: tighten in prod
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	ctx := r.Context()
	header := streamMessage{Type: "header", Width: s.raster.Columns, Height: s.raster.Rows}
	if err := wsjson.Write(ctx, c, header); err != nil {
		return
	}

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			msg := streamMessage{Type: "progress", Fraction: s.job.Fraction()}
			if err := wsjson.Write(ctx, c, msg); err != nil {
				return
			}
		case <-s.job.Done():
			frame, err := s.compressedFrame()
			if err != nil {
				log.Printf("compress frame: %v", err)
				return
			}
			if err := wsjson.Write(ctx, c, streamMessage{Type: "progress", Fraction: 1}); err != nil {
				return
			}
			if err := wsjson.Write(ctx, c, streamMessage{Type: "frame", Frame: frame}); err != nil {
				return
			}
			c.Close(websocket.StatusNormalClosure, "render complete")
			return
		case <-ctx.Done():
			return
		}
	}
}

// compressedFrame encodes the finished framebuffer once and reuses the
// result for every client.
func (s *server) compressedFrame() ([]byte, error) {
	s.frameOnce.Do(func() {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			s.frameErr = err
			return
		}
		s.frame = enc.EncodeAll(s.buf.Bytes(), nil)
		s.frameErr = enc.Close()
	})
	return s.frame, s.frameErr
}

// pngHandler serves the finished frame as PNG. It blocks until the provider
// can hand the frame out, mirroring how CLI clients fetch the image.
func pngHandler(p mandel.ImageProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		img, err := p.Image()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, img); err != nil {
			log.Printf("png encode: %v", err)
		}
	}
}
