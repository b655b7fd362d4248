// Command webclient is the WASM browser client for the render server. It
// subscribes to the websocket progress stream, shows rendering progress in
// the page HUD and paints the finished framebuffer onto a canvas.

//go:build js && wasm

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/klauspost/compress/zstd"
)

// streamMessage mirrors the server's websocket protocol.
type streamMessage struct {
	Type     string  `json:"type"`
	Width    int     `json:"width,omitempty"`
	Height   int     `json:"height,omitempty"`
	Fraction float64 `json:"fraction,omitempty"`
	Frame    []byte  `json:"frame,omitempty"`
}

func main() {
	logScreenf("starting web client...")

	url := websocketURL()
	logScreenf("connecting to render server at %s...", url)

	ctx := context.Background()
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		logFatalf("websocket dial: %v", err)
	}
	defer c.CloseNow()
	c.SetReadLimit(-1) // frame messages carry a whole framebuffer
	logScreenf("connected")

	var width, height int
	for {
		var msg streamMessage
		if err := wsjson.Read(ctx, c, &msg); err != nil {
			logFatalf("read: %v", err)
		}

		switch msg.Type {
		case "header":
			width, height = msg.Width, msg.Height
			initCanvas(width, height, "#3a3a6e")
			logScreenf("canvas initialized to %dx%d", width, height)

		case "progress":
			hudSetProgress(msg.Fraction)

		case "frame":
			pix, err := decompressFrame(msg.Frame, width*height*4)
			if err != nil {
				logFatalf("decode frame: %v", err)
			}
			drawFrame(pix, width, height)
			hudSetProgress(1)
			logScreenf("render complete")

			// Keep the WASM program alive so the canvas stays up.
			select {}
		}
	}
}

// decompressFrame reverses the server's zstd framebuffer encoding.
func decompressFrame(frame []byte, size int) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	pix, err := dec.DecodeAll(frame, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	if len(pix) != size {
		return nil, fmt.Errorf("frame holds %d bytes, want %d", len(pix), size)
	}
	return pix, nil
}

// logFatalf logs a fatal error to the log window and terminates the program.
func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	log.Fatalf(format, a...)
}
