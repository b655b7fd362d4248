//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"
)

// websocketURL derives the stream endpoint from the page location.
func websocketURL() string {
	loc := js.Global().Get("window").Get("location")
	host := loc.Get("host").String()
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	return proto + "://" + host + "/ws"
}

// initCanvas sizes the canvas to the frame dimensions and fills it with a
// placeholder color until the frame arrives.
func initCanvas(width, height int, color string) {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "frameCanvas")

	canvas.Set("width", width)
	canvas.Set("height", height)

	ctx := canvas.Call("getContext", "2d")
	ctx.Set("fillStyle", color)
	ctx.Call("fillRect", 0, 0, width, height)
}

// drawFrame copies raw RGBA pixels into the canvas in one putImageData call.
func drawFrame(pix []byte, width, height int) {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "frameCanvas")
	ctx := canvas.Call("getContext", "2d")

	jsData := js.Global().Get("Uint8ClampedArray").New(len(pix))
	js.CopyBytesToJS(jsData, pix)

	imageData := js.Global().Get("ImageData").New(jsData, width, height)
	ctx.Call("putImageData", imageData, 0, 0)
}

// hudSetProgress updates the HUD with the current render fraction.
func hudSetProgress(fraction float64) {
	doc := js.Global().Get("document")
	doc.Call("getElementById", "progress").Set("textContent", fmt.Sprintf("%.1f%%", fraction*100))
}

// logScreenf appends a formatted message to the log element in the DOM.
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}
