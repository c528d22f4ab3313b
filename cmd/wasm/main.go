//go:build js && wasm

// Browser bindings for the noise generator.
//
// Build: GOOS=js GOARCH=wasm go build -o perlin.wasm ./cmd/wasm
//
// Exposes to the host script:
//
//	const gen = new ImageGenerator(width, height)
//	gen.addPerlinNoise(scale, amplitude)
//	gen.imageData()   // Float32Array, row-major
//	gen.reset()
//	noise2d(width, height, scale) // Float32Array
package main

import (
	"fmt"
	"math"
	"syscall/js"
	"unsafe"

	"github.com/pthm-cable/perlin/generator"
	"github.com/pthm-cable/perlin/noise"
)

func main() {
	js.Global().Set("ImageGenerator", js.FuncOf(newImageGenerator))
	js.Global().Set("noise2d", js.FuncOf(noise2d))

	// Keep the module alive for callbacks
	select {}
}

func newImageGenerator(this js.Value, args []js.Value) any {
	width, height, err := intArgs2(args)
	if err != nil {
		return jsError(err)
	}
	gen := generator.New(width, height)

	obj := this
	if obj.IsUndefined() || obj.Equal(js.Global()) {
		obj = js.Global().Get("Object").New()
	}
	obj.Set("width", js.FuncOf(func(js.Value, []js.Value) any { return gen.Width() }))
	obj.Set("height", js.FuncOf(func(js.Value, []js.Value) any { return gen.Height() }))
	obj.Set("reset", js.FuncOf(func(js.Value, []js.Value) any {
		gen.Reset()
		return nil
	}))

	// Go's linear memory is not exposed to the host, so every call copies the
	// current buffer into a new array. Callers must not cache the result
	// across mutations.
	obj.Set("imageData", js.FuncOf(func(js.Value, []js.Value) any {
		return float32Array(gen.ImageData())
	}))

	obj.Set("addPerlinNoise", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) != 2 {
			return jsError(fmt.Errorf("addPerlinNoise(scale, amplitude): got %d arguments", len(args)))
		}
		scale, err := intArg("scale", args[0])
		if err != nil {
			return jsError(err)
		}
		amp, err := amplitudeArg(args[1])
		if err != nil {
			return jsError(err)
		}
		if scale < 1 {
			return jsError(fmt.Errorf("addPerlinNoise: scale must be >= 1, got %d", scale))
		}
		gen.AddPerlinNoise(scale, amp)
		return nil
	}))

	return obj
}

func noise2d(_ js.Value, args []js.Value) any {
	if len(args) != 3 {
		return jsError(fmt.Errorf("noise2d(width, height, scale): got %d arguments", len(args)))
	}
	width, height, err := intArgs2(args[:2])
	if err != nil {
		return jsError(err)
	}
	scale, err := intArg("scale", args[2])
	if err != nil {
		return jsError(err)
	}
	if scale < 1 {
		return jsError(fmt.Errorf("noise2d: scale must be >= 1, got %d", scale))
	}
	return float32Array(noise.Noise2D(width, height, scale))
}

func intArgs2(args []js.Value) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected (width, height), got %d arguments", len(args))
	}
	w, err := intArg("width", args[0])
	if err != nil {
		return 0, 0, err
	}
	h, err := intArg("height", args[1])
	if err != nil {
		return 0, 0, err
	}
	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("image must be at least 1x1, got %dx%d", w, h)
	}
	return w, h, nil
}

// intArg rejects anything that is not a whole number, since js.Value.Int
// panics on non-numbers and truncates fractions.
func intArg(name string, v js.Value) (int, error) {
	if v.Type() != js.TypeNumber {
		return 0, fmt.Errorf("%s must be a number, got %s", name, v.Type())
	}
	f := v.Float()
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be an integer, got %v", name, f)
	}
	return int(f), nil
}

// amplitudeArg accepts only numbers that stay finite as float32.
func amplitudeArg(v js.Value) (float32, error) {
	if v.Type() != js.TypeNumber {
		return 0, fmt.Errorf("amplitude must be a number, got %s", v.Type())
	}
	return generator.Amplitude(v.Float())
}

// float32Array copies data into a fresh Float32Array.
func float32Array(data []float32) js.Value {
	n := len(data) * 4
	u8 := js.Global().Get("Uint8Array").New(n)
	if n > 0 {
		js.CopyBytesToJS(u8, unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), n))
	}
	return js.Global().Get("Float32Array").New(u8.Get("buffer"))
}

func jsError(err error) js.Value {
	return js.Global().Get("Error").New(err.Error())
}
