package texture

import (
	"image"

	"github.com/richinsley/glasspane/asset"
)

// Result is a completed load, delivered to the render thread for upload.
// Pixels are already converted and flipped so the render thread only has
// to push them to the GPU.
type Result struct {
	Source string
	Pixels *image.RGBA
	Err    error

	generation uint64
}

// Loader fetches and decodes images off the render thread. Load may be
// called again while a previous load is still in flight; each request is
// tagged with a generation, and Poll discards any completion that is not
// the most recently requested one, so a slow stale load can never
// overwrite a fast new one.
//
// Load and Poll must both be called from the render thread.
type Loader struct {
	resolve    func(string) (image.Image, error)
	results    chan Result
	generation uint64
}

// NewLoader returns a loader that resolves sources through the asset
// package.
func NewLoader() *Loader {
	return newLoader(asset.Resolve)
}

func newLoader(resolve func(string) (image.Image, error)) *Loader {
	return &Loader{
		resolve: resolve,
		results: make(chan Result, 4),
	}
}

// Load starts fetching and decoding the image at source. It returns
// immediately; the completed result is picked up by a later Poll.
func (l *Loader) Load(source string) {
	l.generation++
	gen := l.generation
	go func() {
		res := Result{Source: source, generation: gen}
		img, err := l.resolve(source)
		if err != nil {
			res.Err = err
		} else {
			res.Pixels = Prepare(img)
		}
		l.results <- res
	}()
}

// Poll returns the next current completed load, if any. Completions from
// superseded requests are silently dropped. Poll never blocks.
func (l *Loader) Poll() (Result, bool) {
	for {
		select {
		case res := <-l.results:
			if res.generation != l.generation {
				continue // stale in-flight load, a newer source was requested
			}
			return res, true
		default:
			return Result{}, false
		}
	}
}
