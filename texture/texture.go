// Package texture owns the GPU texture for the source image and the
// asynchronous loader that fills it.
package texture

import (
	"image"
	"image/draw"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// Texture wraps an OpenGL texture together with the natural pixel
// dimensions of the image it was uploaded from.
type Texture struct {
	id     uint32
	Width  int
	Height int
}

// Prepare converts a decoded image to RGBA and flips it vertically so row
// 0 is the bottom edge, matching the shader's UV convention. It runs on
// the loader goroutine so the render thread only uploads.
func Prepare(img image.Image) *image.RGBA {
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return vflip(rgba)
}

// vflip vertically flips the provided RGBA image.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	// Row copies are faster than per-pixel At/Set.
	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// Upload creates a new OpenGL texture from prepared RGBA pixels. Must be
// called on the thread that owns the GL context.
func Upload(rgba *image.RGBA) *Texture {
	width := int32(rgba.Rect.Size().X)
	height := int32(rgba.Rect.Size().Y)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		width,
		height,
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{
		id:     id,
		Width:  int(width),
		Height: int(height),
	}
}

// ID returns the OpenGL texture name to bind.
func (t *Texture) ID() uint32 {
	return t.id
}

// Resolution returns the natural pixel dimensions as a vec2.
func (t *Texture) Resolution() [2]float32 {
	return [2]float32{float32(t.Width), float32(t.Height)}
}

// Destroy releases the GPU texture. Safe to call on a nil receiver.
func (t *Texture) Destroy() {
	if t == nil || t.id == 0 {
		return
	}
	gl.DeleteTextures(1, &t.id)
	t.id = 0
}
