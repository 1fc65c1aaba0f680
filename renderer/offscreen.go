package renderer

import (
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/glasspane/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame represents a single rendered frame's data, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

const numPBOs = 3

// offscreenTarget is the FBO the record mode renders into, with a PBO
// ring for asynchronous readback so the GPU never stalls on ReadPixels.
type offscreenTarget struct {
	fbo       uint32
	textureID uint32
	width     int
	height    int
	pbos      [numPBOs]uint32
}

func newOffscreenTarget(width, height int) (*offscreenTarget, error) {
	ot := &offscreenTarget{width: width, height: height}

	gl.GenFramebuffers(1, &ot.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, ot.fbo)
	gl.GenTextures(1, &ot.textureID)
	gl.BindTexture(gl.TEXTURE_2D, ot.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, ot.textureID, 0)
	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return nil, fmt.Errorf("offscreen fbo is not complete")
	}

	bufferSize := width * height * 4
	gl.GenBuffers(numPBOs, &ot.pbos[0])
	for i := 0; i < numPBOs; i++ {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, ot.pbos[i])
		gl.BufferData(gl.PIXEL_PACK_BUFFER, bufferSize, nil, gl.STREAM_READ)
	}
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return ot, nil
}

func (ot *offscreenTarget) Destroy() {
	gl.DeleteFramebuffers(1, &ot.fbo)
	gl.DeleteTextures(1, &ot.textureID)
	gl.DeleteBuffers(numPBOs, &ot.pbos[0])
}

// pack issues an asynchronous readback of the FBO into the PBO for frame
// index.
func (ot *offscreenTarget) pack(index int64) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, ot.fbo)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, ot.pbos[index%numPBOs])
	gl.ReadPixels(0, 0, int32(ot.width), int32(ot.height), gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
}

// unpack maps the PBO for frame index and copies its pixels out. Valid
// once at least numPBOs-1 newer packs have been issued, or after the
// render loop has finished.
func (ot *offscreenTarget) unpack(index int64) ([]byte, error) {
	bufferSize := ot.width * ot.height * 4
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, ot.pbos[index%numPBOs])
	ptr := gl.MapBufferRange(gl.PIXEL_PACK_BUFFER, 0, bufferSize, gl.MAP_READ_BIT)
	if ptr == nil {
		gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
		return nil, fmt.Errorf("failed to map PBO for frame %d", index)
	}
	pixels := make([]byte, bufferSize)
	copy(pixels, (*[1 << 30]byte)(ptr)[:bufferSize:bufferSize])
	gl.UnmapBuffer(gl.PIXEL_PACK_BUFFER)
	gl.BindBuffer(gl.PIXEL_PACK_BUFFER, 0)
	return pixels, nil
}

// encoderArgs builds the ffmpeg invocation: raw RGBA frames in on a
// pipe, encoded video out. GL readback is bottom-up, hence the vflip.
func encoderArgs(opts *options.EffectOptions) (inputArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", *opts.Width, *opts.Height),
		"framerate": *opts.FPS,
	}

	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}

	codec := "h264"
	if opts.Codec != nil && *opts.Codec != "" {
		codec = *opts.Codec
	}

	switch runtime.GOOS {
	case "darwin":
		if codec == "hevc" {
			outputArgs["c:v"] = "hevc_videotoolbox"
		} else {
			outputArgs["c:v"] = "h264_videotoolbox"
		}
	default:
		if codec == "hevc" {
			outputArgs["c:v"] = "libx265"
		} else {
			outputArgs["c:v"] = "libx264"
		}
	}
	outputArgs["b:v"] = "25M"

	if codec == "hevc" && strings.HasSuffix(*opts.OutputFile, ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return
}

// runEncoder is the consumer. It feeds frames from frameChan into an
// ffmpeg process through a pipe and reports the encoder result on
// doneChan.
func (r *Renderer) runEncoder(opts *options.EffectOptions, frameChan <-chan *Frame, doneChan chan<- error) {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := encoderArgs(opts)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if opts.FFMPEGPath != nil && *opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- ffmpegCmd.Run()
	}()

	for frame := range frameChan {
		if _, err := pipeWriter.Write(frame.Pixels); err != nil {
			log.Printf("error writing frame %d to ffmpeg: %v", frame.PTS, err)
			break
		}
	}

	pipeWriter.Close()
	doneChan <- <-errc
}

// RunOffscreen renders the effect at a fixed timestep with a neutral
// pointer and encodes the frames to the configured output file. The
// producer stays numPBOs-1 frames ahead of readback so ReadPixels never
// blocks on an in-flight transfer.
func (r *Renderer) RunOffscreen(opts *options.EffectOptions) error {
	log.Println("Starting offscreen render loop...")

	ot, err := newOffscreenTarget(*opts.Width, *opts.Height)
	if err != nil {
		return err
	}
	defer ot.Destroy()

	r.Resize(*opts.Width, *opts.Height)

	frameChan := make(chan *Frame, numPBOs)
	encoderDoneChan := make(chan error, 1)
	go r.runEncoder(opts, frameChan, encoderDoneChan)

	totalFrames := int64(*opts.Duration * float64(*opts.FPS))

	drain := func(index int64) error {
		pixels, err := ot.unpack(index)
		if err != nil {
			return err
		}
		frameChan <- &Frame{Pixels: pixels, PTS: index}
		return nil
	}

	var produceErr error
	for i := int64(0); i < totalFrames; i++ {
		r.pointer.Tick(r.config.LerpFactor, r.config.ParallaxEnabled)

		gl.BindFramebuffer(gl.FRAMEBUFFER, ot.fbo)
		r.RenderFrame()
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

		ot.pack(i)

		// Read back the frame issued numPBOs-1 packs ago; by now its
		// transfer has completed.
		if i >= numPBOs-1 {
			if produceErr = drain(i - (numPBOs - 1)); produceErr != nil {
				break
			}
		}
	}

	if produceErr == nil {
		// Flush the packs still in the ring.
		start := totalFrames - (numPBOs - 1)
		if start < 0 {
			start = 0
		}
		for i := start; i < totalFrames; i++ {
			if produceErr = drain(i); produceErr != nil {
				break
			}
		}
	}

	close(frameChan)
	encErr := <-encoderDoneChan
	if produceErr != nil {
		return produceErr
	}
	return encErr
}
