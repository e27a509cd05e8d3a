package videoframe

import "image"

type Dimensions struct {
	W, H int
}

// NoCloser exposes a frame to consumers which must not release it.
type NoCloser interface {
	DataRef() interface{}
	Dimensions() Dimensions
	// ToRGBA renders the frame as a standard 8-bit non-premultiplied RGBA
	// image, row-major with origin at the top left.
	ToRGBA() (*image.RGBA, error)
}

type Frame interface {
	NoCloser
	Close()
}
