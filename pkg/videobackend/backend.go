package videobackend

import (
	"context"

	"github.com/tauraamui/gridwatch/pkg/videoframe"
)

type Connection interface {
	UUID() string
	Read(videoframe.Frame) error
	IsOpen() bool
	Close() error
}

type Backend interface {
	Connect(context.Context, string) (Connection, error)
	NewFrame() videoframe.Frame
}

func Default() Backend {
	return OpenCV()
}

func OpenCV() Backend {
	return &openCVBackend{}
}

func Mock() Backend {
	return &mockBackend{}
}

func Resolve(t string) Backend {
	switch t {
	case "mock":
		return Mock()
	default:
		return Default()
	}
}
