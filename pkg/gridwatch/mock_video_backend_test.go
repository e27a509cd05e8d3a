package gridwatch_test

import (
	"context"
	"image"
	"image/color"
	"image/draw"

	"github.com/tauraamui/gridwatch/pkg/videobackend"
	"github.com/tauraamui/gridwatch/pkg/videoframe"
)

type testVideoBackend struct {
	onConnectError        error
	onConnectionReadError error
}

func (tvb testVideoBackend) Connect(context context.Context, address string) (videobackend.Connection, error) {
	if tvb.onConnectError != nil {
		return nil, tvb.onConnectError
	}
	return testVideoConnection{
		onReadError: tvb.onConnectionReadError,
	}, nil
}

func (tvb testVideoBackend) NewFrame() videoframe.Frame {
	return testVideoFrame{}
}

type testVideoFrame struct {
}

func (tvf testVideoFrame) DataRef() interface{} { return nil }

func (tvf testVideoFrame) Dimensions() videoframe.Dimensions {
	return videoframe.Dimensions{W: 100, H: 50}
}

func (tvf testVideoFrame) ToRGBA() (*image.RGBA, error) {
	dims := tvf.Dimensions()
	img := image.NewRGBA(image.Rect(0, 0, dims.W, dims.H))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	return img, nil
}

func (tvf testVideoFrame) Close() {}

type testVideoConnection struct {
	onReadError error
}

func (tvc testVideoConnection) UUID() string {
	return "test-conn-uuid"
}

func (tvc testVideoConnection) Read(frame videoframe.Frame) error {
	return tvc.onReadError
}

func (tvc testVideoConnection) IsOpen() bool {
	return true
}

func (tvc testVideoConnection) Close() error {
	return nil
}
