//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestXImageToRGBA(t *testing.T) {
	setup := &xproto.SetupInfo{PixmapFormats: []xproto.Format{{Depth: 24, BitsPerPixel: 32}}}
	// 2x1 BGRx with 4 bytes of row padding.
	reply := &xproto.GetImageReply{Depth: 24, Data: []byte{3, 2, 1, 0, 30, 20, 10, 0, 0, 0, 0, 0}}
	img, err := xImageToRGBA(setup, reply, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(1, 0); c.R != 10 || c.G != 20 || c.B != 30 || c.A != 255 {
		t.Fatalf("pixel = %+v", c)
	}
	if _, err := xImageToRGBA(&xproto.SetupInfo{}, reply, 2, 1); err == nil {
		t.Fatalf("expected unsupported depth error")
	}
}
