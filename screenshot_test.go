package letterbox

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-resize", "after-resize"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	c := New(16, 16, nil)
	defer c.Dispose()
	c.Screenshot("a")
	c.Screenshot("b")
	c.Screenshot("c")
	if c.PendingScreenshots() != 3 {
		t.Fatalf("queue len = %d, want 3", c.PendingScreenshots())
	}
	if c.screenshotQueue[0] != "a" || c.screenshotQueue[1] != "b" || c.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", c.screenshotQueue)
	}
}

func TestScreenshotPath(t *testing.T) {
	got := screenshotPath("shots", "20260101_120000", "after resize")
	want := filepath.Join("shots", "20260101_120000_after_resize.png")
	if got != want {
		t.Errorf("screenshotPath = %q, want %q", got, want)
	}
}

func TestOpaqueFrame(t *testing.T) {
	pixels := []byte{
		10, 20, 30, 0,
		40, 50, 60, 128,
	}
	img := opaqueFrame(pixels, 2, 1)
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got.R != 10 || got.G != 20 || got.B != 30 || got.A != 255 {
		t.Errorf("pixel 0 = %v", got)
	}
	if got := img.RGBAAt(1, 0); got.A != 255 || got.R != 40 {
		t.Errorf("pixel 1 = %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	img := opaqueFrame([]byte{1, 2, 3, 4, 5, 6, 7, 8}, 1, 2)
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 1 || b.Dy() != 2 {
		t.Errorf("decoded bounds = %v", b)
	}
}

func TestWritePNGBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "frame.png")
	err := writePNG(path, opaqueFrame(make([]byte, 4), 1, 1))
	if err == nil || !strings.Contains(err.Error(), "create") {
		t.Errorf("err = %v, want create error", err)
	}
}

func TestFlushScreenshotsMkdirFailure(t *testing.T) {
	buf := captureLogs(t)

	// A regular file where the directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(8, 8, nil)
	defer c.Dispose()
	c.ScreenshotDir = filepath.Join(blocker, "shots")
	c.Screenshot("x")

	screen := ebiten.NewImage(8, 8)
	defer screen.Deallocate()
	c.FlushScreenshots(screen)

	if c.PendingScreenshots() != 0 {
		t.Errorf("queue should be cleared after a failed flush")
	}
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestFlushScreenshotsEmptyQueue(t *testing.T) {
	c := New(8, 8, nil)
	defer c.Dispose()
	c.ScreenshotDir = filepath.Join(t.TempDir(), "never")
	c.FlushScreenshots(nil)
	if _, err := os.Stat(c.ScreenshotDir); !os.IsNotExist(err) {
		t.Error("empty flush should not create the directory")
	}
}
