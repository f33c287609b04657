package letterbox

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot of the presented frame. The queue
// is flushed at the end of the next Present driven by Run, or by calling
// FlushScreenshots. Each PNG is written to ScreenshotDir as
// <timestamp>_<label>.png. Safe to call from update or draw callbacks.
func (c *Compositor) Screenshot(label string) {
	c.screenshotQueue = append(c.screenshotQueue, label)
}

// PendingScreenshots returns the number of queued screenshot labels.
func (c *Compositor) PendingScreenshots() int {
	return len(c.screenshotQueue)
}

// FlushScreenshots reads back screen and writes one PNG per queued label.
// Failures are logged as warnings and never interrupt the frame.
func (c *Compositor) FlushScreenshots(screen *ebiten.Image) {
	if len(c.screenshotQueue) == 0 {
		return
	}
	defer func() { c.screenshotQueue = c.screenshotQueue[:0] }()

	if err := os.MkdirAll(c.ScreenshotDir, 0o755); err != nil {
		Logger().Warn("screenshot: create directory", "dir", c.ScreenshotDir, "err", err)
		return
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	img := opaqueFrame(pixels, w, h)

	stamp := time.Now().Format("20060102_150405")
	for _, label := range c.screenshotQueue {
		path := screenshotPath(c.ScreenshotDir, stamp, label)
		if err := writePNG(path, img); err != nil {
			Logger().Warn("screenshot", "label", label, "err", err)
			continue
		}
		Logger().Debug("screenshot written", "path", path)
	}
}

// opaqueFrame wraps read-back display pixels as an RGBA image with every
// alpha forced to 255. The display has no transparency, so the stored
// alpha carries no information.
func opaqueFrame(pixels []byte, w, h int) *image.RGBA {
	img := &image.RGBA{
		Pix:    pixels,
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

func screenshotPath(dir, stamp, label string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
