// Package snapshot renders a finished gffplot document to a PNG image using
// headless Chrome.
package snapshot

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ErrEmptyScreenshot is returned when Chrome produced no image data.
var ErrEmptyScreenshot = errors.New("screenshot buffer is empty")

// DataURI encodes an HTML document as a base64 data URI Chrome can navigate to.
func DataURI(html []byte) string {
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString(html)
}

// Renderer screenshots the svg element of an HTML document.
type Renderer struct {
	allocOpts []chromedp.ExecAllocatorOption
	logger    *zap.Logger
}

// NewRenderer creates a renderer that runs Chrome headless.
func NewRenderer() *Renderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.DisableGPU,
	)
	return &Renderer{allocOpts: opts, logger: zap.NewNop()}
}

// SetLogger sets the logger for progress messages.
func (r *Renderer) SetLogger(l *zap.Logger) {
	r.logger = l
}

// PNG renders html and writes the screenshot of its svg element to w.
func (r *Renderer) PNG(ctx context.Context, html []byte, w io.Writer) error {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocOpts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	var buf []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate(DataURI(html)),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &buf, chromedp.ByQuery),
	}

	r.logger.Debug("rendering snapshot", zap.Int("html_bytes", len(html)))
	if err := chromedp.Run(taskCtx, tasks); err != nil {
		return fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(buf) == 0 {
		return ErrEmptyScreenshot
	}

	if _, err := io.Copy(w, bytes.NewReader(buf)); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	r.logger.Debug("snapshot rendered", zap.Int("png_bytes", len(buf)))
	return nil
}

// PNG renders html with a default Renderer.
func PNG(ctx context.Context, html []byte, w io.Writer) error {
	return NewRenderer().PNG(ctx, html, w)
}
