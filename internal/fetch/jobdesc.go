package fetch

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Description is a job posting reduced to text.
type Description struct {
	URL      string
	Platform Platform
	Text     string
	// Rendered is set when the text came from the headless browser.
	Rendered bool
}

// JobDescription downloads a posting and extracts its text. When the HTTP response
// yields fewer than MinContentLength characters and opts.UseBrowser is set, the
// page is rendered in a browser and extracted again.
func JobDescription(ctx context.Context, urlStr string, opts *Options) (*Description, error) {
	opts = opts.withDefaults()
	platform := DetectPlatform(urlStr)
	content := PlatformContentSelectors(platform)
	noise := PlatformNoiseSelectors(platform)
	log := opts.Logger.WithFields(logrus.Fields{"url": urlStr, "platform": platform})

	var text string
	res, err := URL(ctx, urlStr, opts)
	if err == nil {
		text, err = ExtractMainText(res.HTML, content, noise...)
	}
	if err != nil && !opts.UseBrowser {
		return nil, err
	}
	if err == nil && !ShouldUseBrowser(text) {
		return &Description{URL: urlStr, Platform: platform, Text: text}, nil
	}
	if !opts.UseBrowser {
		return &Description{URL: urlStr, Platform: platform, Text: text}, nil
	}

	log.WithField("chars", len(text)).Info("page looks script-rendered, retrying in browser")
	render := opts.Render
	if render == nil {
		render = func(ctx context.Context, u string) (string, error) {
			return WithBrowser(ctx, u, opts.Timeout, opts.Logger)
		}
	}
	html, renderErr := render(ctx, urlStr)
	if renderErr != nil {
		if err != nil {
			return nil, fmt.Errorf("%w; browser fallback: %v", err, renderErr)
		}
		log.WithError(renderErr).Warn("browser fallback failed, keeping HTTP text")
		return &Description{URL: urlStr, Platform: platform, Text: text}, nil
	}

	rendered, extractErr := ExtractMainText(html, content, noise...)
	if extractErr != nil {
		return nil, extractErr
	}
	return &Description{URL: urlStr, Platform: platform, Text: rendered, Rendered: true}, nil
}
