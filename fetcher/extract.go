package fetcher

import (
	"fmt"
	"log/slog"

	"github.com/domfetch/domfetch/models"
)

// extractStrategy is one way of retrieving the rendered document.
// Strategies are tried in fixed priority order.
type extractStrategy struct {
	name string
	get  func(Page) (string, error)
}

var extractStrategies = []extractStrategy{
	{name: "outer-html", get: Page.OuterHTML},
	{name: "rendered-source", get: Page.RenderedSource},
}

// extract retrieves the rendered markup, falling back through the
// strategy list. When every strategy fails, the returned error keeps
// the first (primary) failure's detail.
func (f *Fetcher) extract(page Page, url string) (string, error) {
	if page.Closed() {
		return "", models.NewFetchError(
			models.ErrCodeExtraction,
			"page closed before content could be extracted",
			nil,
		)
	}

	var primaryErr error
	for _, strat := range extractStrategies {
		content, err := strat.get(page)
		if err == nil {
			if primaryErr != nil {
				slog.Warn("primary extraction failed, fallback succeeded",
					"strategy", strat.name,
					"url", url,
					"error", primaryErr,
				)
			}
			return content, nil
		}
		if primaryErr == nil {
			primaryErr = err
		}
		slog.Debug("extraction strategy failed",
			"strategy", strat.name,
			"url", url,
			"error", err,
		)
	}

	return "", models.NewFetchError(
		models.ErrCodeExtraction,
		fmt.Sprintf("failed to extract page content: %v", primaryErr),
		primaryErr,
	)
}
