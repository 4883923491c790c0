package browser

import "context"

// SetNavigate swaps the navigation step so tests can observe the
// scheduling around it without a real browser.
func (f *ChromePageFetcher) SetNavigate(navigate func(context.Context, string) (string, error)) {
	f.navigate = navigate
}

// BuildExtractScript exports buildExtractScript for testing.
var BuildExtractScript = buildExtractScript //nolint:gochecknoglobals // test export

// BuildSelectorPollScript exports buildSelectorPollScript for testing.
var BuildSelectorPollScript = buildSelectorPollScript //nolint:gochecknoglobals // test export

// ContentSelectors exports contentSelectors for testing.
var ContentSelectors = contentSelectors //nolint:gochecknoglobals // test export
