package browser

import (
	"strings"
)

// DisabledTitle heads the notice shown for every navigation
const DisabledTitle = "Navigation Disabled"

const disabledHTML = `<h3>Navigation Disabled</h3>
<p>This is a demo browser. No real navigation is available.</p>`

// View is what the browser window renders
type View struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// Navigate records url as given and returns the disabled notice. Only the
// view is sanitized.
func (p *Provider) Navigate(url string) View {
	url = strings.TrimSpace(url)
	if url != "" {
		p.record(url)
	}

	return View{
		URL:   p.sanitizer.Sanitize(url),
		Title: DisabledTitle,
		HTML:  p.sanitizer.Sanitize(disabledHTML),
	}
}
