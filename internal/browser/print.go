package browser

import (
	"fmt"

	"github.com/skiff-browser/skiff/internal/promise"
)

// Printing renders pages to PDF files and reports the outcome on the
// session's message bridge.
type Printing struct {
	tab *Tab
}

func newPrinting(tab *Tab) *Printing {
	return &Printing{tab: tab}
}

// ToPDF prints the current page to a PDF at path. The returned future
// resolves with the path. Success and failure are also announced as
// status messages, so callers may ignore the future.
func (p *Printing) ToPDF(path string) *promise.Future[string] {
	out := promise.NewFuture[string](p.tab.post)
	bridge := p.tab.session.Bridge()

	p.tab.view.PrintToPDF(path).Then(func(written string, err error) {
		if err != nil {
			p.tab.log.Error().Err(err).Str("path", path).Msg("PDF print failed")
			bridge.Error(fmt.Sprintf("Printing to %v failed!", path))
			out.Reject(err)
			return
		}
		bridge.Info(fmt.Sprintf("Printed to %v", written))
		out.Resolve(written)
	})
	return out
}
