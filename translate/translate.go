// Package translate formats user-facing text for the host locale.
package translate

import (
	"fmt"
	"io"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when the host reports no locale.
const DefaultLocale = "en-US"

// Printer writes locale-aware formatted text, grouping digits in counts
// the way the selected locale expects.
type Printer struct {
	tag     language.Tag
	printer *message.Printer
	w       io.Writer
}

// New creates a Printer for the host's preferred locale. Failing to detect
// a locale is not an error; DefaultLocale is used instead.
func New(w io.Writer) *Printer {
	locales, err := locale.GetLocales()
	if err != nil || len(locales) == 0 {
		locales = []string{DefaultLocale}
	}
	return NewForLocale(w, locales[0])
}

// NewForLocale creates a Printer for a BCP 47 locale name.
func NewForLocale(w io.Writer, name string) *Printer {
	tag, err := language.Parse(name)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}

	return &Printer{
		tag:     tag,
		printer: message.NewPrinter(tag),
		w:       w,
	}
}

// Tag returns the locale the Printer formats for.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// Sprintf formats according to the Printer's locale.
func (p *Printer) Sprintf(format string, args ...any) string {
	return p.printer.Sprintf(format, args...)
}

// Printf formats according to the Printer's locale and writes the result.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprint(p.w, p.Sprintf(format, args...))
}
