// Package translate localizes the user visible text of the mee packages.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

const fallbackLocale = "en-US"

var (
	printer     *message.Printer
	printerOnce sync.Once
)

func loadPrinter() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("mee: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{fallbackLocale}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	printerOnce.Do(loadPrinter)
	return printer.Sprintf(key, args...)
}
