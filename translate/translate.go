// Package translate formats user-visible messages for the system locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// fallback is used when the host reports no usable locale.
var fallback = language.AmericanEnglish

func load() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("enginetb: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{fallback.String()}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	printerOnce.Do(load)
	return printer.Sprintf(key, args...)
}

// Use forces the printer to a specific language tag, for reproducible
// message text in tests.
func Use(tag language.Tag) {
	printerOnce.Do(load)
	printer = message.NewPrinter(tag)
}
