// Package translate formats user visible messages for the locale of the
// current user.
//
// Messages are keyed by their en-US format. The COCOASM_LANG environment
// variable, if set, overrides the locales reported by the system.
package translate

import (
	"log"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Catalog holds the translations of the assembler and disk messages.
var Catalog = catalog.NewBuilder(catalog.Fallback(language.AmericanEnglish))

var _messages = map[language.Tag]map[string]string{
	language.German: {
		"line %d '%v' %v":                 "Zeile %d '%v' %v",
		"line %d ($%04X) %v":              "Zeile %d ($%04X) %v",
		"%v %v, first defined on line %d": "%v %v, zuerst definiert in Zeile %d",
		"unexpected '%v'":                 "unerwartet '%v'",
		"label duplicated":                "Marke doppelt definiert",
		"label undefined":                 "Marke nicht definiert",
		"label required":                  "Marke erforderlich",
		"label invalid":                   "Marke ungültig",
		"label moved between passes":      "Marke zwischen den Durchläufen verschoben",
		"value overflow":                  "Wertüberlauf",
		"register invalid":                "Register ungültig",
		"operand invalid":                 "Operand ungültig",
		"instruction invalid":             "Befehl ungültig",
		"malformed expression":            "fehlerhafter Ausdruck",
		"virtual disk full":               "virtuelle Diskette voll",
		"file name too long":              "Dateiname zu lang",
		"file name invalid":               "Dateiname ungültig",
		"file exists":                     "Datei existiert bereits",
		"file not found":                  "Datei nicht gefunden",
		"step limit reached":              "Schrittgrenze erreicht",
		"define out of range":             "Definition außerhalb des Bereichs",
		"%v not supported for %v":         "%v nicht unterstützt für %v",
		"binary envelope invalid":         "Binärumschlag ungültig",
	},
}

var printer *message.Printer

func init() {
	for tag, msgs := range _messages {
		for key, msg := range msgs {
			setString(tag, key, msg)
			// en-US is listed so that unmatched locales fall back to it.
			setString(language.AmericanEnglish, key, key)
		}
	}

	locales := strings.FieldsFunc(os.Getenv("COCOASM_LANG"), func(r rune) bool {
		return r == ':' || r == ','
	})
	if len(locales) == 0 {
		var err error
		locales, err = locale.GetLocales()
		if err != nil {
			log.Printf("cocoasm: locale: %v", err)
		}
	}

	printer = NewPrinter(locales...)
}

func setString(tag language.Tag, key string, msg string) {
	err := Catalog.SetString(tag, key, msg)
	if err != nil {
		log.Printf("cocoasm: catalog: %v: %v", tag, err)
	}
}

// NewPrinter returns a printer for the best match of locales in Catalog,
// or for en-US when none match.
func NewPrinter(locales ...string) *message.Printer {
	tag := language.AmericanEnglish
	if len(locales) != 0 {
		tag, _ = language.MatchStrings(Catalog.Matcher(), locales...)
	}

	return message.NewPrinter(tag, message.Catalog(Catalog))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
