package symbolic

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. Each is also the English format.
const (
	msgLexToken        = "%d: invalid token: %s"
	msgLexKind         = "%d: invalid %s token: %s"
	msgBracketClose    = "%d: close bracket %s with no open bracket"
	msgBracketOpen     = "%d: open bracket %s with no close bracket"
	msgBracketMismatch = "%d: mismatched bracket: %sexpr%s"
	msgOperatorUnary   = "%d: unexpected unary operator %q"
	msgOperatorBinary  = "%d: unexpected binary operator %q"
	msgCall            = "%d: cannot call %s with %d arguments"
	msgEmpty           = "%d: no expression up to %s"
	msgEmptyEnd        = "%d: no expression"
	msgMalformed       = "%d: missing operator before %q"
	msgUndefined       = "%s: %s is undefined"
	msgUnsupported     = "%s: %s"
	msgNotANumber      = "%s is not %s"
	msgName            = "undefined variable: %s"
)

var german = map[string]string{
	msgLexToken:        "%d: ungültiges Zeichen: %s",
	msgLexKind:         "%d: ungültiges %s-Token: %s",
	msgBracketClose:    "%d: schließende Klammer %s ohne öffnende Klammer",
	msgBracketOpen:     "%d: öffnende Klammer %s ohne schließende Klammer",
	msgBracketMismatch: "%d: Klammern passen nicht: %sexpr%s",
	msgOperatorUnary:   "%d: unerwarteter einstelliger Operator %q",
	msgOperatorBinary:  "%d: unerwarteter zweistelliger Operator %q",
	msgCall:            "%d: %s kann nicht mit %d Argumenten aufgerufen werden",
	msgEmpty:           "%d: kein Ausdruck vor %s",
	msgEmptyEnd:        "%d: kein Ausdruck",
	msgMalformed:       "%d: fehlender Operator vor %q",
	msgUndefined:       "%s: %s ist nicht definiert",
	msgUnsupported:     "%s: %s",
	msgNotANumber:      "%s ist kein %s",
	msgName:            "undefinierte Variable: %s",
}

func init() {
	for key, msg := range german {
		if err := message.SetString(language.English, key, key); err != nil {
			panic(err)
		}
		if err := message.SetString(language.German, key, msg); err != nil {
			panic(err)
		}
	}
}
