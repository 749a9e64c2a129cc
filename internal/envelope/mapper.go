package envelope

import "net/http"

// Map converts the outcome of a single call to op into its response envelope.
//
// Transport results become Success (or Error when op checks the status and it
// is not 200). Classified failures become an Exception carrying the vendor
// detail only when the code is on op's allow-list. Anything else, including an
// operation missing from the table, becomes DefaultException.
func Map(op Operation, o Outcome) Envelope {
	rule, known := rules[op]

	switch o.Kind {
	case KindTransport:
		if known && rule.CheckStatus && o.Status != http.StatusOK {
			return ErrorEnvelope(o.Status, o.Raw)
		}
		return SuccessEnvelope(o.Status, o.Payload)

	case KindClassified:
		if known && rule.Recognizes(o.Code) {
			return ExceptionEnvelope(o.Status, o.Detail)
		}
		return DefaultException()

	default:
		return DefaultException()
	}
}
