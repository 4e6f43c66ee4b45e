package fetch

import (
	"covidwatch-backend/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("lib/fetch")
var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput dumps full request/response transcripts to
// `out` for clients created afterwards.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
