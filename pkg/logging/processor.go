package logging

import (
	"context"

	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/codeready-toolchain/logshield/pkg/masking"
)

// MaskedAttr marks a record whose body was already masked by a Logger.
// Processor forwards such records untouched.
const MaskedAttr = "logshield.masked"

// Processor is an OpenTelemetry log processor that masks string record
// bodies before handing records to the next processor. Shutdown, ForceFlush
// and Enabled are those of the wrapped processor.
type Processor struct {
	sdklog.Processor
	redactor masking.Redactor
}

// NewProcessor wraps next. A nil redactor selects the builtin masking service.
func NewProcessor(next sdklog.Processor, redactor masking.Redactor) *Processor {
	if redactor == nil {
		redactor = masking.NewService(nil)
	}
	return &Processor{Processor: next, redactor: redactor}
}

// OnEmit masks the body of record and forwards it.
func (p *Processor) OnEmit(ctx context.Context, record *sdklog.Record) error {
	if body := record.Body(); body.Kind() == log.KindString && !alreadyMasked(record) {
		record.SetBody(log.StringValue(p.redactor.Mask(body.AsString())))
	}
	return p.Processor.OnEmit(ctx, record)
}

func alreadyMasked(record *sdklog.Record) bool {
	masked := false
	record.WalkAttributes(func(kv log.KeyValue) bool {
		if kv.Key == MaskedAttr && kv.Value.Kind() == log.KindBool {
			masked = kv.Value.AsBool()
			return false
		}
		return true
	})
	return masked
}

var _ sdklog.Processor = (*Processor)(nil)
