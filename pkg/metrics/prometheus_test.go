package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/codeready-toolchain/logshield/pkg/masking"
)

func TestRecordMasking(t *testing.T) {
	svc := masking.NewService(nil)

	maskedBefore := testutil.ToFloat64(MessagesTotal.WithLabelValues(OutcomeMasked))
	cleanBefore := testutil.ToFloat64(MessagesTotal.WithLabelValues(OutcomeClean))
	emailBefore := testutil.ToFloat64(RedactionsTotal.WithLabelValues(string(masking.KindEmail)))
	cardBefore := testutil.ToFloat64(RedactionsTotal.WithLabelValues(string(masking.KindCreditCard)))

	RecordMasking(svc.Redact("a@example.com and b@example.com paid with 4111 1111 1111 1234"), time.Millisecond)
	RecordMasking(svc.Redact("nothing sensitive"), time.Microsecond)

	assert.Equal(t, maskedBefore+1, testutil.ToFloat64(MessagesTotal.WithLabelValues(OutcomeMasked)))
	assert.Equal(t, cleanBefore+1, testutil.ToFloat64(MessagesTotal.WithLabelValues(OutcomeClean)))
	assert.Equal(t, emailBefore+2, testutil.ToFloat64(RedactionsTotal.WithLabelValues(string(masking.KindEmail))))
	assert.Equal(t, cardBefore+1, testutil.ToFloat64(RedactionsTotal.WithLabelValues(string(masking.KindCreditCard))))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(MaskDuration), 1)
}

func TestRecordSinkError(t *testing.T) {
	before := testutil.ToFloat64(SinkErrorsTotal.WithLabelValues("database"))

	RecordSinkError("database")
	RecordSinkError("database")

	assert.Equal(t, before+2, testutil.ToFloat64(SinkErrorsTotal.WithLabelValues("database")))
}
