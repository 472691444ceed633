package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestAdviceTotal_ByMode(t *testing.T) {
	before := testutil.ToFloat64(AdviceTotal.WithLabelValues(ModeExtended))
	AdviceTotal.WithLabelValues(Mode(true)).Inc()

	if got := testutil.ToFloat64(AdviceTotal.WithLabelValues(ModeExtended)); got != before+1 {
		t.Errorf("extended counter: got %v, want %v", got, before+1)
	}
	if Mode(false) != ModeShort {
		t.Errorf("Mode(false) = %q", Mode(false))
	}
}
