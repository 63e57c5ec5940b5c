package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoop_IsSafe(t *testing.T) {
	o := NewNoop()

	assert.NotPanics(t, func() {
		ctx, end := o.StartSpan(context.Background(), "generate", map[string]string{"advisor": "elon"})
		assert.NotNil(t, ctx)
		end(errors.New("boom"))
		o.RecordGeneration(context.Background(), 10*time.Millisecond, "success", 2)
		o.Shutdown()
	})
}

func TestZeroValue_IsSafe(t *testing.T) {
	var o Observability

	assert.NotPanics(t, func() {
		_, end := o.StartSpan(context.Background(), "generate", nil)
		end(nil)
		o.RecordGeneration(context.Background(), time.Second, "failed", 0)
		o.Shutdown()
	})
}

func TestNewJaegerTracerProvider_RequiresEndpoint(t *testing.T) {
	_, err := newJaegerTracerProvider("svc", "")
	assert.Error(t, err)
}
