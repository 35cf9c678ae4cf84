package outcome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		r := Accept(42)
		v, ok := r.Value()
		assert.True(t, ok)
		assert.Equal(t, 42, v)
		assert.False(t, r.Rejected())
		assert.Empty(t, r.Reason())
	})

	t.Run("rejected", func(t *testing.T) {
		r := Reject[string]("Status already updated")
		_, ok := r.Value()
		assert.False(t, ok)
		assert.True(t, r.Rejected())
		assert.Equal(t, "Status already updated", r.Reason())
		assert.Panics(t, func() { r.MustValue() })
	})

	t.Run("unauthorized", func(t *testing.T) {
		r := Unauthorized[int]()
		assert.True(t, r.Rejected())
		assert.Equal(t, ReasonUnauthorized, r.Reason())
	})
}
