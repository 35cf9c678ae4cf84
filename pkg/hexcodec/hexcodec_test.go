package hexcodec

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "firledger/pkg/domain-errors"
)

func TestDecodeText(t *testing.T) {
	t.Run("round trips unicode", func(t *testing.T) {
		original := "Théft near the market, 2 bikes ₹"
		got, err := DecodeText("description", EncodeText(original))
		require.NoError(t, err)
		assert.Equal(t, original, got)
	})

	t.Run("empty input decodes to empty text", func(t *testing.T) {
		got, err := DecodeText("comments", "")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("rejects malformed hex", func(t *testing.T) {
		_, err := DecodeText("name", "zz")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("rejects invalid utf-8", func(t *testing.T) {
		_, err := DecodeText("name", hex.EncodeToString([]byte{0xff, 0xfe}))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestDecodeList(t *testing.T) {
	t.Run("round trips identifiers in order", func(t *testing.T) {
		ids := []string{"222233334444", "111122223333"}
		got, err := DecodeList("suspects", EncodeList(ids))
		require.NoError(t, err)
		assert.Equal(t, ids, got)
	})

	t.Run("accepts numeric elements", func(t *testing.T) {
		got, err := DecodeList("suspects", EncodeText(`[123456789012, "abc"]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"123456789012", "abc"}, got)
	})

	t.Run("nil list encodes as empty array", func(t *testing.T) {
		got, err := DecodeList("finalCulprits", EncodeList(nil))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("rejects non-array json", func(t *testing.T) {
		_, err := DecodeList("suspects", EncodeText(`{"a":1}`))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nested values", func(t *testing.T) {
		_, err := DecodeList("suspects", EncodeText(`[["x"]]`))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		for _, text := range []string{`["a"] trailing junk`, `["a"]["b"]`, `["a"] 7`} {
			_, err := DecodeList("suspects", EncodeText(text))
			require.Error(t, err, text)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), text)
		}
	})

	t.Run("allows trailing whitespace", func(t *testing.T) {
		got, err := DecodeList("suspects", EncodeText("[\"a\"]\n "))
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, got)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := DecodeList("suspects", "")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
