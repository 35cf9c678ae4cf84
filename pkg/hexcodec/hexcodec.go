// Package hexcodec decodes the hex transport encoding used for free-text and
// list fields at the operation boundary. Callers outside the ledger hex-encode
// UTF-8 text (and JSON arrays of identifiers) so that transports limited to
// printable ASCII can carry them.
package hexcodec

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	dErrors "firledger/pkg/domain-errors"
)

// DecodeText decodes a hex-encoded UTF-8 string. field names the argument in
// the returned error.
func DecodeText(field, encoded string) (string, error) {
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidInput, fmt.Sprintf("%s is not valid hex", field))
	}
	if !utf8.Valid(raw) {
		return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s is not valid UTF-8", field))
	}
	return string(raw), nil
}

// DecodeList decodes a hex-encoded JSON array of identifiers. Numeric
// elements are accepted and kept in their literal form, since national id
// numbers are often sent unquoted.
func DecodeList(field, encoded string) ([]string, error) {
	text, err := DecodeText(field, encoded)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()
	var elems []any
	if err := dec.Decode(&elems); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, fmt.Sprintf("%s is not a JSON array", field))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s has data after the JSON array", field))
	}
	out := make([]string, 0, len(elems))
	for i, e := range elems {
		switch v := e.(type) {
		case string:
			out = append(out, v)
		case json.Number:
			out = append(out, v.String())
		default:
			return nil, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("%s[%d] must be a string or number", field, i))
		}
	}
	return out, nil
}

// EncodeText is the inverse of DecodeText.
func EncodeText(s string) string {
	return hex.EncodeToString([]byte(s))
}

// EncodeList is the inverse of DecodeList for string elements.
func EncodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	raw, _ := json.Marshal(items)
	return hex.EncodeToString(raw)
}
