package bsatn

import (
	"bytes"

	"github.com/clockworklabs/sats-go/pkg/sats/ser"
)

func init() {
	ser.MustRegisterFormat(ser.Format{Name: FormatName, Marshal: Marshal})
}

// Marshal encodes v as a BSATN document.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if _, err := ser.Encode[int](enc, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
