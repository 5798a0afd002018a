package flatkv

import "github.com/clockworklabs/sats-go/pkg/sats/ser"

func init() {
	ser.MustRegisterFormat(ser.Format{
		Name: FormatName,
		Marshal: func(v any) ([]byte, error) {
			return Marshal(v)
		},
	})
}

// Marshal flattens v into k=v lines.
func Marshal(v any, opts ...Options) ([]byte, error) {
	pairs, err := Flatten(v, opts...)
	if err != nil {
		return nil, err
	}
	return pairs.Encode(), nil
}

// Flatten returns the pairs without rendering them to lines.
func Flatten(v any, opts ...Options) (Pairs, error) {
	return ser.Encode[Pairs](NewEncoder(opts...), v)
}
