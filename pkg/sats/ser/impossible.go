package ser

// void is an unexported marker with no public constructor. The
// zero-length func array keeps it non-comparable without adding size.
type void struct {
	_ [0]func()
}

// Impossible is the placeholder compound handle for formats that do not
// support a given compound kind. It satisfies all seven handle
// interfaces, so one type covers every begin operation a backend needs
// to reject, but it has no live values: the package exports no
// constructor, the only field is an unexported marker, and every method
// panics.
//
// Backends never build one. Unsupported returns a typed-nil
// *Impossible[Ok] together with a non-nil error, which satisfies the
// handle interface in the begin operation's return type; the error
// stops the caller before any method can be reached. Ok is a phantom
// parameter binding the placeholder to the backend's result type, and
// the struct itself is zero-size.
type Impossible[Ok any] struct {
	_ void
}

// Unsupported builds the return value for a begin operation the format
// does not support: a placeholder handle and an *UnsupportedError
// naming the format and the rejected kind.
//
//	func (e *Encoder) EncodeSeq(int) (ser.SeqEncoder[Pairs], error) {
//		return ser.Unsupported[Pairs]("flatkv", ser.KindSeq)
//	}
func Unsupported[Ok any](format string, kind Kind) (*Impossible[Ok], error) {
	return nil, &UnsupportedError{Format: format, Kind: kind}
}

func never(op string) string {
	return "ser: " + op + " called on an Impossible handle; the begin operation already returned an error"
}

func (*Impossible[Ok]) EncodeElement(any) error {
	panic(never("EncodeElement"))
}

func (*Impossible[Ok]) EncodeKey(any) error {
	panic(never("EncodeKey"))
}

func (*Impossible[Ok]) EncodeValue(any) error {
	panic(never("EncodeValue"))
}

func (*Impossible[Ok]) EncodeField(string, any) error {
	panic(never("EncodeField"))
}

func (*Impossible[Ok]) End() (Ok, error) {
	panic(never("End"))
}

// The placeholder must keep covering every compound handle.
var (
	_ SeqEncoder[struct{}]           = (*Impossible[struct{}])(nil)
	_ TupleEncoder[struct{}]         = (*Impossible[struct{}])(nil)
	_ TupleStructEncoder[struct{}]   = (*Impossible[struct{}])(nil)
	_ TupleVariantEncoder[struct{}]  = (*Impossible[struct{}])(nil)
	_ MapEncoder[struct{}]           = (*Impossible[struct{}])(nil)
	_ StructEncoder[struct{}]        = (*Impossible[struct{}])(nil)
	_ StructVariantEncoder[struct{}] = (*Impossible[struct{}])(nil)
)
