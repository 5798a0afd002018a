package wire

// Tag bytes for the BSATN wire encoding. Every value starts with one tag
// byte; multi-byte payloads are little-endian.
const (
	TagBoolFalse  byte = 0x01
	TagBoolTrue   byte = 0x02
	TagU8         byte = 0x03
	TagI8         byte = 0x04
	TagU16        byte = 0x05
	TagI16        byte = 0x06
	TagU32        byte = 0x07
	TagI32        byte = 0x08
	TagU64        byte = 0x09
	TagI64        byte = 0x0A
	TagF32        byte = 0x0B
	TagF64        byte = 0x0C
	TagString     byte = 0x0D // length prefixed u32 LE
	TagBytes      byte = 0x0E // length prefixed u32 LE
	TagList       byte = 0x0F // count u32 LE, then each element
	TagOptionNone byte = 0x10
	TagOptionSome byte = 0x11 // followed by the wrapped value
	TagStruct     byte = 0x12 // fieldCount u32, then nameLen u8 + name + value per field
	TagEnum       byte = 0x13 // variantIndex u32, then the payload value
	TagTuple      byte = 0x14 // count u32 LE, then each element positionally
	TagMap        byte = 0x15 // entryCount u32 LE, then key value per entry
)

const (
	// MaxPayloadLen caps strings and byte blobs at 1 MiB.
	MaxPayloadLen = 1 << 20

	// MaxFieldNameLen is the u8 length prefix ceiling for struct field names.
	MaxFieldNameLen = 255
)
