// Package compactbinary implements version 1 of the Bond Compact Binary
// protocol, the runtime behind code generated by the Go target.
//
// Layout summary:
//
//	field header   type | id<<5 when id <= 5
//	               type | 6<<5, id          when id <= 0xff
//	               type | 7<<5, id lo, id hi otherwise
//	struct end     0 (BT_STOP) or 1 (BT_STOP_BASE)
//	list/set       element type, varint size, elements
//	map            key type, value type, varint size, key/value pairs
//	integers       unsigned as varints, signed as zigzag varints, int8/uint8 raw
//	float/double   little-endian IEEE-754
//	string         varint length, bytes
//
// Omitted fields and struct begin produce no bytes.
package compactbinary
