package isa

import (
	"encoding/binary"
	"math"
	"strconv"
)

// DecodeUint reads an unsigned integer of the given byte width (1, 2, or 4)
// from data in big-endian order. Any other width is a DataError: the
// operand tables never request one, so this only fires if a table entry
// is misconfigured.
func DecodeUint(data []byte) (uint64, error) {
	switch len(data) {
	case 1:
		return uint64(data[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(data)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(data)), nil
	default:
		return 0, DataError{Msg: unsupportedWidth("unsigned integer", len(data))}
	}
}

// DecodeInt reads a signed integer of the given byte width (1, 2, or 4)
// from data in big-endian order.
func DecodeInt(data []byte) (int64, error) {
	switch len(data) {
	case 1:
		return int64(int8(data[0])), nil
	case 2:
		return int64(int16(binary.BigEndian.Uint16(data))), nil
	case 4:
		return int64(int32(binary.BigEndian.Uint32(data))), nil
	default:
		return 0, DataError{Msg: unsupportedWidth("signed integer", len(data))}
	}
}

// DecodeFloat32 reads a 4-byte IEEE-754 float in big-endian order.
func DecodeFloat32(data []byte) (float32, error) {
	if len(data) != 4 {
		return 0, DataError{Msg: unsupportedWidth("float", len(data))}
	}
	bits := binary.BigEndian.Uint32(data)
	return math.Float32frombits(bits), nil
}

// EncodeUint produces exactly width bytes for v in big-endian order.
func EncodeUint(v uint64, width int) ([]byte, error) {
	buf := make([]byte, width)
	switch width {
	case 1:
		buf[0] = byte(v)
	case 2:
		binary.BigEndian.PutUint16(buf, uint16(v))
	case 4:
		binary.BigEndian.PutUint32(buf, uint32(v))
	default:
		return nil, DataError{Msg: unsupportedWidth("unsigned integer", width)}
	}
	return buf, nil
}

// EncodeInt produces exactly width bytes for v in big-endian order.
func EncodeInt(v int64, width int) ([]byte, error) {
	buf := make([]byte, width)
	switch width {
	case 1:
		buf[0] = byte(int8(v))
	case 2:
		binary.BigEndian.PutUint16(buf, uint16(int16(v)))
	case 4:
		binary.BigEndian.PutUint32(buf, uint32(int32(v)))
	default:
		return nil, DataError{Msg: unsupportedWidth("signed integer", width)}
	}
	return buf, nil
}

// EncodeFloat32 produces the 4-byte big-endian IEEE-754 encoding of v.
func EncodeFloat32(v float32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, math.Float32bits(v))
	return buf
}

func unsupportedWidth(kind string, width int) string {
	plural := "s"
	if width == 1 {
		plural = ""
	}
	return kind + " width of " + strconv.Itoa(width) + " byte" + plural + " is not supported"
}
