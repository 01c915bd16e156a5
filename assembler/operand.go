package assembler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/nwscript-tools/ncs/isa"
	"github.com/nwscript-tools/ncs/routines"
)

// encodeOperand parses one token per the rule table in §4.5 and returns its
// wire bytes. String is not handled here (it returns a DataError): the
// caller encodes it with encodeString and writes the preceding Size operand
// from the string's length itself (see assembler.go).
func encodeOperand(desc isa.Operand, tok string, lineNo int, routs *routines.Table) ([]byte, error) {
	switch desc.Kind {
	case isa.KindObject, isa.KindSize:
		v, err := parseUnsignedHex(tok, desc.Width*8)
		if err != nil {
			return nil, isa.ParseError{Msg: err.Error(), Line: lineNo}
		}
		b, err := isa.EncodeUint(v, desc.Width)
		if err != nil {
			return nil, err
		}
		return b, nil
	case isa.KindRoutine:
		id, err := resolveRoutine(tok, routs, desc.Width*8)
		if err != nil {
			return nil, isa.ParseError{Msg: err.Error(), Line: lineNo}
		}
		b, err := isa.EncodeUint(uint64(id), desc.Width)
		if err != nil {
			return nil, err
		}
		return b, nil
	case isa.KindArgCount:
		v, err := strconv.ParseUint(tok, 10, desc.Width*8)
		if err != nil {
			return nil, isa.ParseError{Msg: "invalid ArgCount literal: " + tok, Line: lineNo}
		}
		b, err := isa.EncodeUint(v, desc.Width)
		if err != nil {
			return nil, err
		}
		return b, nil
	case isa.KindOffset:
		v, err := strconv.ParseInt(strings.TrimPrefix(tok, "@"), 10, desc.Width*8)
		if err != nil {
			return nil, isa.ParseError{Msg: "invalid Offset literal: " + tok, Line: lineNo}
		}
		b, err := isa.EncodeInt(v, desc.Width)
		if err != nil {
			return nil, err
		}
		return b, nil
	case isa.KindInteger:
		v, err := strconv.ParseInt(tok, 10, desc.Width*8)
		if err != nil {
			return nil, isa.ParseError{Msg: "invalid Integer literal: " + tok, Line: lineNo}
		}
		b, err := isa.EncodeInt(v, desc.Width)
		if err != nil {
			return nil, err
		}
		return b, nil
	case isa.KindFloat:
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return nil, isa.ParseError{Msg: "invalid Float literal: " + tok, Line: lineNo}
		}
		return isa.EncodeFloat32(float32(v)), nil
	default:
		return nil, isa.DataError{Msg: "encodeOperand called directly on String; use encodeString"}
	}
}

// encodeString returns the raw bytes of a String operand's text (quotes
// stripped, escapes resolved); the caller emits the preceding Size operand
// from len(result).
func encodeString(tok string) []byte {
	return []byte(stripQuotes(tok))
}

// parseUnsignedHex parses a hex literal bounded by bitSize, matching the
// reference implementation's uint_str_to_bytes: the value is parsed
// directly into the sized integer, not a 64-bit value later truncated, so
// an out-of-range literal fails instead of being silently clipped.
func parseUnsignedHex(tok string, bitSize int) (uint64, error) {
	tok = strings.TrimPrefix(strings.TrimPrefix(tok, "0x"), "0X")
	return strconv.ParseUint(tok, 16, bitSize)
}

// resolveRoutine implements the Routine parse rule: split at '#', look up
// the left side symbolically, parse the right side as an explicit hex id;
// prefer the explicit id when present.
func resolveRoutine(tok string, routs *routines.Table, bitSize int) (uint16, error) {
	name, hexPart, hasHex := strings.Cut(tok, "#")
	if hasHex && hexPart != "" {
		v, err := parseUnsignedHex(hexPart, bitSize)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
				return 0, err
			}
		} else {
			return uint16(v), nil
		}
	}
	if id, ok := routs.ByName(name); ok {
		return id, nil
	}
	return 0, &unresolvedRoutineError{name: tok}
}

type unresolvedRoutineError struct{ name string }

func (e *unresolvedRoutineError) Error() string {
	return "unresolved routine reference: " + e.name
}
