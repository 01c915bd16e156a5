package isa

import "fmt"

// The opcode and stack-type values below are taken verbatim from the
// reference implementation's tables (byte codes, legal-type sets, operand
// lists) — they are the authoritative source for details spec left
// informal. Entries the reference implementation itself flagged as
// guesses are carried forward with the same caveat.

var opcodeDefs = []Opcode{
	{Code: 0x01, Mnemonic: "CPDOWNSP", Types: []byte{0x01},
		Operands: map[byte][]Operand{0x01: {{KindOffset, 4}, {KindSize, 2}}}},
	{Code: 0x02, Mnemonic: "RSADD", Types: []byte{0x03, 0x04, 0x05, 0x06, 0x13}},
	{Code: 0x03, Mnemonic: "CPTOPSP", Types: []byte{0x01},
		Operands: map[byte][]Operand{0x01: {{KindOffset, 4}, {KindSize, 2}}}},
	{Code: 0x04, Mnemonic: "CONST", Types: []byte{0x03, 0x04, 0x05, 0x06},
		Operands: map[byte][]Operand{
			0x03: {{KindInteger, 4}},
			0x04: {{KindFloat, 4}},
			0x05: {{KindSize, 2}, {KindString, 0}},
			0x06: {{KindObject, 4}},
		}},
	{Code: 0x05, Mnemonic: "ACTION", Types: []byte{0x00},
		Operands: map[byte][]Operand{0x00: {{KindRoutine, 2}, {KindArgCount, 1}}}},
	{Code: 0x06, Mnemonic: "LOGANDII", Types: []byte{0x20}},
	{Code: 0x07, Mnemonic: "LOGORII", Types: []byte{0x20}},
	{Code: 0x08, Mnemonic: "INCORII", Types: []byte{0x20}},
	{Code: 0x09, Mnemonic: "EXCORII", Types: []byte{0x20}},
	{Code: 0x0A, Mnemonic: "BOOLANDII", Types: []byte{0x20}},
	// EQUAL's operand map assigns 0x24 -> [] and then, per the source's own
	// later (overriding) entry, 0x24 -> [Size(2)]. Only the final value
	// survives in a map literal, matching the reference's HashMap! macro
	// semantics (last write wins). This is the "TT as structural-compare
	// operand" half of the open question on type 0x24 (see SPEC_FULL.md §9).
	{Code: 0x0B, Mnemonic: "EQUAL",
		Types: []byte{0x20, 0x21, 0x22, 0x23, 0x24, 0x30, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39},
		Operands: map[byte][]Operand{
			0x20: {}, 0x21: {}, 0x22: {}, 0x23: {}, 0x24: {{KindSize, 2}},
			0x30: {}, 0x31: {}, 0x32: {}, 0x33: {}, 0x34: {}, 0x35: {}, 0x36: {}, 0x37: {}, 0x38: {}, 0x39: {},
		}},
	// NEQUAL's legal-types set omits 0x24 even though its operand map
	// carries an (unreachable) entry for it — preserved verbatim from the
	// source, inconsistency and all.
	{Code: 0x0C, Mnemonic: "NEQUAL",
		Types: []byte{0x20, 0x21, 0x22, 0x23, 0x30, 0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39},
		Operands: map[byte][]Operand{
			0x20: {}, 0x21: {}, 0x22: {}, 0x23: {}, 0x24: {{KindSize, 2}},
			0x30: {}, 0x31: {}, 0x32: {}, 0x33: {}, 0x34: {}, 0x35: {}, 0x36: {}, 0x37: {}, 0x38: {}, 0x39: {},
		}},
	{Code: 0x0D, Mnemonic: "GEQ", Types: []byte{0x20, 0x21}},
	{Code: 0x0E, Mnemonic: "GT", Types: []byte{0x20, 0x21}},
	{Code: 0x0F, Mnemonic: "LT", Types: []byte{0x20, 0x21}},
	{Code: 0x10, Mnemonic: "LEQ", Types: []byte{0x20, 0x21}},
	{Code: 0x11, Mnemonic: "SHLEFTII", Types: []byte{0x20}},
	{Code: 0x12, Mnemonic: "SHRIGHTII", Types: []byte{0x20}},
	{Code: 0x13, Mnemonic: "USHRIGHTII", Types: []byte{0x20}},
	{Code: 0x14, Mnemonic: "ADD", Types: []byte{0x20, 0x25, 0x26, 0x21, 0x23, 0x3A}},
	{Code: 0x15, Mnemonic: "SUB", Types: []byte{0x20, 0x25, 0x26, 0x21, 0x3A}},
	{Code: 0x16, Mnemonic: "MUL", Types: []byte{0x20, 0x25, 0x26, 0x21, 0x3B, 0x3C}},
	{Code: 0x17, Mnemonic: "DIV", Types: []byte{0x20, 0x25, 0x26, 0x21, 0x3B}},
	{Code: 0x18, Mnemonic: "MODII", Types: []byte{0x20}},
	{Code: 0x19, Mnemonic: "NEG", Types: []byte{0x03, 0x04}},
	{Code: 0x1A, Mnemonic: "COMPI", Types: []byte{0x03}},
	{Code: 0x1B, Mnemonic: "MOVSP", Types: []byte{0x00},
		Operands: map[byte][]Operand{0x00: {{KindOffset, 4}}}},
	// STORE_STATEALL's legal type 0x08 has no corresponding stack-type
	// table entry at all (not even an "undocumented" placeholder) — one of
	// the "few undocumented" types mentioned in spec §3.
	{Code: 0x1C, Mnemonic: "STORE_STATEALL", Types: []byte{0x08}},
	{Code: 0x1D, Mnemonic: "JMP", Types: []byte{0x00},
		Operands: map[byte][]Operand{0x00: {{KindOffset, 4}}}},
	{Code: 0x1E, Mnemonic: "JSR", Types: []byte{0x00},
		Operands: map[byte][]Operand{0x00: {{KindOffset, 4}}}},
	{Code: 0x1F, Mnemonic: "JZ", Types: []byte{0x00},
		Operands: map[byte][]Operand{0x00: {{KindOffset, 4}}}},
	{Code: 0x20, Mnemonic: "RETN", Types: []byte{0x00}},
	{Code: 0x21, Mnemonic: "DESTRUCT", Types: []byte{0x01},
		Operands: map[byte][]Operand{0x01: {{KindSize, 2}, {KindOffset, 2}, {KindSize, 2}}}},
	{Code: 0x22, Mnemonic: "NOTI", Types: []byte{0x03}},
	{Code: 0x23, Mnemonic: "DECISP", Types: []byte{0x03},
		Operands: map[byte][]Operand{0x03: {{KindOffset, 4}}}},
	{Code: 0x24, Mnemonic: "INCISP", Types: []byte{0x03},
		Operands: map[byte][]Operand{0x03: {{KindOffset, 4}}}},
	{Code: 0x25, Mnemonic: "JNZ", Types: []byte{0x00},
		Operands: map[byte][]Operand{0x00: {{KindOffset, 4}}}},
	{Code: 0x26, Mnemonic: "CPDOWNBP", Types: []byte{0x01},
		Operands: map[byte][]Operand{0x01: {{KindOffset, 4}, {KindSize, 2}}}},
	{Code: 0x27, Mnemonic: "CPTOPBP", Types: []byte{0x01},
		Operands: map[byte][]Operand{0x01: {{KindOffset, 4}, {KindSize, 2}}}},
	{Code: 0x28, Mnemonic: "DECIBP", Types: []byte{0x03},
		Operands: map[byte][]Operand{0x03: {{KindOffset, 4}}}},
	{Code: 0x29, Mnemonic: "INCIBP", Types: []byte{0x03},
		Operands: map[byte][]Operand{0x03: {{KindOffset, 4}}}},
	{Code: 0x2A, Mnemonic: "SAVEBP", Types: []byte{0x00}},
	{Code: 0x2B, Mnemonic: "RESTOREBP", Types: []byte{0x00}},
	{Code: 0x2C, Mnemonic: "STORE_STATE", Types: []byte{0x10},
		Operands: map[byte][]Operand{0x10: {{KindSize, 4}, {KindSize, 4}}}},
	{Code: 0x2D, Mnemonic: "NOP", Types: []byte{0x00}},
	// PROBABLY PARTIALLY INCORRECT: the reference implementation marks this
	// entry as a guess ("DA2 variant", operand list MADE UP). Kept verbatim
	// per spec §9's instruction to preserve source table entries as-is.
	{Code: 0x37, Mnemonic: "CP_x37_DA2_QQ", Types: []byte{0x01},
		Operands: map[byte][]Operand{0x01: {{KindOffset, 4}, {KindSize, 2}}}},
	// T carries no type byte; its sole operand is keyed under the
	// synthetic typelessKey the decoder/encoder use for type-less opcodes.
	{Code: TOpcode, Mnemonic: "T", Types: nil,
		Operands: map[byte][]Operand{typelessKey: {{KindSize, 4}}}},
}

var typeDefs = []StackType{
	{Code: 0x00, Abbr: "", Desc: "Null?"},
	{Code: 0x01, Abbr: "", Desc: "Copy?"},
	{Code: 0x03, Abbr: "I", Desc: "Integer"},
	{Code: 0x04, Abbr: "F", Desc: "Float"},
	{Code: 0x05, Abbr: "S", Desc: "String"},
	{Code: 0x06, Abbr: "O", Desc: "Object"},
	{Code: 0x10, Abbr: "", Desc: "Effect"},
	{Code: 0x11, Abbr: "", Desc: "Event"},
	{Code: 0x12, Abbr: "", Desc: "Location"},
	{Code: 0x13, Abbr: "", Desc: "Talent"},
	{Code: 0x20, Abbr: "II", Desc: "Integer, Integer"},
	{Code: 0x21, Abbr: "FF", Desc: "Float, Float"},
	{Code: 0x22, Abbr: "OO", Desc: "Object, Object"},
	{Code: 0x23, Abbr: "SS", Desc: "String, String"},
	{Code: 0x24, Abbr: "TT", Desc: "Structure, Structure"},
	{Code: 0x25, Abbr: "IF", Desc: "Integer, Float"},
	{Code: 0x26, Abbr: "FI", Desc: "Float, Integer"},
	{Code: 0x30, Abbr: "", Desc: "Effect, Effect"},
	{Code: 0x31, Abbr: "", Desc: "Event, Event"},
	{Code: 0x32, Abbr: "", Desc: "Location, Location"},
	{Code: 0x33, Abbr: "", Desc: "Talent, Talent"},
	// Undocumented, but legal args for EQUAL/NEQUAL in the source tables.
	{Code: 0x34, Abbr: "", Desc: "???"},
	{Code: 0x35, Abbr: "", Desc: "???"},
	{Code: 0x36, Abbr: "", Desc: "???"},
	{Code: 0x37, Abbr: "", Desc: "???"},
	{Code: 0x38, Abbr: "", Desc: "???"},
	{Code: 0x39, Abbr: "", Desc: "???"},
	{Code: 0x3A, Abbr: "VV", Desc: "Vector, Vector"},
	{Code: 0x3B, Abbr: "VF", Desc: "Vector, Float"},
	{Code: 0x3C, Abbr: "FV", Desc: "Float, Vector"},
}

// Opcodes is the direct-indexed, immutable opcode table (§4.1). Built once
// at package init; nil entries mean the code byte is unassigned.
var Opcodes = buildOpcodeTable(opcodeDefs)

// Types is the direct-indexed, immutable stack-type table (§4.1).
var Types = buildTypeTable(typeDefs)

func buildOpcodeTable(defs []Opcode) [256]*Opcode {
	var table [256]*Opcode
	for i := range defs {
		d := defs[i]
		if table[d.Code] != nil {
			panic(TableError{Msg: fmt.Sprintf("duplicate opcode 0x%02X (%s and %s)", d.Code, table[d.Code].Mnemonic, d.Mnemonic)})
		}
		table[d.Code] = &d
	}
	return table
}

func buildTypeTable(defs []StackType) [64]*StackType {
	var table [64]*StackType
	for i := range defs {
		d := defs[i]
		if int(d.Code) >= len(table) {
			panic(TableError{Msg: fmt.Sprintf("stack type code 0x%02X out of range", d.Code)})
		}
		if table[d.Code] != nil {
			panic(TableError{Msg: fmt.Sprintf("duplicate stack type 0x%02X", d.Code)})
		}
		table[d.Code] = &d
	}
	return table
}

// LongestMnemonicField returns the width of the widest rendered
// "MNEMONIC[ABBR|0xHH]" column across the whole opcode table, used to
// left-align operand columns when rendering (§4.4 Rendering).
func LongestMnemonicField() int {
	longest := 0
	for _, op := range Opcodes {
		if op == nil {
			continue
		}
		if op.Types == nil {
			if n := len(op.Mnemonic); n > longest {
				longest = n
			}
			continue
		}
		for _, t := range op.Types {
			field := MnemonicField(op, t)
			if n := len(field); n > longest {
				longest = n
			}
		}
	}
	return longest
}

// MnemonicField renders the "MNEMONIC[ABBR|0xHH]" column for one
// (opcode, type) pair, per the rules in §4.4 Rendering.
func MnemonicField(op *Opcode, typeByte byte) string {
	if op.Types == nil {
		return op.Mnemonic
	}
	if len(op.Types) == 1 {
		return op.Mnemonic
	}
	st := Types[typeByte]
	if st != nil && st.Abbr != "" {
		return op.Mnemonic + st.Abbr
	}
	return fmt.Sprintf("%s0x%02X", op.Mnemonic, typeByte)
}
