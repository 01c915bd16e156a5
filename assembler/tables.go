package assembler

import "github.com/nwscript-tools/ncs/isa"

// variant describes one entry of variant_opcodes (§4.5 Pre-processing): a
// resolved opcode plus either a known type byte, or nil meaning the type
// must be supplied as a following explicit-index token.
type variant struct {
	opcode   *isa.Opcode
	typeByte *byte
}

// mnemonicTables holds the two lookup maps built once per Assembler from
// the opcode table (§4.5 Pre-processing).
type mnemonicTables struct {
	reverseOpcodes map[string]*isa.Opcode
	variantOpcodes map[string]variant
}

func buildMnemonicTables() *mnemonicTables {
	m := &mnemonicTables{
		reverseOpcodes: make(map[string]*isa.Opcode),
		variantOpcodes: make(map[string]variant),
	}
	for i := range isa.Opcodes {
		op := isa.Opcodes[i]
		if op == nil {
			continue
		}
		m.reverseOpcodes[op.Mnemonic] = op
		if len(op.Types) <= 1 {
			continue
		}
		hasNonAbbr := false
		for _, t := range op.Types {
			t := t
			st := isa.Types[t]
			if st != nil && st.Abbr != "" {
				m.variantOpcodes[op.Mnemonic+st.Abbr] = variant{opcode: op, typeByte: &t}
			} else {
				hasNonAbbr = true
			}
		}
		if hasNonAbbr {
			m.variantOpcodes[op.Mnemonic] = variant{opcode: op, typeByte: nil}
		}
	}
	return m
}
