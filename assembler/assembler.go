// Package assembler encodes OXA text back into an NCS byte stream.
package assembler

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nwscript-tools/ncs/isa"
	"github.com/nwscript-tools/ncs/routines"
)

const defaultHeader = "NCS V1.0"

// Assembler encodes one OXA source into NCS bytes. It is single-call and
// not safe for concurrent use; construct a new one per translation.
type Assembler struct {
	tables *mnemonicTables
	routs  *routines.Table
}

// New builds an Assembler. routs may be nil; a nil table makes every
// symbolic Routine reference (other than an explicit #0xHEX id) fail.
func New(routs *routines.Table) *Assembler {
	return &Assembler{tables: buildMnemonicTables(), routs: routs}
}

// Run reads OXA text from r and writes the assembled NCS binary to w.
// Assembly is two-pass (§4.5, §9 Two-pass assembly): every instruction is
// encoded into an in-memory buffer first, then T's Size operand is patched
// with the true total byte count before the buffer is written through.
func (a *Assembler) Run(r io.Reader, w io.Writer) (err error) {
	bw := bufio.NewWriter(w)
	defer func() {
		if ferr := bw.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}()

	scanner := bufio.NewScanner(r)
	var buf bytes.Buffer
	header := defaultHeader
	headerSeen := false
	tPatchOffset := -1
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ";;") {
			if !headerSeen {
				header = strings.TrimPrefix(trimmed, ";;")
				headerSeen = true
			}
			continue
		}
		headerSeen = true

		tokens, terr := tokenizeLine(raw, lineNo)
		if terr != nil {
			return terr
		}
		if len(tokens) == 0 {
			continue
		}

		op, typeByte, hasType, operandStart, rerr := a.resolveLine(tokens, lineNo)
		if rerr != nil {
			return rerr
		}

		buf.WriteByte(op.Code)
		if hasType {
			buf.WriteByte(typeByte)
		}
		if op.Code == isa.TOpcode {
			tPatchOffset = buf.Len()
		}
		if eerr := a.emitOperands(&buf, op, typeByte, tokens, operandStart, lineNo); eerr != nil {
			return eerr
		}
	}
	if serr := scanner.Err(); serr != nil {
		return serr
	}

	if tPatchOffset < 0 {
		return isa.ParseError{Msg: "missing T instruction", Line: lineNo}
	}
	total := uint64(len(header) + buf.Len())
	patched, perr := isa.EncodeUint(total, 4)
	if perr != nil {
		return perr
	}
	copy(buf.Bytes()[tPatchOffset:tPatchOffset+4], patched)

	if _, werr := bw.WriteString(header); werr != nil {
		return werr
	}
	_, werr := bw.Write(buf.Bytes())
	return werr
}

// resolveLine implements §4.5 step 1: resolve the first token(s) of a line
// to (opcode, type byte, has-type, index of the first operand token).
func (a *Assembler) resolveLine(tokens []string, lineNo int) (*isa.Opcode, byte, bool, int, error) {
	if v, ok := a.tables.variantOpcodes[tokens[0]]; ok {
		if v.typeByte != nil {
			return v.opcode, *v.typeByte, true, 1, nil
		}
		if len(tokens) < 2 {
			return nil, 0, false, 0, isa.ParseError{Msg: "missing explicit type index for " + tokens[0], Line: lineNo}
		}
		idx, err := strconv.ParseUint(tokens[1], 10, 32)
		if err != nil || idx >= uint64(len(v.opcode.Types)) {
			return nil, 0, false, 0, isa.ParseError{Msg: "invalid type index: " + tokens[1], Line: lineNo}
		}
		return v.opcode, v.opcode.Types[idx], true, 2, nil
	}

	op, ok := a.tables.reverseOpcodes[tokens[0]]
	if !ok {
		return nil, 0, false, 0, isa.ParseError{Msg: "unknown mnemonic: " + tokens[0], Line: lineNo}
	}
	switch {
	case op.Types == nil:
		return op, 0, false, 1, nil
	case len(op.Types) == 1:
		return op, op.Types[0], true, 1, nil
	default:
		return nil, 0, false, 0, isa.TableError{Msg: fmt.Sprintf("opcode %s has no unambiguous type variant for bare mnemonic", op.Mnemonic)}
	}
}

// emitOperands implements §4.5 steps 3-4: token-count validation followed
// by per-operand parse-and-encode, honoring the Size-before-String
// suppression rule.
func (a *Assembler) emitOperands(buf *bytes.Buffer, op *isa.Opcode, typeByte byte, tokens []string, operandStart int, lineNo int) error {
	descs := op.OperandsFor(typeByte)

	var expectedTokens []isa.Operand
	for i, d := range descs {
		if d.Kind == isa.KindSize && i+1 < len(descs) && descs[i+1].Kind == isa.KindString {
			continue
		}
		expectedTokens = append(expectedTokens, d)
	}
	if len(tokens)-operandStart != len(expectedTokens) {
		return isa.ParseError{
			Msg:  fmt.Sprintf("expected %d operand(s), got %d", len(expectedTokens), len(tokens)-operandStart),
			Line: lineNo,
		}
	}

	tokIdx := operandStart
	for i, d := range descs {
		if d.Kind == isa.KindSize && i+1 < len(descs) && descs[i+1].Kind == isa.KindString {
			continue
		}
		tok := tokens[tokIdx]
		tokIdx++
		if d.Kind == isa.KindString {
			raw := encodeString(tok)
			sizeDesc := descs[i-1]
			sizeBytes, err := isa.EncodeUint(uint64(len(raw)), sizeDesc.Width)
			if err != nil {
				return err
			}
			buf.Write(sizeBytes)
			buf.Write(raw)
			continue
		}
		b, err := encodeOperand(d, tok, lineNo, a.routs)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}
