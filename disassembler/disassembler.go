// Package disassembler decodes an NCS byte stream into OXA text.
package disassembler

import (
	"bufio"
	"fmt"
	"io"

	"github.com/nwscript-tools/ncs/isa"
	"github.com/nwscript-tools/ncs/routines"
)

const headerLen = 8

// Disassembler decodes one NCS binary into OXA text. It is single-call and
// not safe for concurrent use; construct a new one per translation.
type Disassembler struct {
	r       io.Reader
	w       *bufio.Writer
	routs   *routines.Table
	pos     int64
	longest int
}

// New builds a Disassembler reading from r and writing rendered text to w.
// routs may be nil; unresolved routine IDs then render as "???#0xHEX".
func New(r io.Reader, w io.Writer, routs *routines.Table) *Disassembler {
	return &Disassembler{
		r:       r,
		w:       bufio.NewWriter(w),
		routs:   routs,
		longest: isa.LongestMnemonicField(),
	}
}

// Run performs the full disassembly: header, T validation, then the decode
// loop, per §4.4. The output writer is flushed on every return path.
func (d *Disassembler) Run() (err error) {
	defer func() {
		if ferr := d.w.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}()

	header, err := d.readFull(headerLen)
	if err != nil {
		return isa.OpStreamError{Msg: "missing header", Offset: d.pos}
	}
	fmt.Fprintf(d.w, ";;%s\n", string(header))

	tInst, err := d.decodeInstruction(true)
	if err != nil {
		return err
	}
	if tInst.Opcode.Code != isa.TOpcode {
		return isa.OpStreamError{Msg: "missing T", Offset: d.pos}
	}
	declaredTotal, err := isa.DecodeUint(tInst.Operands[0].Raw)
	if err != nil {
		return err
	}
	d.render(tInst)

	for d.pos < int64(declaredTotal) {
		inst, err := d.decodeInstruction(false)
		if err != nil {
			return err
		}
		if d.pos > int64(declaredTotal) {
			return isa.OpStreamError{Msg: "size mismatch", Offset: d.pos}
		}
		d.render(inst)
	}
	if d.pos != int64(declaredTotal) {
		return isa.OpStreamError{Msg: "size mismatch", Offset: d.pos}
	}
	return nil
}

// decodeInstruction implements the per-instruction decode state machine of
// §4.4: ExpectOpcode -> ExpectType? -> ExpectOperands*(n) -> Emit.
func (d *Disassembler) decodeInstruction(wantT bool) (*isa.Instruction, error) {
	codeByte, err := d.readFull(1)
	if err != nil {
		if wantT && err == io.EOF {
			return nil, isa.OpStreamError{Msg: "missing T", Offset: d.pos}
		}
		return nil, isa.OpStreamError{Msg: "unexpected EOF", Offset: d.pos}
	}
	op := isa.Opcodes[codeByte[0]]
	if op == nil {
		return nil, isa.OpStreamError{Msg: fmt.Sprintf("unknown opcode at byte %d", d.pos-1), Offset: d.pos - 1}
	}

	inst := &isa.Instruction{Opcode: op}
	typeByte := byte(0)
	if op.Types != nil {
		tb, err := d.readFull(1)
		if err != nil {
			return nil, isa.OpStreamError{Msg: "unexpected EOF", Offset: d.pos}
		}
		typeByte = tb[0]
		if !op.HasType(typeByte) {
			return nil, isa.OpStreamError{
				Msg:    fmt.Sprintf("Type 0x%02X not in list of legal types for opcode %s", typeByte, op.Mnemonic),
				Offset: d.pos - 1,
			}
		}
		inst.TypeByte = &typeByte
	}

	operands := op.OperandsFor(typeByte)
	var lastSize uint64
	haveSize := false
	for _, desc := range operands {
		width := desc.Width
		if desc.Kind == isa.KindString {
			if !haveSize {
				return nil, isa.OpStreamError{Msg: "String without size", Offset: d.pos}
			}
			width = int(lastSize)
		}
		raw, err := d.readFull(width)
		if err != nil {
			return nil, isa.OpStreamError{Msg: "unexpected EOF", Offset: d.pos}
		}
		inst.Operands = append(inst.Operands, isa.OperandValue{Descriptor: desc, Raw: raw})
		if desc.Kind == isa.KindSize {
			v, err := isa.DecodeUint(raw)
			if err != nil {
				return nil, err
			}
			lastSize = v
			haveSize = true
		} else {
			haveSize = false
		}
	}
	return inst, nil
}

// readFull loops on Read until n bytes are collected or EOF/ErrUnexpectedEOF
// surfaces, tolerating short reads per §5.
func (d *Disassembler) readFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(d.r, buf)
	d.pos += int64(read)
	if err != nil {
		return nil, err
	}
	return buf, nil
}
