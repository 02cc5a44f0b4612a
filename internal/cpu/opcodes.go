package cpu

// Mode identifies a 6502 addressing mode.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
type Mode uint8

const (
	ModeImplicit Mode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeRelative
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX // indexed indirect: (zp,X)
	ModeIndirectY // indirect indexed: (zp),Y
)

// mnemonic identifies which instruction body an opcode byte dispatches to.
type mnemonic uint8

const (
	mADC mnemonic = iota
	mAND
	mASL
	mBCC
	mBCS
	mBEQ
	mBIT
	mBMI
	mBNE
	mBPL
	mBRK
	mBVC
	mBVS
	mCLC
	mCLD
	mCLI
	mCLV
	mCMP
	mCPX
	mCPY
	mDEC
	mDEX
	mDEY
	mEOR
	mINC
	mINX
	mINY
	mJMP
	mJSR
	mLDA
	mLDX
	mLDY
	mLSR
	mNOP
	mORA
	mPHA
	mPHP
	mPLA
	mPLP
	mROL
	mROR
	mRTI
	mRTS
	mSBC
	mSEC
	mSED
	mSEI
	mSTA
	mSTX
	mSTY
	mTAX
	mTAY
	mTSX
	mTXA
	mTXS
	mTYA
)

// Opcode is one entry in the dispatch table: which instruction, how to
// fetch its operand, how many bytes it occupies (for disassembly), and its
// base cycle cost (before page-cross/branch-taken penalties).
type Opcode struct {
	id     mnemonic
	Name   string
	Mode   Mode
	Bytes  uint8
	Cycles uint8
}

var opcodeTable = map[uint8]Opcode{
	0x69: {mADC, "ADC", ModeImmediate, 2, 2},
	0x65: {mADC, "ADC", ModeZeroPage, 2, 3},
	0x75: {mADC, "ADC", ModeZeroPageX, 2, 4},
	0x6D: {mADC, "ADC", ModeAbsolute, 3, 4},
	0x7D: {mADC, "ADC", ModeAbsoluteX, 3, 4},
	0x79: {mADC, "ADC", ModeAbsoluteY, 3, 4},
	0x61: {mADC, "ADC", ModeIndirectX, 2, 6},
	0x71: {mADC, "ADC", ModeIndirectY, 2, 5},

	0x29: {mAND, "AND", ModeImmediate, 2, 2},
	0x25: {mAND, "AND", ModeZeroPage, 2, 3},
	0x35: {mAND, "AND", ModeZeroPageX, 2, 4},
	0x2D: {mAND, "AND", ModeAbsolute, 3, 4},
	0x3D: {mAND, "AND", ModeAbsoluteX, 3, 4},
	0x39: {mAND, "AND", ModeAbsoluteY, 3, 4},
	0x21: {mAND, "AND", ModeIndirectX, 2, 6},
	0x31: {mAND, "AND", ModeIndirectY, 2, 5},

	0x0A: {mASL, "ASL", ModeAccumulator, 1, 2},
	0x06: {mASL, "ASL", ModeZeroPage, 2, 5},
	0x16: {mASL, "ASL", ModeZeroPageX, 2, 6},
	0x0E: {mASL, "ASL", ModeAbsolute, 3, 6},
	0x1E: {mASL, "ASL", ModeAbsoluteX, 3, 7},

	0x90: {mBCC, "BCC", ModeRelative, 2, 2},
	0xB0: {mBCS, "BCS", ModeRelative, 2, 2},
	0xF0: {mBEQ, "BEQ", ModeRelative, 2, 2},
	0x30: {mBMI, "BMI", ModeRelative, 2, 2},
	0xD0: {mBNE, "BNE", ModeRelative, 2, 2},
	0x10: {mBPL, "BPL", ModeRelative, 2, 2},
	0x50: {mBVC, "BVC", ModeRelative, 2, 2},
	0x70: {mBVS, "BVS", ModeRelative, 2, 2},

	0x24: {mBIT, "BIT", ModeZeroPage, 2, 3},
	0x2C: {mBIT, "BIT", ModeAbsolute, 3, 4},

	0x00: {mBRK, "BRK", ModeImplicit, 1, 7},

	0x18: {mCLC, "CLC", ModeImplicit, 1, 2},
	0xD8: {mCLD, "CLD", ModeImplicit, 1, 2},
	0x58: {mCLI, "CLI", ModeImplicit, 1, 2},
	0xB8: {mCLV, "CLV", ModeImplicit, 1, 2},

	0xC9: {mCMP, "CMP", ModeImmediate, 2, 2},
	0xC5: {mCMP, "CMP", ModeZeroPage, 2, 3},
	0xD5: {mCMP, "CMP", ModeZeroPageX, 2, 4},
	0xCD: {mCMP, "CMP", ModeAbsolute, 3, 4},
	0xDD: {mCMP, "CMP", ModeAbsoluteX, 3, 4},
	0xD9: {mCMP, "CMP", ModeAbsoluteY, 3, 4},
	0xC1: {mCMP, "CMP", ModeIndirectX, 2, 6},
	0xD1: {mCMP, "CMP", ModeIndirectY, 2, 5},

	0xE0: {mCPX, "CPX", ModeImmediate, 2, 2},
	0xE4: {mCPX, "CPX", ModeZeroPage, 2, 3},
	0xEC: {mCPX, "CPX", ModeAbsolute, 3, 4},

	0xC0: {mCPY, "CPY", ModeImmediate, 2, 2},
	0xC4: {mCPY, "CPY", ModeZeroPage, 2, 3},
	0xCC: {mCPY, "CPY", ModeAbsolute, 3, 4},

	0xC6: {mDEC, "DEC", ModeZeroPage, 2, 5},
	0xD6: {mDEC, "DEC", ModeZeroPageX, 2, 6},
	0xCE: {mDEC, "DEC", ModeAbsolute, 3, 6},
	0xDE: {mDEC, "DEC", ModeAbsoluteX, 3, 7},

	0xCA: {mDEX, "DEX", ModeImplicit, 1, 2},
	0x88: {mDEY, "DEY", ModeImplicit, 1, 2},

	0x49: {mEOR, "EOR", ModeImmediate, 2, 2},
	0x45: {mEOR, "EOR", ModeZeroPage, 2, 3},
	0x55: {mEOR, "EOR", ModeZeroPageX, 2, 4},
	0x4D: {mEOR, "EOR", ModeAbsolute, 3, 4},
	0x5D: {mEOR, "EOR", ModeAbsoluteX, 3, 4},
	0x59: {mEOR, "EOR", ModeAbsoluteY, 3, 4},
	0x41: {mEOR, "EOR", ModeIndirectX, 2, 6},
	0x51: {mEOR, "EOR", ModeIndirectY, 2, 5},

	0xE6: {mINC, "INC", ModeZeroPage, 2, 5},
	0xF6: {mINC, "INC", ModeZeroPageX, 2, 6},
	0xEE: {mINC, "INC", ModeAbsolute, 3, 6},
	0xFE: {mINC, "INC", ModeAbsoluteX, 3, 7},

	0xE8: {mINX, "INX", ModeImplicit, 1, 2},
	0xC8: {mINY, "INY", ModeImplicit, 1, 2},

	0x4C: {mJMP, "JMP", ModeAbsolute, 3, 3},
	0x6C: {mJMP, "JMP", ModeIndirect, 3, 5},
	0x20: {mJSR, "JSR", ModeAbsolute, 3, 6},

	0xA9: {mLDA, "LDA", ModeImmediate, 2, 2},
	0xA5: {mLDA, "LDA", ModeZeroPage, 2, 3},
	0xB5: {mLDA, "LDA", ModeZeroPageX, 2, 4},
	0xAD: {mLDA, "LDA", ModeAbsolute, 3, 4},
	0xBD: {mLDA, "LDA", ModeAbsoluteX, 3, 4},
	0xB9: {mLDA, "LDA", ModeAbsoluteY, 3, 4},
	0xA1: {mLDA, "LDA", ModeIndirectX, 2, 6},
	0xB1: {mLDA, "LDA", ModeIndirectY, 2, 5},

	0xA2: {mLDX, "LDX", ModeImmediate, 2, 2},
	0xA6: {mLDX, "LDX", ModeZeroPage, 2, 3},
	0xB6: {mLDX, "LDX", ModeZeroPageY, 2, 4},
	0xAE: {mLDX, "LDX", ModeAbsolute, 3, 4},
	0xBE: {mLDX, "LDX", ModeAbsoluteY, 3, 4},

	0xA0: {mLDY, "LDY", ModeImmediate, 2, 2},
	0xA4: {mLDY, "LDY", ModeZeroPage, 2, 3},
	0xB4: {mLDY, "LDY", ModeZeroPageX, 2, 4},
	0xAC: {mLDY, "LDY", ModeAbsolute, 3, 4},
	0xBC: {mLDY, "LDY", ModeAbsoluteX, 3, 4},

	0x4A: {mLSR, "LSR", ModeAccumulator, 1, 2},
	0x46: {mLSR, "LSR", ModeZeroPage, 2, 5},
	0x56: {mLSR, "LSR", ModeZeroPageX, 2, 6},
	0x4E: {mLSR, "LSR", ModeAbsolute, 3, 6},
	0x5E: {mLSR, "LSR", ModeAbsoluteX, 3, 7},

	0xEA: {mNOP, "NOP", ModeImplicit, 1, 2},

	0x09: {mORA, "ORA", ModeImmediate, 2, 2},
	0x05: {mORA, "ORA", ModeZeroPage, 2, 3},
	0x15: {mORA, "ORA", ModeZeroPageX, 2, 4},
	0x0D: {mORA, "ORA", ModeAbsolute, 3, 4},
	0x1D: {mORA, "ORA", ModeAbsoluteX, 3, 4},
	0x19: {mORA, "ORA", ModeAbsoluteY, 3, 4},
	0x01: {mORA, "ORA", ModeIndirectX, 2, 6},
	0x11: {mORA, "ORA", ModeIndirectY, 2, 5},

	0x48: {mPHA, "PHA", ModeImplicit, 1, 3},
	0x08: {mPHP, "PHP", ModeImplicit, 1, 3},
	0x68: {mPLA, "PLA", ModeImplicit, 1, 4},
	0x28: {mPLP, "PLP", ModeImplicit, 1, 4},

	0x2A: {mROL, "ROL", ModeAccumulator, 1, 2},
	0x26: {mROL, "ROL", ModeZeroPage, 2, 5},
	0x36: {mROL, "ROL", ModeZeroPageX, 2, 6},
	0x2E: {mROL, "ROL", ModeAbsolute, 3, 6},
	0x3E: {mROL, "ROL", ModeAbsoluteX, 3, 7},

	0x6A: {mROR, "ROR", ModeAccumulator, 1, 2},
	0x66: {mROR, "ROR", ModeZeroPage, 2, 5},
	0x76: {mROR, "ROR", ModeZeroPageX, 2, 6},
	0x6E: {mROR, "ROR", ModeAbsolute, 3, 6},
	0x7E: {mROR, "ROR", ModeAbsoluteX, 3, 7},

	0x40: {mRTI, "RTI", ModeImplicit, 1, 6},
	0x60: {mRTS, "RTS", ModeImplicit, 1, 6},

	0xE9: {mSBC, "SBC", ModeImmediate, 2, 2},
	0xE5: {mSBC, "SBC", ModeZeroPage, 2, 3},
	0xF5: {mSBC, "SBC", ModeZeroPageX, 2, 4},
	0xED: {mSBC, "SBC", ModeAbsolute, 3, 4},
	0xFD: {mSBC, "SBC", ModeAbsoluteX, 3, 4},
	0xF9: {mSBC, "SBC", ModeAbsoluteY, 3, 4},
	0xE1: {mSBC, "SBC", ModeIndirectX, 2, 6},
	0xF1: {mSBC, "SBC", ModeIndirectY, 2, 5},

	0x38: {mSEC, "SEC", ModeImplicit, 1, 2},
	0xF8: {mSED, "SED", ModeImplicit, 1, 2},
	0x78: {mSEI, "SEI", ModeImplicit, 1, 2},

	0x85: {mSTA, "STA", ModeZeroPage, 2, 3},
	0x95: {mSTA, "STA", ModeZeroPageX, 2, 4},
	0x8D: {mSTA, "STA", ModeAbsolute, 3, 4},
	0x9D: {mSTA, "STA", ModeAbsoluteX, 3, 5},
	0x99: {mSTA, "STA", ModeAbsoluteY, 3, 5},
	0x81: {mSTA, "STA", ModeIndirectX, 2, 6},
	0x91: {mSTA, "STA", ModeIndirectY, 2, 6},

	0x86: {mSTX, "STX", ModeZeroPage, 2, 3},
	0x96: {mSTX, "STX", ModeZeroPageY, 2, 4},
	0x8E: {mSTX, "STX", ModeAbsolute, 3, 4},

	0x84: {mSTY, "STY", ModeZeroPage, 2, 3},
	0x94: {mSTY, "STY", ModeZeroPageX, 2, 4},
	0x8C: {mSTY, "STY", ModeAbsolute, 3, 4},

	0xAA: {mTAX, "TAX", ModeImplicit, 1, 2},
	0xA8: {mTAY, "TAY", ModeImplicit, 1, 2},
	0xBA: {mTSX, "TSX", ModeImplicit, 1, 2},
	0x8A: {mTXA, "TXA", ModeImplicit, 1, 2},
	0x9A: {mTXS, "TXS", ModeImplicit, 1, 2},
	0x98: {mTYA, "TYA", ModeImplicit, 1, 2},
}
