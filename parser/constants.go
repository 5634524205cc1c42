package parser

import "github.com/lbrn/x64asm/token"

// directives maps every directive keyword spelling (lower-case, with the
// leading '.') to its token kind.
var directives = map[string]token.Type{
	".org":     token.DOT_ORG,
	".data":    token.DOT_DATA,
	".text":    token.DOT_TEXT,
	".bss":     token.DOT_BSS,
	".end":     token.DOT_END,
	".equ":     token.DOT_EQU,
	".byte":    token.DOT_BYTE,
	".word":    token.DOT_WORD,
	".long":    token.DOT_LONG,
	".quad":    token.DOT_QUAD,
	".ascii":   token.DOT_ASCII,
	".fill":    token.DOT_FILL,
	".comm":    token.DOT_COMM,
	".driver":  token.DOT_DRIVER,
	".handler": token.DOT_HANDLER,
}

// suffixWidth maps a size suffix character to its width in bytes.
var suffixWidth = map[byte]int{
	'b': 1,
	'w': 2,
	'l': 4,
	'q': 8,
}

// mnemonicFamilies maps every base mnemonic (lower-case, suffix already
// stripped by the lexer's longest-match rule) to the grammar-level family
// it belongs to. The concrete base-mnemonic sets are chosen to mirror
// familiar AT&T-dialect instructions. See DESIGN.md.
var mnemonicFamilies = map[string]token.Type{
	// INSN_0: no operands, full b/w/l/q suffix, class 1 (data movement).
	"pushf": token.INSN_0,
	"popf":  token.INSN_0,

	// INSN_0_WQ: no operands, w/l/q suffix only, class 1.
	"cwd": token.INSN_0_WQ,

	// INSN_0_NOSUFF: no operands, no suffix. Dispatch by mnemonic:
	// ret -> class 5, hlt/nop -> class 0, clX/stX -> class 4.
	"ret": token.INSN_0_NOSUFF,
	"hlt": token.INSN_0_NOSUFF,
	"nop": token.INSN_0_NOSUFF,
	"clc": token.INSN_0_NOSUFF,
	"cld": token.INSN_0_NOSUFF,
	"cli": token.INSN_0_NOSUFF,
	"stc": token.INSN_0_NOSUFF,
	"std": token.INSN_0_NOSUFF,
	"sti": token.INSN_0_NOSUFF,

	// INSN_1_S: single raw-INTEGER operand, class 0.
	"int": token.INSN_1_S,

	// INSN_LEA: FormatE(size), FormatE(size), class 1.
	"lea": token.INSN_LEA,

	// INSN_1_E: single FormatE(size) operand. push/pop -> class 1,
	// neg/not -> class 2.
	"push": token.INSN_1_E,
	"pop":  token.INSN_1_E,
	"neg":  token.INSN_1_E,
	"not":  token.INSN_1_E,

	// INSN_SHIFT: [FormatK ','] FormatG, class 3.
	"shl": token.INSN_SHIFT,
	"shr": token.INSN_SHIFT,
	"sar": token.INSN_SHIFT,
	"rol": token.INSN_SHIFT,
	"ror": token.INSN_SHIFT,

	// INSN_1_M: FormatM(size), no suffix, class 6 (conditional jumps).
	"je":  token.INSN_1_M,
	"jne": token.INSN_1_M,
	"jl":  token.INSN_1_M,
	"jle": token.INSN_1_M,
	"jg":  token.INSN_1_M,
	"jge": token.INSN_1_M,
	"jb":  token.INSN_1_M,
	"jbe": token.INSN_1_M,
	"ja":  token.INSN_1_M,
	"jae": token.INSN_1_M,

	// INSN_JC: '*' FormatG | FormatM(size), suffix, class 5.
	"jmp":  token.INSN_JC,
	"call": token.INSN_JC,

	// INSN_B_E: FormatB(size) ',' FormatE(size), suffix.
	// mov -> class 1, everything else -> class 2.
	"mov":  token.INSN_B_E,
	"add":  token.INSN_B_E,
	"sub":  token.INSN_B_E,
	"adc":  token.INSN_B_E,
	"sbb":  token.INSN_B_E,
	"cmp":  token.INSN_B_E,
	"test": token.INSN_B_E,
	"and":  token.INSN_B_E,
	"or":   token.INSN_B_E,
	"xor":  token.INSN_B_E,

	// INSN_EXT: FormatE(src) ',' FormatG, two-char suffix, class 1.
	"movz": token.INSN_EXT,
	"movs": token.INSN_EXT,

	// INSN_IN / INSN_OUT: fixed-register port I/O, class 7.
	"in":  token.INSN_IN,
	"out": token.INSN_OUT,

	// INSN_IO_S: no operands, two-char suffix rejecting q, class 7.
	"ins":  token.INSN_IO_S,
	"outs": token.INSN_IO_S,

	// IRET: driver epilogue, class 5.
	"iret": token.IRET,
}

// insn0NoSuffClass determines the structural class for an INSN_0_NOSUFF
// mnemonic.
func insn0NoSuffClass(base string) int {
	switch base {
	case "ret":
		return 5
	case "hlt", "nop":
		return 0
	default: // clc, cld, cli, stc, std, sti
		return 4
	}
}
