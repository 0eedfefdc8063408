package fold

import "strings"

const resetSeq = "\x1b[0m"

// skipSequence returns the index just past the escape sequence
// starting at s[i] (s[i] must be ESC). CSI sequences end at their
// final byte, OSC accepts both BEL and ST terminators, and the DCS,
// SOS, PM and APC string commands run to ST. An unterminated sequence
// extends to the end of s.
func skipSequence(s string, i int) int {
	i++ // ESC
	if i >= len(s) {
		return i
	}
	switch s[i] {
	case '[':
		for i++; i < len(s); i++ {
			if b := s[i]; b >= 0x40 && b <= 0x7e {
				return i + 1
			}
		}
		return i
	case ']':
		for i++; i < len(s); i++ {
			if s[i] == '\x07' {
				return i + 1
			}
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	case 'P', 'X', '^', '_':
		for i++; i < len(s); i++ {
			if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '\\' {
				return i + 2
			}
		}
		return i
	case '(', ')':
		// Character set designation takes one more byte.
		if i+1 < len(s) {
			return i + 2
		}
		return i + 1
	default:
		return i + 1
	}
}

// isSGR reports whether seq selects graphic rendition (CSI ... m).
func isSGR(seq string) bool {
	return strings.HasPrefix(seq, "\x1b[") && strings.HasSuffix(seq, "m")
}

// isEraseLine reports whether seq is Erase in Line (CSI ... K).
func isEraseLine(seq string) bool {
	return strings.HasPrefix(seq, "\x1b[") && strings.HasSuffix(seq, "K")
}

func isOSC(seq string) bool {
	return strings.HasPrefix(seq, "\x1b]")
}

// resetsSGR reports whether an SGR sequence clears all attributes,
// which covers the ESC[m, ESC[0m and ESC[0;0m spellings.
func resetsSGR(seq string) bool {
	for _, p := range strings.Split(seq[2:len(seq)-1], ";") {
		if p != "" && strings.TrimLeft(p, "0") != "" {
			return false
		}
	}
	return true
}

// sgrState accumulates the SGR sequences in effect at the current scan
// position so that fragments can be made self-contained.
type sgrState struct {
	seqs []string
}

// apply folds seq into the state. Non-SGR sequences are ignored; a
// reset clears everything accumulated so far.
func (st *sgrState) apply(seq string) {
	if !isSGR(seq) {
		return
	}
	if resetsSGR(seq) {
		st.seqs = st.seqs[:0]
		return
	}
	st.seqs = append(st.seqs, seq)
}

func (st *sgrState) active() bool { return len(st.seqs) > 0 }

// prefix returns the sequences that reestablish the current state at
// the start of a new fragment.
func (st *sgrState) prefix() string {
	if len(st.seqs) == 0 {
		return ""
	}
	return strings.Join(st.seqs, "")
}

func (st *sgrState) snapshot() []string {
	if len(st.seqs) == 0 {
		return nil
	}
	return append([]string(nil), st.seqs...)
}

func (st *sgrState) restore(snap []string) {
	st.seqs = append(st.seqs[:0], snap...)
}
