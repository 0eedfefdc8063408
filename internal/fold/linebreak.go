package fold

import (
	"strings"
	"unicode/utf8"
)

// Japanese line composition rules (kinsoku shori): some characters
// must not begin a line, others must not end one. Run-in pulls
// characters of the first kind up from the next fragment; run-out
// pushes characters of the second kind down to it.

// noStartChars must not begin a line: closing punctuation, small kana
// and the long vowel mark, plus their ASCII counterparts.
const noStartChars = ",.;:!?)]}" +
	"、。，．・：；！？）］｝〕〉》」』】" +
	"ーぁぃぅぇぉっゃゅょゎァィゥェォッャュョヮヵヶ々…‥"

// noEndChars must not end a line: opening brackets.
const noEndChars = "([{（［｛〔〈《「『【"

func isNoStart(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return strings.ContainsRune(noStartChars, r)
}

func isNoEnd(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return strings.ContainsRune(noEndChars, r)
}

// pullRunin pulls line-start-prohibited characters from the head of
// rest (s[i:]) onto the current fragment, letting it exceed its width
// by at most Runin columns. Escape sequences between pulled characters
// travel with them.
func (f *Folder) pullRunin(s string, i int, body []byte, st *sgrState) (int, []byte) {
	over := 0
	for i < len(s) {
		j := i
		for j < len(s) && s[j] == '\x1b' {
			j = skipSequence(s, j)
		}
		if j >= len(s) {
			break
		}
		cluster, size := firstCluster(s[j:])
		cw := f.clusterWidth(cluster)
		if !isNoStart(cluster) || over+cw > f.opts.Runin {
			break
		}
		for k := i; k < j; {
			end := skipSequence(s, k)
			st.apply(s[k:end])
			k = end
		}
		body = append(body, s[i:j+size]...)
		over += cw
		i = j + size
	}
	return i, body
}
