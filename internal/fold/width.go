package fold

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
)

// firstCluster returns the leading grapheme cluster of s and its byte
// length.
func firstCluster(s string) (string, int) {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return cluster, len(cluster)
}

// nextCluster returns the first text cluster of s, looking past any
// escape sequences. ok is false when s holds no text at all.
func nextCluster(s string) (cluster string, ok bool) {
	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			i = skipSequence(s, i)
			continue
		}
		c, _ := firstCluster(s[i:])
		return c, true
	}
	return "", false
}

// clusterWidth returns the column width of one grapheme cluster under
// the folder's East Asian condition. An unexpanded tab takes one
// column; other control characters take none.
func (f *Folder) clusterWidth(cluster string) int {
	if cluster == "\t" {
		return 1
	}
	return f.cond.StringWidth(cluster)
}

// Width returns the visual width of s. Escape sequences occupy no
// columns.
func (f *Folder) Width(s string) int {
	if !f.eastAsian && !strings.ContainsRune(s, '\t') {
		return ansi.StringWidth(s)
	}
	w := 0
	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			i = skipSequence(s, i)
			continue
		}
		cluster, size := firstCluster(s[i:])
		w += f.clusterWidth(cluster)
		i += size
	}
	return w
}
