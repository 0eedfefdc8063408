package fold

import "strings"

// tabStyles maps --tabstyle names to head and space characters. The
// head marks where the tab was, the spaces fill up to the next stop.
var tabStyles = map[string][2]string{
	"space":  {" ", " "},
	"dot":    {".", "."},
	"symbol": {"␉", "␠"},
	"shade":  {"▒", "░"},
	"needle": {"├", "─"},
	"dash":   {"├", "┄"},
}

// TabStyles lists the known --tabstyle names.
func TabStyles() []string {
	names := make([]string, 0, len(tabStyles))
	for name := range tabStyles {
		names = append(names, name)
	}
	return names
}

// expandTabs replaces each tab with the head character followed by
// space characters up to the next tab stop. Columns are visual:
// escape sequences do not advance the position.
func (f *Folder) expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	col := 0
	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			end := skipSequence(s, i)
			b.WriteString(s[i:end])
			i = end
			continue
		}
		if s[i] == '\t' {
			n := f.opts.Tabstop - col%f.opts.Tabstop
			b.WriteString(f.tabhead)
			for k := 1; k < n; k++ {
				b.WriteString(f.tabspace)
			}
			col += n
			i++
			continue
		}
		cluster, size := firstCluster(s[i:])
		b.WriteString(cluster)
		col += f.clusterWidth(cluster)
		i += size
	}
	return b.String()
}
