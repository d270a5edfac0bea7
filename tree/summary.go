package tree

// Summary aggregates what the outline contains: how many nodes of which
// kinds and labels, how often each dictionary key appears, and how much
// decoded stream data the document carries.
type Summary struct {
	NodeCount    int
	NodesByKind  map[string]int
	NodesByLabel map[string]int
	KeyFrequency map[string]int
	StreamCount  int
	StreamBytes  int64
	SymlinkCount int
	WarningCount int
}

// Summary walks the finished tree and tallies it.
func (o *Outline) Summary() Summary {
	s := Summary{
		NodesByKind:  make(map[string]int),
		NodesByLabel: make(map[string]int),
		KeyFrequency: make(map[string]int),
		SymlinkCount: len(o.symlinks),
		WarningCount: len(o.warnings),
	}
	for _, n := range o.LevelOrder() {
		s.NodeCount++
		s.NodesByKind[n.kind]++
		s.NodesByLabel[n.label]++
		if d := dictOf(n.obj); d != nil {
			for _, k := range d.SortedKeys() {
				s.KeyFrequency["/"+k]++
			}
		}
		if n.streamLength > 0 {
			s.StreamCount++
			s.StreamBytes += int64(n.streamLength)
		}
	}
	return s
}
