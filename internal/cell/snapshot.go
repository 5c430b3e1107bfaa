package cell

// Snapshot is a plain [Field] value.
type Snapshot struct {
	Val    int  `json:"value"`
	Open   bool `json:"uncovered"`
	Marked bool `json:"marked_as_safe"`
}

// [Snapshot] implements [Field]
func (s Snapshot) Value() int {
	return s.Val
}

func (s Snapshot) Uncovered() bool {
	return s.Open
}

func (s Snapshot) MarkedAsSafe() bool {
	return s.Marked
}
