package studios

// EqualLabelSets reports whether two label-identifier collections carry the
// same set of identifiers. Order and duplicates are ignored. Used only as a
// change-detection gate for cascade propagation, never to assign labels.
func EqualLabelSets(a, b []string) bool {
	as := make(map[string]bool, len(a))
	for _, id := range a {
		as[id] = true
	}
	bs := make(map[string]bool, len(b))
	for _, id := range b {
		bs[id] = true
	}
	if len(as) != len(bs) {
		return false
	}
	for id := range as {
		if !bs[id] {
			return false
		}
	}
	return true
}

// DedupeLabelIDs removes duplicate identifiers, preserving first-seen order.
func DedupeLabelIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
