package dataset

// MaintainerCodes maps maintainer usernames to dense integer codes assigned
// in first-seen order across the whole dataset. The codes replace usernames
// in the written table, so identities stay comparable across rows without
// publishing the raw usernames.
type MaintainerCodes struct {
	codes map[string]int
}

// BuildMaintainerCodes scans rows in order (and each row's maintainer list
// in order), assigning the next unused code to every newly seen username.
func BuildMaintainerCodes(rows []Row) *MaintainerCodes {
	t := &MaintainerCodes{codes: make(map[string]int)}
	for _, row := range rows {
		for _, name := range row.Maintainers {
			if _, ok := t.codes[name]; !ok {
				t.codes[name] = len(t.codes)
			}
		}
	}
	return t
}

// Code returns the code for a username.
func (t *MaintainerCodes) Code(name string) (int, bool) {
	code, ok := t.codes[name]
	return code, ok
}

// Codes maps a username list to its code list, preserving order. Unknown
// usernames are skipped; with a table built over the same rows there are
// none.
func (t *MaintainerCodes) Codes(names []string) []int {
	out := make([]int, 0, len(names))
	for _, name := range names {
		if code, ok := t.codes[name]; ok {
			out = append(out, code)
		}
	}
	return out
}

// Len returns the number of distinct maintainers seen.
func (t *MaintainerCodes) Len() int { return len(t.codes) }
