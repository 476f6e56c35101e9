package chem

import "strconv"

// Names assigns each atom a unique display name: its element symbol, plus a
// 1-based positional suffix when the element occurs more than once.
// Synthetic atoms are named after their role.
func Names(atoms []Atom) map[ID]string {
	base := func(a Atom) string {
		if a.IsSynthetic() {
			return a.Role.String()
		}
		return a.Element
	}

	counts := make(map[string]int)
	for _, a := range atoms {
		counts[base(a)]++
	}

	seen := make(map[string]int)
	names := make(map[ID]string, len(atoms))
	for _, a := range atoms {
		b := base(a)
		if counts[b] == 1 {
			names[a.ID] = b
			continue
		}
		seen[b]++
		names[a.ID] = b + strconv.Itoa(seen[b])
	}
	return names
}
