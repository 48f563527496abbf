package pdf

// PersonInterval is one person's presence on one shift, in minutes after
// Adelaide midnight.
type PersonInterval struct {
	Name  string
	Start int
	End   int
}

// intersects uses half-open semantics: back-to-back shifts (one ending
// exactly when the next begins) do not conflict.
func intersects(a, b PersonInterval) bool {
	return a.Start < b.End && a.End > b.Start
}

// DoubleBooked returns the names holding two or more intersecting
// intervals. Grouping is by the literal name string, matching the printed
// run sheet where the warning lands; two distinct people sharing a name
// are indistinguishable here.
func DoubleBooked(intervals []PersonInterval) map[string]struct{} {
	byName := make(map[string][]PersonInterval)
	for _, iv := range intervals {
		byName[iv.Name] = append(byName[iv.Name], iv)
	}

	flagged := make(map[string]struct{})
	for name, list := range byName {
		if len(list) < 2 {
			continue
		}
	pairs:
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				if intersects(list[i], list[j]) {
					flagged[name] = struct{}{}
					break pairs
				}
			}
		}
	}
	return flagged
}
