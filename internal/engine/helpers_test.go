package engine

// tagFor builds valid tag text for a 1-based line of the snapshot.
func tagFor(lines []string, index int) string {
	return Tag{Index: index, Fingerprint: Fingerprint(lines[index-1])}.String()
}
