package domain

import "strings"

const (
	DisplayPrefix = "cf"
	StoragePrefix = "cl"
	pairSep       = "-"
)

func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ToStorage converts a display node name (cf3) to its storage form (cl3).
// Only the first occurrence of the display prefix is replaced.
func ToStorage(display string) string {
	return strings.Replace(NormalizeName(display), DisplayPrefix, StoragePrefix, 1)
}

func IsDisplayName(s string) bool {
	return strings.HasPrefix(s, DisplayPrefix)
}

func PairKey(a, b string) string {
	return a + pairSep + b
}

// SplitPair splits "a-b" into its two non-empty halves.
func SplitPair(key string) (string, string, bool) {
	parts := strings.Split(NormalizeName(key), pairSep)
	if len(parts) != 2 {
		return "", "", false
	}
	a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}
