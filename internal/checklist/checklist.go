// Package checklist compares detected equipment labels against the
// required-items list for a zone.
package checklist

// Evaluate returns the required items absent from detected, preserving
// the order of required. It is pure: same inputs, same output.
func Evaluate(required []string, detected []string) []string {
	seen := make(map[string]struct{}, len(detected))
	for _, label := range detected {
		seen[label] = struct{}{}
	}

	missing := make([]string, 0, len(required))
	for _, item := range required {
		if _, ok := seen[item]; !ok {
			missing = append(missing, item)
		}
	}
	return missing
}

// Contains reports whether item appears in items.
func Contains(items []string, item string) bool {
	for _, it := range items {
		if it == item {
			return true
		}
	}
	return false
}
