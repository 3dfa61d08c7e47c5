package utils

// HasAllFields reports whether every name in required is a key of payload.
// Values are not inspected, so zero values such as 0, false or "" still count
// as present. An empty required list is always satisfied.
func HasAllFields[V any](payload map[string]V, required []string) bool {
	for _, field := range required {
		if _, ok := payload[field]; !ok {
			return false
		}
	}
	return true
}

// MissingFields returns the names from required that are not keys of payload,
// in the order they were requested.
func MissingFields[V any](payload map[string]V, required []string) []string {
	var missing []string
	for _, field := range required {
		if _, ok := payload[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}
