// internal/status/encode.go
package status

import "strconv"

// Encode converts a Snapshot into a full status block, field -> payload.
// Layout is contract-locked.
// No IO. No side effects.
func Encode(s Snapshot, device string) map[string]string {
	return map[string]string{
		FieldHealth:         HealthName(s.Health),
		FieldLastErrorCode:  strconv.FormatUint(uint64(s.LastErrorCode), 10),
		FieldSecondsInError: strconv.FormatUint(uint64(s.SecondsInError), 10),
		FieldDevice:         device,
	}
}

// Changed lists the fields that differ between two snapshots, in block order.
func Changed(prev, next Snapshot) []string {
	var out []string
	if prev.Health != next.Health {
		out = append(out, FieldHealth)
	}
	if prev.LastErrorCode != next.LastErrorCode {
		out = append(out, FieldLastErrorCode)
	}
	if prev.SecondsInError != next.SecondsInError {
		out = append(out, FieldSecondsInError)
	}
	return out
}
