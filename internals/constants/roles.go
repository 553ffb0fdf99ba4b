package constants

import "strings"

// position_type akun
const (
	PositionAtasan        = "ATASAN"
	PositionAdmin         = "ADMIN"
	PositionTopManagement = "TOP MANAGEMENT"
	PositionStaff         = "STAFF"
)

var PositionTypes = []string{
	PositionAtasan,
	PositionAdmin,
	PositionTopManagement,
	PositionStaff,
}

// NormalizePositionType: "top management" → "TOP MANAGEMENT"; tidak dikenal → "", false.
func NormalizePositionType(s string) (string, bool) {
	v := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	for _, p := range PositionTypes {
		if p == v {
			return p, true
		}
	}
	return "", false
}
