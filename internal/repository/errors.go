// Package repository implements MySQL-backed persistence for users,
// restaurants and reservations. Lookups scoped to an owner deliberately
// collapse "row does not exist" and "row belongs to someone else" into a
// single sql.ErrNoRows so that callers cannot distinguish the two cases;
// handlers translate that into one 404 response.
package repository

import "strings"

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062). The driver does not expose a typed error for this, so
// the code is matched in the message, as ugly as that is.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}
