package domain

import (
	"strconv"
	"strings"
)

// LocalIDPrefix marks ids allocated by the editor for tasks the backend has
// not stored yet.
const LocalIDPrefix = "new-"

// IsLocalID reports whether id was allocated locally.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}

// LocalID formats the n-th local id of a session.
func LocalID(n int) string {
	return LocalIDPrefix + strconv.Itoa(n)
}
