package core

import "strings"

// AxisLock is a set of axes the physics collaborator must not move a body along.
type AxisLock uint8

const (
	LockTranslationX AxisLock = 1 << iota
	LockTranslationY
	LockTranslationZ
	LockRotationX
	LockRotationY
	LockRotationZ
)

// Common lock policies.
const (
	LockNone           AxisLock = 0
	LockTranslation             = LockTranslationX | LockTranslationY | LockTranslationZ
	LockRotation                = LockRotationX | LockRotationY | LockRotationZ
	LockAll                     = LockTranslation | LockRotation
	LockAllButVertical          = LockAll &^ LockTranslationY
)

// Has reports whether every axis in other is locked.
func (a AxisLock) Has(other AxisLock) bool {
	return a&other == other
}

// With returns a copy with the given axes locked.
func (a AxisLock) With(other AxisLock) AxisLock {
	return a | other
}

// Without returns a copy with the given axes unlocked.
func (a AxisLock) Without(other AxisLock) AxisLock {
	return a &^ other
}

func (a AxisLock) String() string {
	if a == LockNone {
		return "none"
	}
	names := []struct {
		bit  AxisLock
		name string
	}{
		{LockTranslationX, "tx"},
		{LockTranslationY, "ty"},
		{LockTranslationZ, "tz"},
		{LockRotationX, "rx"},
		{LockRotationY, "ry"},
		{LockRotationZ, "rz"},
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if a.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
