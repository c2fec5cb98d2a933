//go:build isam_strict

package btree

const strictByDefault = true
