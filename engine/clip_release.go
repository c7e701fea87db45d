//go:build !slewdebug

package engine

const debugClip = false
