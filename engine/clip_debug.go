//go:build slewdebug

package engine

// debugClip hard-clips the output to [-1,1] as a safety net in debug builds.
const debugClip = true
