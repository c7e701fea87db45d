//go:build notuning

package param

const hasTuning = false
