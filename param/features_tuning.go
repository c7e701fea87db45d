//go:build !notuning

package param

const hasTuning = true
