//go:build !nosidechain

package param

const hasSidechain = true
