//go:build nosidechain

package param

const hasSidechain = false
