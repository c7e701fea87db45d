//go:build !nohq

package param

const hasHQ = true
