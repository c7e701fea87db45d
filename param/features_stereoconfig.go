//go:build !nostereoconfig

package param

const hasStereoConfig = true
