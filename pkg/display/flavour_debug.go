//go:build !release

package display

const flavour = "DEBUG"
