//go:build release

package display

const flavour = "RELEASE"
