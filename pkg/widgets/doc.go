// Package widgets defines the element descriptors memlab renders.
//
// Descriptors are plain values, the same way Drift widgets are: they hold
// configuration only and carry no native resources. The render host inflates
// each descriptor into a node that owns the backing allocations, and it uses
// the descriptor's Key to reuse nodes across commits.
//
// The set mirrors the native components a mobile app reaches for first:
//
//   - [View]: a plain styled container
//   - [Text]: a single run of styled text
//   - [TextInput]: a read-only native text field with placeholder
//   - [Switch]: a disabled native toggle
//   - [Image]: a bitmap drawn from an [Asset]
//   - [Div] and [Span]: strict-DOM style container and text
package widgets
