package widgets

import "strconv"

// Kind names the native component a descriptor stands for.
type Kind string

const (
	KindView       Kind = "View"
	KindNativeView Kind = "ViewNativeComponent"
	KindText       Kind = "Text"
	KindNativeText Kind = "TextNativeComponent"
	KindTextInput  Kind = "TextInput"
	KindSwitch     Kind = "Switch"
	KindImage      Kind = "Image"
	KindDiv        Kind = "div"
	KindSpan       Kind = "span"
)

// Key is the stable identity of a descriptor: the label of the factory entry
// that produced it plus its index in the generated sequence.
type Key struct {
	Type  string
	Index int
}

func (k Key) String() string {
	return k.Type + "-" + strconv.Itoa(k.Index)
}

// Widget is implemented by every descriptor.
type Widget interface {
	// Key returns the descriptor's identity across commits.
	Key() Key
	// Kind returns the native component the descriptor inflates to.
	Kind() Kind
}
