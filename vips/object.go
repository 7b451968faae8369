package vips

// #include "vips.h"
import "C"
import (
	"fmt"
	"strings"
	"unsafe"
)

// Object is a handle on a libvips object, giving generic access to its
// properties by name. Values are boxed and unboxed through GValue, so the
// Go types accepted and returned are those of the value bridge: int, float64,
// bool, string, enum nicknames, []float64, []int, *Image, []*Image, []byte
// and *Object.
type Object struct {
	object *C.VipsObject
	owned  bool
}

// newObject wraps object. An owned handle holds one reference, dropped by
// Close; a borrowed one never unrefs.
func newObject(object *C.VipsObject, owned bool) *Object {
	return &Object{object: object, owned: owned}
}

// TypeOf returns the type of the named property, or TypeNone if the object
// has no such property.
func (o *Object) TypeOf(name string) GType {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return GType(C.vipscall_object_get_typeof(o.object, cName))
}

// Get reads the named property
func (o *Object) Get(name string) (any, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	v := newGValue()
	defer v.Close()

	if C.vipscall_object_get(o.object, cName, v.value) != 0 {
		return nil, fmt.Errorf("get %s: %s", name, takeError())
	}
	return v.Get()
}

// Set writes the named property, converting value to the property's type
func (o *Object) Set(name string, value any) error {
	t := o.TypeOf(name)
	if t == TypeNone {
		return fmt.Errorf("no property named %q", name)
	}

	v := newGValue()
	defer v.Close()

	if err := v.Set(t, value); err != nil {
		return err
	}

	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	if C.vipscall_object_set(o.object, cName, v.value) != 0 {
		return fmt.Errorf("%s", strings.TrimSpace(takeError()))
	}
	return nil
}

// SetFromString sets properties from a libvips option string such as
// "[strip,Q=90]"
func (o *Object) SetFromString(options string) error {
	cOptions := C.CString(options)
	defer C.free(unsafe.Pointer(cOptions))

	if C.vips_object_set_from_string(o.object, cOptions) != 0 {
		return fmt.Errorf("%s", takeError())
	}
	return nil
}

// Close drops the reference held by an owned handle. It is safe to call
// more than once.
func (o *Object) Close() {
	if o.owned && o.object != nil {
		C.vipscall_unref(C.gpointer(unsafe.Pointer(o.object)))
	}
	o.object = nil
}
