package vips

// #include "vips.h"
import "C"
import (
	"errors"
	"fmt"
	"unsafe"
)

var errImageClosed = errors.New("vips: image is closed")

// TypeOf returns the type of the named header or metadata field, or
// TypeNone if the image has no such field
func (r *Image) TypeOf(name string) GType {
	if r.image == nil {
		return TypeNone
	}
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	t := GType(C.vips_image_get_typeof(r.image, cName))
	if t == TypeNone {
		// some versions set an error on a miss
		C.vips_error_clear()
	}
	return t
}

// Get reads a header or metadata field. Enums come back as their nickname.
func (r *Image) Get(name string) (any, error) {
	if r.image == nil {
		return nil, errImageClosed
	}
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	v := newGValue()
	defer v.Close()

	if C.vips_image_get(r.image, cName, v.value) != 0 {
		return nil, fmt.Errorf("vips: unable to get %s: %s", name, takeError())
	}
	return v.Get()
}

// SetType sets a metadata field to value, stored as type t
func (r *Image) SetType(t GType, name string, value any) error {
	if r.image == nil {
		return withContext(errImageClosed, ErrBind, "", name)
	}
	v := newGValue()
	defer v.Close()

	if err := v.Set(t, value); err != nil {
		return withContext(err, ErrBind, "", name)
	}

	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	C.vips_image_set(r.image, cName, v.value)

	return nil
}

// Set sets a metadata field. An existing field keeps its type, a new one
// takes the type of value: int, float64, string, bool, []byte, []float64,
// []int or *Image.
func (r *Image) Set(name string, value any) error {
	t := r.TypeOf(name)
	if t == TypeNone {
		t = typeOfGoValue(value)
	}
	if t == TypeNone {
		return newError(ErrBind, "", name, fmt.Sprintf("no metadata type for %T", value))
	}
	return r.SetType(t, name, value)
}

// Remove deletes a metadata field, reporting whether it existed
func (r *Image) Remove(name string) bool {
	if r.image == nil {
		return false
	}
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return fromGboolean(C.vips_image_remove(r.image, cName))
}

// Fields lists the names of every header and metadata field
func (r *Image) Fields() []string {
	if r.image == nil {
		return nil
	}
	var n C.int
	fields := C.vipscall_image_get_fields(r.image, &n)
	if fields == nil {
		return nil
	}
	defer C.g_strfreev((**C.gchar)(unsafe.Pointer(fields)))

	names := make([]string, int(n))
	for i, field := range unsafe.Slice(fields, int(n)) {
		names[i] = C.GoString(field)
	}
	return names
}

func typeOfGoValue(value any) GType {
	switch value.(type) {
	case bool:
		return TypeBool
	case int, int32, int64, uint8, uint16, int16, int8:
		return TypeInt
	case float32, float64:
		return TypeDouble
	case string:
		return TypeString
	case []byte:
		return TypeBlob
	case []float64:
		return TypeArrayDouble
	case []int:
		return TypeArrayInt
	case *Image:
		return TypeImage
	}
	return TypeNone
}

func (r *Image) getInt(name string) int {
	v, err := r.Get(name)
	if err != nil {
		return 0
	}
	i, _ := toInt(v)
	return i
}

func (r *Image) getFloat(name string) float64 {
	v, err := r.Get(name)
	if err != nil {
		return 0
	}
	f, _ := toFloat(v)
	return f
}

func (r *Image) getString(name string) string {
	v, err := r.Get(name)
	if err != nil {
		return ""
	}
	s, _ := toString(v)
	return s
}

// Width returns the width in pixels
func (r *Image) Width() int {
	return r.getInt("width")
}

// Height returns the height in pixels
func (r *Image) Height() int {
	return r.getInt("height")
}

// Bands returns the number of bands
func (r *Image) Bands() int {
	return r.getInt("bands")
}

// Format returns the band format
func (r *Image) Format() BandFormat {
	return BandFormat(r.getString("format"))
}

// Interpretation returns the interpretation of the pixel values
func (r *Image) Interpretation() Interpretation {
	return Interpretation(r.getString("interpretation"))
}

// Xres returns the horizontal resolution in pixels per millimetre
func (r *Image) Xres() float64 {
	return r.getFloat("xres")
}

// Yres returns the vertical resolution in pixels per millimetre
func (r *Image) Yres() float64 {
	return r.getFloat("yres")
}

// Xoffset returns the horizontal position of the origin
func (r *Image) Xoffset() int {
	return r.getInt("xoffset")
}

// Yoffset returns the vertical position of the origin
func (r *Image) Yoffset() int {
	return r.getInt("yoffset")
}

// Filename returns the file the image was loaded from, if any
func (r *Image) Filename() string {
	return r.getString("filename")
}

// Scale returns the matrix scale, 1 if unset
func (r *Image) Scale() float64 {
	if r.image == nil {
		return 0
	}
	if r.TypeOf("scale") == TypeNone {
		return 1
	}
	return r.getFloat("scale")
}

// Offset returns the matrix offset, 0 if unset
func (r *Image) Offset() float64 {
	if r.TypeOf("offset") == TypeNone {
		return 0
	}
	return r.getFloat("offset")
}

// HasAlpha reports whether the image has an alpha band
func (r *Image) HasAlpha() bool {
	if r.image == nil {
		return false
	}
	return fromGboolean(C.vips_image_hasalpha(r.image))
}
