package vips

// #include "vips.h"
import "C"
import (
	"fmt"
	"math"
	"reflect"
	"unsafe"
)

// GType identifies a GLib type. Zero means no type.
type GType uint64

// Fundamental GLib types
const (
	TypeNone    GType = 0
	TypeBool    GType = 5 << 2
	TypeInt     GType = 6 << 2
	TypeUint    GType = 7 << 2
	TypeInt64   GType = 10 << 2
	TypeUint64  GType = 11 << 2
	TypeEnum    GType = 12 << 2
	TypeFlags   GType = 13 << 2
	TypeFloat   GType = 14 << 2
	TypeDouble  GType = 15 << 2
	TypeString  GType = 16 << 2
	TypePointer GType = 17 << 2
	TypeBoxed   GType = 18 << 2
	TypeObject  GType = 20 << 2
)

// Types registered by libvips at startup
var (
	TypeImage          GType
	TypeArrayInt       GType
	TypeArrayDouble    GType
	TypeArrayImage     GType
	TypeBlob           GType
	TypeRefString      GType
	TypeBandFormat     GType
	TypeInterpretation GType
)

func initTypes() {
	TypeImage = GType(C.vips_image_get_type())
	TypeArrayInt = GType(C.vips_array_int_get_type())
	TypeArrayDouble = GType(C.vips_array_double_get_type())
	TypeArrayImage = GType(C.vips_array_image_get_type())
	TypeBlob = GType(C.vips_blob_get_type())
	TypeRefString = GType(C.vips_ref_string_get_type())
	TypeBandFormat = GType(C.vips_band_format_get_type())
	TypeInterpretation = GType(C.vips_interpretation_get_type())
}

// TypeFromName looks a GType up by its registered name, e.g. "VipsExtend".
// It returns TypeNone if no such type exists.
func TypeFromName(name string) GType {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return GType(C.g_type_from_name(cName))
}

// Name returns the registered name of t
func (t GType) Name() string {
	if t == TypeNone {
		return "none"
	}
	return C.GoString(C.g_type_name(C.GType(t)))
}

// Fundamental returns the fundamental type t derives from
func (t GType) Fundamental() GType {
	return GType(C.g_type_fundamental(C.GType(t)))
}

// IsA reports whether t is or derives from parent
func (t GType) IsA(parent GType) bool {
	return t != TypeNone && C.g_type_is_a(C.GType(t), C.GType(parent)) != 0
}

// gValue owns a C-allocated GValue
type gValue struct {
	value *C.GValue
}

func newGValue() *gValue {
	return &gValue{value: C.vipscall_value_new()}
}

func (v *gValue) Close() {
	if v.value != nil {
		C.vipscall_value_free(v.value)
		v.value = nil
	}
}

func (v *gValue) Type() GType {
	return GType(C.vipscall_value_type(v.value))
}

// Set initialises the value as type t and stores goValue in it
func (v *gValue) Set(t GType, goValue any) error {
	C.g_value_init(v.value, C.GType(t))

	switch {
	case t == TypeBool:
		b, err := toBool(goValue)
		if err != nil {
			return err
		}
		C.g_value_set_boolean(v.value, toGboolean(b))
	case t == TypeInt:
		i, err := toIntIn(goValue, math.MinInt32, math.MaxInt32)
		if err != nil {
			return err
		}
		C.g_value_set_int(v.value, C.gint(i))
	case t == TypeUint:
		i, err := toIntIn(goValue, 0, math.MaxUint32)
		if err != nil {
			return err
		}
		C.g_value_set_uint(v.value, C.guint(i))
	case t == TypeInt64:
		i, err := toIntIn(goValue, math.MinInt64, math.MaxInt64)
		if err != nil {
			return err
		}
		C.g_value_set_int64(v.value, C.gint64(i))
	case t == TypeUint64:
		i, err := toIntIn(goValue, 0, math.MaxInt64)
		if err != nil {
			return err
		}
		C.g_value_set_uint64(v.value, C.guint64(i))
	case t == TypeDouble:
		f, err := toFloat(goValue)
		if err != nil {
			return err
		}
		C.g_value_set_double(v.value, C.gdouble(f))
	case t == TypeFloat:
		f, err := toFloat(goValue)
		if err != nil {
			return err
		}
		C.g_value_set_float(v.value, C.gfloat(f))
	case t == TypeString:
		s, ok := toString(goValue)
		if !ok {
			return fmt.Errorf("expected string, got %T", goValue)
		}
		cs := C.CString(s)
		defer C.free(unsafe.Pointer(cs))
		C.g_value_set_string(v.value, cs)
	case t.Fundamental() == TypeEnum:
		e, err := enumFromValue(t, goValue)
		if err != nil {
			return err
		}
		C.g_value_set_enum(v.value, C.gint(e))
	case t.Fundamental() == TypeFlags:
		f, err := flagsFromValue(t, goValue)
		if err != nil {
			return err
		}
		C.g_value_set_flags(v.value, C.guint(f))
	case t.IsA(TypeImage):
		image, ok := goValue.(*Image)
		if !ok || image == nil || image.image == nil {
			return fmt.Errorf("expected image, got %T", goValue)
		}
		C.g_value_set_object(v.value, C.gpointer(unsafe.Pointer(image.image)))
	case t == TypeArrayDouble:
		doubles, err := toFloats(goValue)
		if err != nil {
			return err
		}
		values := make([]C.double, len(doubles))
		for i, d := range doubles {
			values[i] = C.double(d)
		}
		C.vips_value_set_array_double(v.value, cArrayPointer(values), C.int(len(values)))
	case t == TypeArrayInt:
		ints, err := toInts(goValue)
		if err != nil {
			return err
		}
		values := make([]C.int, len(ints))
		for i, n := range ints {
			values[i] = C.int(n)
		}
		C.vips_value_set_array_int(v.value, cArrayPointer(values), C.int(len(values)))
	case t == TypeArrayImage:
		images, ok := goValue.([]*Image)
		if !ok {
			return fmt.Errorf("expected array of images, got %T", goValue)
		}
		pointers := make([]*C.VipsImage, len(images))
		for i, image := range images {
			if image == nil || image.image == nil {
				return fmt.Errorf("array of images has a closed image at %d", i)
			}
			pointers[i] = image.image
		}
		// pass a C copy of the pointer array, cgo forbids Go memory holding Go pointers
		cArray := (**C.VipsImage)(C.malloc(C.size_t(len(pointers)+1) * C.size_t(unsafe.Sizeof(uintptr(0)))))
		defer C.free(unsafe.Pointer(cArray))
		copy(unsafe.Slice(cArray, len(pointers)), pointers)
		C.vipscall_value_set_array_image(v.value, cArray, C.int(len(pointers)))
	case t == TypeBlob:
		blob, ok := goValue.([]byte)
		if !ok {
			return fmt.Errorf("expected []byte, got %T", goValue)
		}
		var data unsafe.Pointer
		if len(blob) > 0 {
			data = unsafe.Pointer(&blob[0])
		}
		C.vipscall_value_set_blob_copy(v.value, data, C.size_t(len(blob)))
	case t == TypeRefString:
		s, ok := toString(goValue)
		if !ok {
			return fmt.Errorf("expected string, got %T", goValue)
		}
		cs := C.CString(s)
		defer C.free(unsafe.Pointer(cs))
		C.vips_value_set_ref_string(v.value, cs)
	case t.Fundamental() == TypeObject:
		object, ok := goValue.(*Object)
		if !ok || object == nil || object.object == nil {
			return fmt.Errorf("expected %s object, got %T", t.Name(), goValue)
		}
		C.g_value_set_object(v.value, C.gpointer(unsafe.Pointer(object.object)))
	case t == TypePointer:
		p, ok := goValue.(unsafe.Pointer)
		if !ok {
			return fmt.Errorf("expected pointer, got %T", goValue)
		}
		C.g_value_set_pointer(v.value, C.gpointer(p))
	default:
		return fmt.Errorf("unsupported type %s", t.Name())
	}

	return nil
}

// Get converts the value to Go. Images and objects come back with a new
// reference owned by the caller. Enums come back as their nickname.
func (v *gValue) Get() (any, error) {
	t := v.Type()

	switch {
	case t == TypeBool:
		return fromGboolean(C.g_value_get_boolean(v.value)), nil
	case t == TypeInt:
		return int(C.g_value_get_int(v.value)), nil
	case t == TypeUint:
		return int(C.g_value_get_uint(v.value)), nil
	case t == TypeInt64:
		return int64(C.g_value_get_int64(v.value)), nil
	case t == TypeUint64:
		return uint64(C.g_value_get_uint64(v.value)), nil
	case t == TypeDouble:
		return float64(C.g_value_get_double(v.value)), nil
	case t == TypeFloat:
		return float64(C.g_value_get_float(v.value)), nil
	case t == TypeString:
		return C.GoString((*C.char)(C.g_value_get_string(v.value))), nil
	case t.Fundamental() == TypeEnum:
		return enumNick(t, int(C.g_value_get_enum(v.value))), nil
	case t.Fundamental() == TypeFlags:
		return int(C.g_value_get_flags(v.value)), nil
	case t.IsA(TypeImage):
		p := C.g_value_get_object(v.value)
		if p == nil {
			return nil, nil
		}
		C.vipscall_ref(p)
		return newImageRef((*C.VipsImage)(unsafe.Pointer(p))), nil
	case t == TypeArrayDouble:
		var n C.int
		p := C.vips_value_get_array_double(v.value, &n)
		out := make([]float64, int(n))
		for i, d := range unsafe.Slice(p, int(n)) {
			out[i] = float64(d)
		}
		return out, nil
	case t == TypeArrayInt:
		var n C.int
		p := C.vips_value_get_array_int(v.value, &n)
		out := make([]int, int(n))
		for i, d := range unsafe.Slice(p, int(n)) {
			out[i] = int(d)
		}
		return out, nil
	case t == TypeArrayImage:
		var n C.int
		p := C.vips_value_get_array_image(v.value, &n)
		out := make([]*Image, int(n))
		for i, image := range unsafe.Slice(p, int(n)) {
			C.vipscall_ref(C.gpointer(unsafe.Pointer(image)))
			out[i] = newImageRef(image)
		}
		return out, nil
	case t == TypeBlob:
		var size C.size_t
		p := C.vips_value_get_blob(v.value, &size)
		if p == nil {
			return []byte{}, nil
		}
		return copyBytes(p, size), nil
	case t == TypeRefString:
		var size C.size_t
		p := C.vips_value_get_ref_string(v.value, &size)
		return C.GoStringN(p, C.int(size)), nil
	case t.Fundamental() == TypeObject:
		p := C.g_value_get_object(v.value)
		if p == nil {
			return nil, nil
		}
		C.vipscall_ref(p)
		return newObject((*C.VipsObject)(unsafe.Pointer(p)), true), nil
	case t == TypePointer:
		return unsafe.Pointer(C.g_value_get_pointer(v.value)), nil
	}

	return nil, fmt.Errorf("unsupported type %s", t.Name())
}

func cArrayPointer[T any](values []T) *T {
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}

// enumFromValue accepts an enum nickname or its numeric value
func enumFromValue(t GType, value any) (int, error) {
	if s, ok := toString(value); ok {
		cType := C.CString(t.Name())
		defer C.free(unsafe.Pointer(cType))
		cs := C.CString(s)
		defer C.free(unsafe.Pointer(cs))
		e := C.vips_enum_from_nick(cType, C.GType(t), cs)
		if e < 0 {
			return 0, newError(ErrUnknownEnumValue, "", "", takeError())
		}
		return int(e), nil
	}
	e, err := toIntIn(value, math.MinInt32, math.MaxInt32)
	return int(e), err
}

// flagsFromValue accepts flag nicknames joined by "|", "," or spaces, or a mask
func flagsFromValue(t GType, value any) (int, error) {
	if s, ok := toString(value); ok {
		cs := C.CString(s)
		defer C.free(unsafe.Pointer(cs))
		f := C.vipscall_flags_from_nick(C.GType(t), cs)
		if f < 0 {
			return 0, newError(ErrUnknownEnumValue, "", "", takeError())
		}
		return int(f), nil
	}
	f, err := toIntIn(value, 0, math.MaxUint32)
	return int(f), err
}

func enumNick(t GType, value int) string {
	return C.GoString(C.vips_enum_nick(C.GType(t), C.int(value)))
}

func toString(value any) (string, bool) {
	if s, ok := value.(string); ok {
		return s, true
	}
	if value == nil {
		return "", false
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func toBool(value any) (bool, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	if f, err := toFloat(value); err == nil {
		return f != 0, nil
	}
	return false, fmt.Errorf("expected bool, got %T", value)
}

func toFloat(value any) (float64, error) {
	if value == nil {
		return 0, fmt.Errorf("expected number, got nil")
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("expected number, got %T", value)
}

func toInt(value any) (int, error) {
	f, err := toFloat(value)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected integer, got %v", f)
	}
	return int(f), nil
}

// toIntIn converts value to an integer in [lo, hi]
func toIntIn(value any, lo, hi int64) (int64, error) {
	f, err := toFloat(value)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected integer, got %v", f)
	}
	// float64(hi)+1 is exact for 32 bit bounds and rounds to 2^63 for int64
	if f < float64(lo) || f >= float64(hi)+1 {
		return 0, fmt.Errorf("%v is out of range [%d, %d]", f, lo, hi)
	}
	return int64(f), nil
}

// copyBytes copies size bytes of C memory into a new Go slice
func copyBytes(p unsafe.Pointer, size C.size_t) []byte {
	out := make([]byte, int(size))
	copy(out, unsafe.Slice((*byte)(p), int(size)))
	return out
}

// toFloats accepts a number or any slice of numbers
func toFloats(value any) ([]float64, error) {
	if f, ok := value.([]float64); ok {
		return f, nil
	}
	if f, err := toFloat(value); err == nil {
		return []float64{f}, nil
	}
	if value == nil {
		return nil, fmt.Errorf("expected array of numbers, got nil")
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected array of numbers, got %T", value)
	}
	out := make([]float64, rv.Len())
	for i := range out {
		f, err := toFloat(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

func toInts(value any) ([]int, error) {
	floats, err := toFloats(value)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(floats))
	for i, f := range floats {
		n, err := toIntIn(f, math.MinInt32, math.MaxInt32)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = int(n)
	}
	return out, nil
}
