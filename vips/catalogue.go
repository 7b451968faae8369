package vips

// #include "vips.h"
import "C"
import (
	"sort"
	"unsafe"
)

// Operations lists the nicknames of every operation that can be called,
// sorted. Abstract and deprecated operations are left out.
func Operations() []string {
	var n C.int
	names := C.vipscall_operation_names(&n)
	if names == nil {
		return nil
	}
	defer C.vipscall_free_strings(names, n)

	out := make([]string, int(n))
	for i, name := range unsafe.Slice(names, int(n)) {
		out[i] = C.GoString(name)
	}
	sort.Strings(out)
	return out
}

// HasOperation reports whether name is an operation that can be called
func HasOperation(name string) bool {
	cBase := C.CString("VipsOperation")
	defer C.free(unsafe.Pointer(cBase))
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	return C.vips_type_find(cBase, cName) != 0
}

// EnumValue is one member of a libvips enum
type EnumValue struct {
	Name  string
	Nick  string
	Value int
}

// EnumNicks lists the members of the enum type named typeName, for example
// "VipsBandFormat". Unknown or non-enum types give an empty list.
func EnumNicks(typeName string) []EnumValue {
	cName := C.CString(typeName)
	defer C.free(unsafe.Pointer(cName))

	var n C.int
	values := C.vipscall_enum_values(cName, &n)
	if values == nil {
		return nil
	}
	defer C.vipscall_free_enum_values(values, n)

	out := make([]EnumValue, 0, int(n))
	for _, v := range unsafe.Slice(values, int(n)) {
		out = append(out, EnumValue{
			Name:  C.GoString(v.name),
			Nick:  C.GoString(v.nick),
			Value: int(v.value),
		})
	}
	return out
}
