package vips

// #include "vips.h"
import "C"
import (
	"strings"
	"unsafe"
)

// ArgumentFlags are the VipsArgumentFlags of an operation argument
type ArgumentFlags int

// ArgumentFlags values
const (
	ArgumentRequired   ArgumentFlags = C.VIPS_ARGUMENT_REQUIRED
	ArgumentConstruct  ArgumentFlags = C.VIPS_ARGUMENT_CONSTRUCT
	ArgumentSetOnce    ArgumentFlags = C.VIPS_ARGUMENT_SET_ONCE
	ArgumentSetAlways  ArgumentFlags = C.VIPS_ARGUMENT_SET_ALWAYS
	ArgumentInput      ArgumentFlags = C.VIPS_ARGUMENT_INPUT
	ArgumentOutput     ArgumentFlags = C.VIPS_ARGUMENT_OUTPUT
	ArgumentDeprecated ArgumentFlags = C.VIPS_ARGUMENT_DEPRECATED
	ArgumentModify     ArgumentFlags = C.VIPS_ARGUMENT_MODIFY
)

var argumentFlagNames = []struct {
	flag ArgumentFlags
	name string
}{
	{ArgumentRequired, "required"},
	{ArgumentConstruct, "construct"},
	{ArgumentSetOnce, "set-once"},
	{ArgumentSetAlways, "set-always"},
	{ArgumentInput, "input"},
	{ArgumentOutput, "output"},
	{ArgumentDeprecated, "deprecated"},
	{ArgumentModify, "modify"},
}

func (f ArgumentFlags) has(flag ArgumentFlags) bool {
	return f&flag != 0
}

// IsRequiredInput reports an input that must be supplied positionally
func (f ArgumentFlags) IsRequiredInput() bool {
	return f.has(ArgumentInput) && f.has(ArgumentRequired) && !f.has(ArgumentDeprecated)
}

// IsRequiredOutput reports an output always returned by Call
func (f ArgumentFlags) IsRequiredOutput() bool {
	return f.has(ArgumentOutput) && f.has(ArgumentRequired) && !f.has(ArgumentDeprecated)
}

// IsOptionalOutput reports an output returned only on request
func (f ArgumentFlags) IsOptionalOutput() bool {
	return f.has(ArgumentOutput) && !f.has(ArgumentRequired) && !f.has(ArgumentDeprecated)
}

// IsModifiedInput reports an input the operation changes in place
func (f ArgumentFlags) IsModifiedInput() bool {
	return f.has(ArgumentInput) && f.has(ArgumentModify)
}

func (f ArgumentFlags) String() string {
	var names []string
	for _, n := range argumentFlagNames {
		if f.has(n.flag) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Argument is one formal argument of an operation
type Argument struct {
	Name        string
	Flags       ArgumentFlags
	Type        GType
	Description string
}

// Descriptor lists the arguments of an operation in libvips' declared order,
// which is the order positional arguments are matched in.
type Descriptor struct {
	Name           string
	Arguments      []Argument
	RequiredInputs int

	index map[string]int
}

// Lookup returns the flags of the named argument
func (d *Descriptor) Lookup(name string) (ArgumentFlags, bool) {
	arg, ok := d.Argument(name)
	return arg.Flags, ok
}

// Argument returns the named argument, either separator accepted
func (d *Descriptor) Argument(name string) (Argument, bool) {
	i, ok := d.index[normalizeArgumentName(name)]
	if !ok {
		return Argument{}, false
	}
	return d.Arguments[i], true
}

// Introspect describes the arguments of the named operation
func Introspect(name string) (*Descriptor, error) {
	o, err := newOperationObject(name)
	if err != nil {
		return nil, err
	}
	defer o.Close()

	return introspectOperation((*C.VipsOperation)(unsafe.Pointer(o.object)), name)
}

// newOperationObject returns an owned handle on a new, unbuilt operation
func newOperationObject(name string) (*Object, error) {
	op, err := newOperation(name)
	if err != nil {
		return nil, err
	}
	return newObject((*C.VipsObject)(unsafe.Pointer(op)), true), nil
}

func newOperation(name string) (*C.VipsOperation, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	op := C.vips_operation_new(cName)
	if op == nil {
		return nil, newError(ErrUnknownOperation, name, "", takeError())
	}
	return op, nil
}

func introspectOperation(op *C.VipsOperation, name string) (*Descriptor, error) {
	object := (*C.VipsObject)(unsafe.Pointer(op))

	var cNames **C.char
	var cFlags *C.int
	var n C.int
	if C.vipscall_object_get_args(object, &cNames, &cFlags, &n) != 0 {
		return nil, newError(ErrUnknownOperation, name, "", takeError())
	}

	names := unsafe.Slice(cNames, int(n))
	flags := unsafe.Slice(cFlags, int(n))

	d := &Descriptor{
		Name:  name,
		index: make(map[string]int, int(n)),
	}
	for i := range names {
		f := ArgumentFlags(flags[i])
		// only construct arguments are call arguments
		if !f.has(ArgumentConstruct) {
			continue
		}

		arg := Argument{
			Name:  normalizeArgumentName(C.GoString(names[i])),
			Flags: f,
			Type:  GType(C.vipscall_object_get_typeof(object, names[i])),
		}
		if blurb := C.vipscall_object_get_blurb(object, names[i]); blurb != nil {
			arg.Description = C.GoString(blurb)
		}

		d.index[arg.Name] = len(d.Arguments)
		d.Arguments = append(d.Arguments, arg)
		if f.IsRequiredInput() {
			d.RequiredInputs++
		}
	}

	return d, nil
}

// normalizeArgumentName maps libvips' "-" word separator to "_"
func normalizeArgumentName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
