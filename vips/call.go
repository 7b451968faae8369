package vips

// #include "vips.h"
import "C"
import (
	"fmt"
	"unsafe"
)

// Call runs the libvips operation name.
//
// args holds the operation's required inputs in the order libvips declares
// them, optionally followed by an Options table of named arguments. options
// is a libvips option string such as "[strip,Q=90]"; it is applied before
// any argument, so args always take precedence over it.
//
// Where an image is expected, numbers and pixel constants ([]float64) are
// expanded to an image matching the first image among args, and 2D arrays
// ([][]float64) become matrix images. Arguments libvips modifies in place
// receive a private copy of the image supplied.
//
// The result holds, in this order: the required outputs, the inputs
// modified in place, and the optional outputs requested through Options,
// each group in declared order. Images in the result are owned by the
// caller and must be closed.
func Call(name string, options string, args ...any) ([]any, error) {
	op, err := newOperation(name)
	if err != nil {
		return nil, err
	}

	c := &operationCall{name: name, op: op}
	defer c.release()

	return c.run(options, args)
}

// operationCall is the state of one Call, from creating the operation
// to releasing it
type operationCall struct {
	name  string
	op    *C.VipsOperation
	built *C.VipsOperation
	desc  *Descriptor
	match *Image

	// images made while binding, referenced by the operation once set
	temporaries []*Image
	requested   map[string]bool
}

func (c *operationCall) object() *Object {
	return newObject((*C.VipsObject)(unsafe.Pointer(c.op)), false)
}

func (c *operationCall) run(options string, args []any) ([]any, error) {
	desc, err := introspectOperation(c.op, c.name)
	if err != nil {
		return nil, err
	}
	c.desc = desc

	values, err := classifyAll(args)
	if err != nil {
		return nil, newError(ErrBind, c.name, "", err.Error())
	}

	positional, table, err := splitArguments(c.name, values, desc.RequiredInputs)
	if err != nil {
		return nil, err
	}

	c.match = findMatchImage(values)

	vipsLog("vipscall", LogLevelDebug, fmt.Sprintf("call %s: %d positional, %d named, options %q",
		c.name, len(positional), len(table), options))

	// string options go first so explicit arguments override them
	if options != "" {
		if err := c.object().SetFromString(options); err != nil {
			return nil, newError(ErrBind, c.name, "", err.Error())
		}
	}

	n := 0
	for _, arg := range desc.Arguments {
		if !arg.Flags.IsRequiredInput() {
			continue
		}
		if err := c.bind(arg, positional[n]); err != nil {
			return nil, err
		}
		n++
	}

	for key, value := range table {
		arg, ok := desc.Argument(key)
		if !ok {
			return nil, newError(ErrUnknownOption, c.name, key, "")
		}
		if arg.Flags.has(ArgumentOutput) {
			if requested, err := toBool(value); err == nil && requested {
				if c.requested == nil {
					c.requested = make(map[string]bool)
				}
				c.requested[arg.Name] = true
			}
			continue
		}
		v, err := classify(value)
		if err != nil {
			return nil, newError(ErrBind, c.name, key, err.Error())
		}
		if err := c.bind(arg, v); err != nil {
			return nil, err
		}
	}

	built := C.vips_cache_operation_build(c.op)
	if built == nil {
		return nil, newError(ErrBuild, c.name, "", takeError())
	}
	c.built = built

	return c.harvest()
}

// bind sets one argument on the operation, expanding constants to images
// and copying images that will be modified
func (c *operationCall) bind(arg Argument, v callValue) error {
	value, err := c.coerce(arg, v)
	if err != nil {
		return err
	}

	if arg.Flags.has(ArgumentModify) {
		image, ok := value.(*Image)
		if !ok {
			return newError(ErrBind, c.name, arg.Name, fmt.Sprintf("expected image to modify, got %T", value))
		}
		private, err := image.privateCopy()
		if err != nil {
			return withContext(err, ErrBind, c.name, arg.Name)
		}
		c.temporaries = append(c.temporaries, private)
		value = private
	}

	if err := c.object().Set(arg.Name, value); err != nil {
		return withContext(err, ErrBind, c.name, arg.Name)
	}
	return nil
}

// coerce returns the Go value to set for arg
func (c *operationCall) coerce(arg Argument, v callValue) (any, error) {
	switch {
	case arg.Type.IsA(TypeImage) && v.kind != kindImage:
		image, owned, err := imageize(c.match, v)
		if err != nil {
			return nil, withContext(err, ErrBind, c.name, arg.Name)
		}
		if owned {
			c.temporaries = append(c.temporaries, image)
		}
		if image == nil {
			return v.native(), nil
		}
		return image, nil
	case arg.Type == TypeArrayImage:
		var elems []callValue
		switch v.kind {
		case kindImageArray:
			elems = v.elems
		case kindImage, kindScalar, kindPixel, kindMatrix:
			elems = []callValue{v}
		default:
			return v.native(), nil
		}
		images := make([]*Image, len(elems))
		for i, e := range elems {
			image, owned, err := imageize(c.match, e)
			if err != nil {
				return nil, withContext(err, ErrBind, c.name, arg.Name)
			}
			if image == nil {
				return nil, newError(ErrBind, c.name, arg.Name,
					fmt.Sprintf("element %d: expected image, got %T", i, e.raw))
			}
			if owned {
				c.temporaries = append(c.temporaries, image)
			}
			images[i] = image
		}
		return images, nil
	}
	return v.native(), nil
}

// harvest reads the outputs off the built operation: required outputs,
// then modified inputs, then requested optional outputs
func (c *operationCall) harvest() ([]any, error) {
	built := newObject((*C.VipsObject)(unsafe.Pointer(c.built)), false)

	var results []any
	read := func(arg Argument) error {
		value, err := built.Get(arg.Name)
		if err != nil {
			vipsLog("vipscall", LogLevelWarning, fmt.Sprintf("%s built but output %s unreadable: %v", c.name, arg.Name, err))
			return newError(ErrBuild, c.name, arg.Name, err.Error())
		}
		results = append(results, value)
		return nil
	}

	passes := []func(Argument) bool{
		func(arg Argument) bool { return arg.Flags.IsRequiredOutput() },
		func(arg Argument) bool { return arg.Flags.IsModifiedInput() },
		func(arg Argument) bool { return arg.Flags.IsOptionalOutput() && c.requested[arg.Name] },
	}
	for _, pass := range passes {
		for _, arg := range c.desc.Arguments {
			if !pass(arg) {
				continue
			}
			if err := read(arg); err != nil {
				CloseResults(results)
				return nil, err
			}
		}
	}

	return results, nil
}

// release drops the operation's references to its outputs and then the
// operation itself. It runs on every exit from Call.
func (c *operationCall) release() {
	if c.built != nil {
		C.vips_object_unref_outputs((*C.VipsObject)(unsafe.Pointer(c.built)))
		C.vipscall_unref(C.gpointer(unsafe.Pointer(c.built)))
	} else {
		C.vips_object_unref_outputs((*C.VipsObject)(unsafe.Pointer(c.op)))
	}
	C.vipscall_unref(C.gpointer(unsafe.Pointer(c.op)))

	for _, image := range c.temporaries {
		image.Close()
	}
	c.temporaries = nil
}

// CloseResults releases every image and object among the results of Call
func CloseResults(results []any) {
	for _, r := range results {
		switch r := r.(type) {
		case *Image:
			r.Close()
		case []*Image:
			for _, image := range r {
				image.Close()
			}
		case *Object:
			r.Close()
		}
	}
}

// imageize turns a constant into an image. Images are returned as they are.
// Matrices become matrix images. Numbers and pixels become an image shaped
// like match, which must then be set. owned reports an image made here.
// A nil image with no error means v cannot become an image.
func imageize(match *Image, v callValue) (image *Image, owned bool, err error) {
	switch v.kind {
	case kindImage:
		return v.image, false, nil
	case kindMatrix:
		image, err := NewImageFromArray(v.matrix, 1, 0)
		if err != nil {
			return nil, false, err
		}
		return image, true, nil
	case kindPixel, kindScalar:
		if v.kind == kindScalar && !v.isNumber() {
			return nil, false, nil
		}
		if match == nil {
			return nil, false, newError(ErrArityMismatch, "", "",
				"a constant was given for an image, but there is no image to match it to")
		}
		image, err := match.newFromConstant(v.pixel)
		if err != nil {
			return nil, false, err
		}
		return image, true, nil
	}
	return nil, false, nil
}
