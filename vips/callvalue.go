package vips

import (
	"fmt"
	"reflect"
)

// Options is the trailing table of named arguments accepted by Call. Keys
// are argument names, with "-" or "_" as the word separator. A key naming an
// optional output requests that output when its value is true.
type Options map[string]any

type valueKind int

const (
	kindScalar valueKind = iota
	kindPixel
	kindMatrix
	kindImage
	kindImageArray
	kindOptions
)

func (k valueKind) String() string {
	switch k {
	case kindScalar:
		return "scalar"
	case kindPixel:
		return "pixel"
	case kindMatrix:
		return "matrix"
	case kindImage:
		return "image"
	case kindImageArray:
		return "image array"
	case kindOptions:
		return "options"
	}
	return "unknown"
}

// callValue is a call argument, classified once when Call is entered.
//
//	kindScalar     raw holds a bool, string, []byte, *Object, or a number
//	               (pixel then also holds it as a one element slice)
//	kindPixel      pixel holds a constant with one value per band
//	kindMatrix     matrix holds a 2D array of numbers
//	kindImage      image is set
//	kindImageArray elems holds the classified elements
//	kindOptions    options is set
type callValue struct {
	kind    valueKind
	raw     any
	pixel   []float64
	matrix  [][]float64
	image   *Image
	elems   []callValue
	options Options
}

func (v callValue) isNumber() bool {
	return v.kind == kindScalar && v.pixel != nil
}

// native returns the Go value handed to the value bridge
func (v callValue) native() any {
	switch v.kind {
	case kindPixel:
		return v.pixel
	case kindMatrix:
		return v.matrix
	case kindImage:
		return v.image
	case kindImageArray:
		images := make([]*Image, 0, len(v.elems))
		for _, e := range v.elems {
			if e.kind != kindImage {
				return v.raw
			}
			images = append(images, e.image)
		}
		return images
	case kindOptions:
		return v.options
	}
	return v.raw
}

func classifyAll(values []any) ([]callValue, error) {
	out := make([]callValue, len(values))
	for i, value := range values {
		v, err := classify(value)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func classify(value any) (callValue, error) {
	switch value := value.(type) {
	case nil:
		return callValue{}, fmt.Errorf("nil value")
	case *Image:
		if value == nil || value.image == nil {
			return callValue{}, fmt.Errorf("closed image")
		}
		return callValue{kind: kindImage, raw: value, image: value}, nil
	case []*Image:
		elems := make([]callValue, len(value))
		for i, image := range value {
			e, err := classify(image)
			if err != nil {
				return callValue{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = e
		}
		return callValue{kind: kindImageArray, raw: value, elems: elems}, nil
	case Options:
		return callValue{kind: kindOptions, raw: value, options: value}, nil
	case map[string]any:
		return callValue{kind: kindOptions, raw: value, options: Options(value)}, nil
	case []byte:
		return callValue{kind: kindScalar, raw: value}, nil
	case *Object:
		return callValue{kind: kindScalar, raw: value}, nil
	case [][]float64:
		return callValue{kind: kindMatrix, raw: value, matrix: value}, nil
	case []float64:
		return callValue{kind: kindPixel, raw: value, pixel: value}, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		f, _ := toFloat(value)
		return callValue{kind: kindScalar, raw: value, pixel: []float64{f}}, nil
	case reflect.Slice, reflect.Array:
		return classifySlice(rv)
	}

	// bool, string, enum nicknames and anything else the bridge may know
	return callValue{kind: kindScalar, raw: value}, nil
}

// classifySlice decides between pixel, matrix and image array for slices
// that are not one of the directly typed cases
func classifySlice(rv reflect.Value) (callValue, error) {
	raw := rv.Interface()
	n := rv.Len()
	elems := make([]callValue, n)
	var images, numbers, rows int
	for i := 0; i < n; i++ {
		e, err := classify(rv.Index(i).Interface())
		if err != nil {
			return callValue{}, fmt.Errorf("element %d: %w", i, err)
		}
		elems[i] = e
		switch {
		case e.kind == kindImage:
			images++
		case e.isNumber():
			numbers++
		case e.kind == kindPixel:
			rows++
		}
	}

	switch {
	case images > 0:
		return callValue{kind: kindImageArray, raw: raw, elems: elems}, nil
	case n > 0 && rows == n:
		matrix := make([][]float64, n)
		for i, e := range elems {
			matrix[i] = e.pixel
		}
		return callValue{kind: kindMatrix, raw: raw, matrix: matrix}, nil
	case numbers == n:
		pixel := make([]float64, n)
		for i, e := range elems {
			pixel[i] = e.pixel[0]
		}
		return callValue{kind: kindPixel, raw: raw, pixel: pixel}, nil
	}

	// e.g. []string, left for the value bridge to accept or refuse
	return callValue{kind: kindScalar, raw: raw}, nil
}

// splitArguments separates the positional arguments from a trailing options
// table. There must be exactly required positional arguments, optionally
// followed by one options table.
func splitArguments(operation string, values []callValue, required int) ([]callValue, Options, error) {
	switch {
	case len(values) == required:
		return values, nil, nil
	case len(values) == required+1:
		last := values[len(values)-1]
		if last.kind != kindOptions {
			return nil, nil, newError(ErrArityMismatch, operation, "",
				fmt.Sprintf("%d arguments given, but %d required and the last is %s, not options",
					len(values), required, last.kind))
		}
		return values[:required], last.options, nil
	}
	return nil, nil, newError(ErrArityMismatch, operation, "",
		fmt.Sprintf("%d arguments given, but %d required", len(values), required))
}

// findMatchImage returns the first image among values, looking inside image
// arrays in order
func findMatchImage(values []callValue) *Image {
	for _, v := range values {
		switch v.kind {
		case kindImage:
			return v.image
		case kindImageArray:
			if image := findMatchImage(v.elems); image != nil {
				return image
			}
		}
	}
	return nil
}

func isRectangular(matrix [][]float64) bool {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return false
	}
	for _, row := range matrix {
		if len(row) != len(matrix[0]) {
			return false
		}
	}
	return true
}
