package vips

// #include "vips.h"
import "C"
import (
	"errors"
	"fmt"
	"strings"
	"unsafe"
)

// ErrNoForeign is returned when no loader or saver handles a file or buffer
var ErrNoForeign = errors.New("vips: no loader or saver for format")

// SplitFilename separates a trailing libvips option string from a filename,
// so "photo.jpg[Q=90,strip]" gives "photo.jpg" and "[Q=90,strip]"
func SplitFilename(name string) (filename string, options string) {
	if !strings.HasSuffix(name, "]") {
		return name, ""
	}
	i := strings.LastIndex(name, "[")
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i:]
}

// FindLoad returns the name of the load operation for filename
func FindLoad(filename string) (string, error) {
	cName := C.CString(filename)
	defer C.free(unsafe.Pointer(cName))

	loader := C.vips_foreign_find_load(cName)
	if loader == nil {
		return "", fmt.Errorf("%w: %s: %s", ErrNoForeign, filename, strings.TrimSpace(takeError()))
	}
	return C.GoString(loader), nil
}

// FindLoadBuffer returns the name of the load operation for an encoded image
// held in buf
func FindLoadBuffer(buf []byte) (string, error) {
	if len(buf) == 0 {
		return "", fmt.Errorf("%w: empty buffer", ErrNoForeign)
	}

	loader := C.vips_foreign_find_load_buffer(unsafe.Pointer(&buf[0]), C.size_t(len(buf)))
	if loader == nil {
		return "", fmt.Errorf("%w: buffer: %s", ErrNoForeign, strings.TrimSpace(takeError()))
	}
	return C.GoString(loader), nil
}

// FindSave returns the name of the save operation for filename, chosen by
// its suffix
func FindSave(filename string) (string, error) {
	cName := C.CString(filename)
	defer C.free(unsafe.Pointer(cName))

	saver := C.vips_foreign_find_save(cName)
	if saver == nil {
		return "", fmt.Errorf("%w: %s: %s", ErrNoForeign, filename, strings.TrimSpace(takeError()))
	}
	return C.GoString(saver), nil
}

// FindSaveBuffer returns the name of the save operation that writes the
// format of suffix, e.g. ".png", to memory
func FindSaveBuffer(suffix string) (string, error) {
	cSuffix := C.CString(suffix)
	defer C.free(unsafe.Pointer(cSuffix))

	saver := C.vips_foreign_find_save_buffer(cSuffix)
	if saver == nil {
		return "", fmt.Errorf("%w: %s: %s", ErrNoForeign, suffix, strings.TrimSpace(takeError()))
	}
	return C.GoString(saver), nil
}

// NewImageFromFile loads an image. name may carry load options, as in
// "page.tif[page=2]"; entries in options take precedence over them.
func NewImageFromFile(name string, options Options) (*Image, error) {
	filename, optionString := SplitFilename(name)
	loader, err := FindLoad(filename)
	if err != nil {
		return nil, err
	}
	return callImage(loader, optionString, optionalArgs(options, filename)...)
}

// NewImageFromBuffer loads an image from encoded bytes such as a JPEG file
// read into memory. optionString is a libvips option string, "" for none.
func NewImageFromBuffer(buf []byte, optionString string, options Options) (*Image, error) {
	loader, err := FindLoadBuffer(buf)
	if err != nil {
		return nil, err
	}
	return callImage(loader, optionString, optionalArgs(options, buf)...)
}

// WriteToFile saves the image in the format given by the suffix of name.
// name may carry save options, as in "out.jpg[Q=90]".
func (r *Image) WriteToFile(name string, options Options) error {
	filename, optionString := SplitFilename(name)
	saver, err := FindSave(filename)
	if err != nil {
		return err
	}

	results, err := Call(saver, optionString, optionalArgs(options, r, filename)...)
	if err != nil {
		return err
	}
	CloseResults(results)
	return nil
}

// WriteToBuffer encodes the image in the format of suffix, e.g. ".png" or
// ".jpg[Q=85]", and returns the encoded bytes
func (r *Image) WriteToBuffer(suffix string, options Options) ([]byte, error) {
	format, optionString := SplitFilename(suffix)
	saver, err := FindSaveBuffer(format)
	if err != nil {
		return nil, err
	}

	results, err := Call(saver, optionString, optionalArgs(options, r)...)
	if err != nil {
		return nil, err
	}
	buf, ok := first[[]byte](results)
	if !ok {
		CloseResults(results)
		return nil, fmt.Errorf("vips: %s did not return a buffer", saver)
	}
	return buf, nil
}
