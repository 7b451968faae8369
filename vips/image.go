package vips

// #include "vips.h"
import "C"
import (
	"fmt"
	"sync"
	"unsafe"
)

// Image holds one reference to a libvips image. Close releases it; an image
// is not released by the garbage collector.
type Image struct {
	image *C.VipsImage
	lock  sync.Mutex
}

func newImageRef(image *C.VipsImage) *Image {
	return &Image{image: image}
}

// Close releases the image. It is safe to call more than once.
func (r *Image) Close() {
	if r == nil {
		return
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.image != nil {
		C.vipscall_unref(C.gpointer(unsafe.Pointer(r.image)))
		r.image = nil
	}
}

// Closed reports whether Close has been called
func (r *Image) Closed() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.image == nil
}

// Call runs the operation name with r as its first argument
func (r *Image) Call(name string, options string, args ...any) ([]any, error) {
	return Call(name, options, append([]any{r}, args...)...)
}

// NewImageFromArray makes a matrix image from a rectangular 2D array, with
// width the row length and height the number of rows. scale and offset are
// set as the matrix scale and offset, 1 and 0 for a plain matrix.
func NewImageFromArray(matrix [][]float64, scale, offset float64) (*Image, error) {
	if !isRectangular(matrix) {
		return nil, newError(ErrBind, "", "", "matrix must be a non-empty rectangular 2D array")
	}

	height := len(matrix)
	width := len(matrix[0])
	values := make([]C.double, 0, width*height)
	for _, row := range matrix {
		for _, v := range row {
			values = append(values, C.double(v))
		}
	}

	vipsImage := C.vips_image_new_matrix_from_array(C.int(width), C.int(height),
		&values[0], C.int(len(values)))
	if vipsImage == nil {
		return nil, fmt.Errorf("vips: unable to make matrix: %s", takeError())
	}

	image := newImageRef(vipsImage)
	if err := image.SetType(TypeDouble, "scale", scale); err != nil {
		image.Close()
		return nil, err
	}
	if err := image.SetType(TypeDouble, "offset", offset); err != nil {
		image.Close()
		return nil, err
	}
	return image, nil
}

// NewImageFromMemory makes an image from raw pixel data, band interleaved.
// The data is copied to the C heap, owned by the image and freed when libvips
// closes it, so buf may be reused as soon as this returns.
func NewImageFromMemory(buf []byte, width, height, bands int, format BandFormat) (*Image, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("vips: empty memory buffer")
	}

	formatValue, err := enumFromValue(TypeBandFormat, string(format))
	if err != nil {
		return nil, withContext(err, ErrUnknownEnumValue, "", "format")
	}

	data := C.g_malloc(C.gsize(len(buf)))
	copy(unsafe.Slice((*byte)(data), len(buf)), buf)

	vipsImage := C.vipscall_image_new_from_memory_owned(data, C.size_t(len(buf)),
		C.int(width), C.int(height), C.int(bands), C.VipsBandFormat(formatValue))
	if vipsImage == nil {
		return nil, fmt.Errorf("vips: unable to make image from memory: %s", takeError())
	}
	return newImageRef(vipsImage), nil
}

// Black makes a black image, see the "black" operation for options
func Black(width, height int, options Options) (*Image, error) {
	return callImage("black", "", optionalArgs(options, width, height)...)
}

// WriteToMemory renders the image and returns its pixels, band interleaved
func (r *Image) WriteToMemory() ([]byte, error) {
	if r.image == nil {
		return nil, errImageClosed
	}
	var size C.size_t
	data := C.vips_image_write_to_memory(r.image, &size)
	if data == nil {
		return nil, fmt.Errorf("vips: unable to write to memory: %s", takeError())
	}
	defer C.g_free(C.gpointer(data))
	return copyBytes(data, size), nil
}

// Copy returns a new image sharing pixels with r. Options may change header
// fields, see the "copy" operation.
func (r *Image) Copy(options Options) (*Image, error) {
	return callImage("copy", "", optionalArgs(options, r)...)
}

// CopyMemory renders the image to a new memory buffer
func (r *Image) CopyMemory() (*Image, error) {
	if r.image == nil {
		return nil, errImageClosed
	}
	vipsImage := C.vips_image_copy_memory(r.image)
	if vipsImage == nil {
		return nil, fmt.Errorf("vips: unable to copy to memory: %s", takeError())
	}
	return newImageRef(vipsImage), nil
}

// privateCopy returns a copy of r in its own memory, so an operation that
// modifies it cannot change r
func (r *Image) privateCopy() (*Image, error) {
	image, err := r.Copy(nil)
	if err != nil {
		return nil, err
	}
	defer image.Close()
	return image.CopyMemory()
}

// newFromConstant makes an image shaped like r, every pixel set to pixel.
// The constant is cast to r's band format and r's interpretation, resolution
// and offset are copied over.
func (r *Image) newFromConstant(pixel []float64) (*Image, error) {
	if len(pixel) == 0 {
		return nil, newError(ErrBind, "", "", "empty constant")
	}

	black, err := Black(1, 1, nil)
	if err != nil {
		return nil, err
	}
	defer black.Close()

	ones := make([]float64, len(pixel))
	for i := range ones {
		ones[i] = 1
	}
	one, err := callImage("linear", "", black, ones, pixel)
	if err != nil {
		return nil, err
	}
	defer one.Close()

	cast, err := callImage("cast", "", one, string(r.Format()))
	if err != nil {
		return nil, err
	}
	defer cast.Close()

	embedded, err := callImage("embed", "", cast, 0, 0, r.Width(), r.Height(),
		Options{"extend": string(ExtendCopy)})
	if err != nil {
		return nil, err
	}
	defer embedded.Close()

	return embedded.Copy(Options{
		"interpretation": string(r.Interpretation()),
		"xres":           r.Xres(),
		"yres":           r.Yres(),
		"xoffset":        r.Xoffset(),
		"yoffset":        r.Yoffset(),
	})
}

// callImage runs an operation whose first result is an image and returns
// that image, closing any other results
func callImage(name string, options string, args ...any) (*Image, error) {
	results, err := Call(name, options, args...)
	if err != nil {
		return nil, err
	}
	image, ok := first[*Image](results)
	if !ok {
		CloseResults(results)
		return nil, fmt.Errorf("vips: %s did not return an image", name)
	}
	CloseResults(results[1:])
	return image, nil
}

// first returns results[0] as a T
func first[T any](results []any) (T, bool) {
	var zero T
	if len(results) == 0 {
		return zero, false
	}
	v, ok := results[0].(T)
	return v, ok
}

// optionalArgs appends options to args when there are any
func optionalArgs(options Options, args ...any) []any {
	if len(options) > 0 {
		return append(args, options)
	}
	return args
}
