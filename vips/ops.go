package vips

import "fmt"

// Bandjoin appends the bands of others to r. others may mix images and
// constants; when all of them are constants "bandjoin_const" is used.
func (r *Image) Bandjoin(others ...any) (*Image, error) {
	if len(others) == 0 {
		return r.Copy(nil)
	}

	allConstant := true
	for _, o := range others {
		if !isConstant(o) {
			allConstant = false
			break
		}
	}

	if allConstant {
		var c []float64
		for _, o := range others {
			op, _ := toOperand(o)
			c = append(c, op.pixel...)
		}
		return callImage("bandjoin_const", "", r, c)
	}

	return callImage("bandjoin", "", append([]any{r}, others...))
}

// Ifthenelse picks pixels from then where r is non-zero and from els
// elsewhere. then and els may be images or constants; constants are
// expanded to match then, els or r, the first of them that is an image.
func (r *Image) Ifthenelse(then, els any, options Options) (*Image, error) {
	match := r
	for _, v := range []any{then, els} {
		if image, ok := v.(*Image); ok && image != nil {
			match = image
			break
		}
	}

	args := make([]any, 0, 3)
	args = append(args, r)
	for _, v := range []any{then, els} {
		if _, ok := v.(*Image); ok {
			args = append(args, v)
			continue
		}
		o, err := toOperand(v)
		if err != nil {
			return nil, err
		}
		image, err := match.newFromConstant(o.pixel)
		if err != nil {
			return nil, err
		}
		defer image.Close()
		args = append(args, image)
	}

	return callImage("ifthenelse", "", optionalArgs(options, args...)...)
}

// Invert returns 255 - r for uchar images, -1 * r otherwise
func (r *Image) Invert() (*Image, error) {
	return callImage("invert", "", r)
}

// Linear returns r * a + b, a and b holding one value or one per band
func (r *Image) Linear(a, b []float64, options Options) (*Image, error) {
	return callImage("linear", "", optionalArgs(options, r, a, b)...)
}

// Cast converts r to format
func (r *Image) Cast(format BandFormat, options Options) (*Image, error) {
	return callImage("cast", "", optionalArgs(options, r, string(format))...)
}

// Embed places r at x, y in a larger image of width by height
func (r *Image) Embed(x, y, width, height int, options Options) (*Image, error) {
	return callImage("embed", "", optionalArgs(options, r, x, y, width, height)...)
}

// ExtractArea crops r
func (r *Image) ExtractArea(left, top, width, height int) (*Image, error) {
	return callImage("extract_area", "", r, left, top, width, height)
}

// ExtractBand returns band of r, or n bands from band when options sets "n"
func (r *Image) ExtractBand(band int, options Options) (*Image, error) {
	return callImage("extract_band", "", optionalArgs(options, r, band)...)
}

func callFloat(name string, args ...any) (float64, error) {
	results, err := Call(name, "", args...)
	if err != nil {
		return 0, err
	}
	defer CloseResults(results)

	if len(results) == 0 {
		return 0, fmt.Errorf("vips: %s returned nothing", name)
	}
	return toFloat(results[0])
}

// Avg returns the average pixel value across all bands
func (r *Image) Avg() (float64, error) {
	return callFloat("avg", r)
}

// Max returns the largest pixel value across all bands
func (r *Image) Max() (float64, error) {
	return callFloat("max", r)
}

// Min returns the smallest pixel value across all bands
func (r *Image) Min() (float64, error) {
	return callFloat("min", r)
}

// MaxPos returns the largest pixel value and where it was found
func (r *Image) MaxPos() (value float64, x, y int, err error) {
	results, err := Call("max", "", r, Options{"x": true, "y": true})
	if err != nil {
		return 0, 0, 0, err
	}
	defer CloseResults(results)

	if len(results) != 3 {
		return 0, 0, 0, fmt.Errorf("vips: max returned %d values", len(results))
	}
	if value, err = toFloat(results[0]); err != nil {
		return 0, 0, 0, err
	}
	if x, err = toInt(results[1]); err != nil {
		return 0, 0, 0, err
	}
	if y, err = toInt(results[2]); err != nil {
		return 0, 0, 0, err
	}
	return value, x, y, nil
}

// Getpoint returns the pixel at x, y, one value per band
func (r *Image) Getpoint(x, y int) ([]float64, error) {
	results, err := Call("getpoint", "", r, x, y)
	if err != nil {
		return nil, err
	}
	defer CloseResults(results)

	if len(results) == 0 {
		return nil, fmt.Errorf("vips: getpoint returned nothing")
	}
	return toFloats(results[0])
}

// Conv convolves r with mask, an *Image or a 2D array of numbers
func (r *Image) Conv(mask any, options Options) (*Image, error) {
	return callImage("conv", "", optionalArgs(options, r, mask)...)
}

// Resize scales r by scale, see the "resize" operation for options
func (r *Image) Resize(scale float64, options Options) (*Image, error) {
	return callImage("resize", "", optionalArgs(options, r, scale)...)
}

// Flip mirrors r in direction
func (r *Image) Flip(direction Direction) (*Image, error) {
	return callImage("flip", "", r, string(direction))
}

// Rot rotates r by a multiple of 90 degrees
func (r *Image) Rot(angle Angle) (*Image, error) {
	return callImage("rot", "", r, string(angle))
}

// Colourspace converts r to space
func (r *Image) Colourspace(space Interpretation, options Options) (*Image, error) {
	return callImage("colourspace", "", optionalArgs(options, r, string(space))...)
}

// DrawRect draws a rectangle of ink on a copy of r and returns the copy.
// Set "fill" in options for a filled rectangle. r itself is not changed.
func (r *Image) DrawRect(ink []float64, left, top, width, height int, options Options) (*Image, error) {
	return callImage("draw_rect", "", optionalArgs(options, r, ink, left, top, width, height)...)
}
