package vips

import "fmt"

// The binary helpers accept an *Image, a number or a pixel constant
// ([]float64 with one value per band) as their right-hand operand. Images
// use the two-image operation, constants the matching "_const" operation or
// "linear".

// operand is the right-hand side of a binary helper
type operand struct {
	image *Image
	pixel []float64
}

func toOperand(value any) (operand, error) {
	v, err := classify(value)
	if err != nil {
		return operand{}, err
	}
	switch {
	case v.kind == kindImage:
		return operand{image: v.image}, nil
	case v.kind == kindPixel, v.isNumber():
		return operand{pixel: v.pixel}, nil
	}
	return operand{}, fmt.Errorf("vips: expected image or constant, got %T", value)
}

// isConstant reports whether value is a number or a pixel constant
func isConstant(value any) bool {
	o, err := toOperand(value)
	return err == nil && o.image == nil
}

func mapPixel(pixel []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(pixel))
	for i, p := range pixel {
		out[i] = f(p)
	}
	return out
}

// Add returns r + right
func (r *Image) Add(right any) (*Image, error) {
	o, err := toOperand(right)
	if err != nil {
		return nil, err
	}
	if o.image != nil {
		return callImage("add", "", r, o.image)
	}
	return r.Linear([]float64{1}, o.pixel, nil)
}

// Subtract returns r - right
func (r *Image) Subtract(right any) (*Image, error) {
	o, err := toOperand(right)
	if err != nil {
		return nil, err
	}
	if o.image != nil {
		return callImage("subtract", "", r, o.image)
	}
	return r.Linear([]float64{1}, mapPixel(o.pixel, func(p float64) float64 { return -p }), nil)
}

// Multiply returns r * right
func (r *Image) Multiply(right any) (*Image, error) {
	o, err := toOperand(right)
	if err != nil {
		return nil, err
	}
	if o.image != nil {
		return callImage("multiply", "", r, o.image)
	}
	return r.Linear(o.pixel, []float64{0}, nil)
}

// Divide returns r / right
func (r *Image) Divide(right any) (*Image, error) {
	o, err := toOperand(right)
	if err != nil {
		return nil, err
	}
	if o.image != nil {
		return callImage("divide", "", r, o.image)
	}
	return r.Linear(mapPixel(o.pixel, func(p float64) float64 { return 1 / p }), []float64{0}, nil)
}

// Remainder returns r % right
func (r *Image) Remainder(right any) (*Image, error) {
	o, err := toOperand(right)
	if err != nil {
		return nil, err
	}
	if o.image != nil {
		return callImage("remainder", "", r, o.image)
	}
	return callImage("remainder_const", "", r, o.pixel)
}

// callEnum runs base with right as an image, or base+"_const" with right
// as a constant, passing the enum nickname op
func (r *Image) callEnum(base string, right any, op string) (*Image, error) {
	o, err := toOperand(right)
	if err != nil {
		return nil, err
	}
	if o.image != nil {
		return callImage(base, "", r, o.image, op)
	}
	return callImage(base+"_const", "", r, op, o.pixel)
}

// Pow returns r raised to the power right
func (r *Image) Pow(right any) (*Image, error) {
	return r.callEnum("math2", right, string(OperationMath2Pow))
}

// Wop returns right raised to the power r
func (r *Image) Wop(right any) (*Image, error) {
	return r.callEnum("math2", right, string(OperationMath2Wop))
}

// Atan2 returns the arc tangent of r / right, in degrees
func (r *Image) Atan2(right any) (*Image, error) {
	return r.callEnum("math2", right, string(OperationMath2Atan2))
}

// Less returns 255 where r < right, 0 elsewhere
func (r *Image) Less(right any) (*Image, error) {
	return r.callEnum("relational", right, string(OperationRelationalLess))
}

// LessEq returns 255 where r <= right, 0 elsewhere
func (r *Image) LessEq(right any) (*Image, error) {
	return r.callEnum("relational", right, string(OperationRelationalLesseq))
}

// More returns 255 where r > right, 0 elsewhere
func (r *Image) More(right any) (*Image, error) {
	return r.callEnum("relational", right, string(OperationRelationalMore))
}

// MoreEq returns 255 where r >= right, 0 elsewhere
func (r *Image) MoreEq(right any) (*Image, error) {
	return r.callEnum("relational", right, string(OperationRelationalMoreeq))
}

// Equal returns 255 where r == right, 0 elsewhere
func (r *Image) Equal(right any) (*Image, error) {
	return r.callEnum("relational", right, string(OperationRelationalEqual))
}

// NotEqual returns 255 where r != right, 0 elsewhere
func (r *Image) NotEqual(right any) (*Image, error) {
	return r.callEnum("relational", right, string(OperationRelationalNoteq))
}

// And returns the bitwise and of r and right
func (r *Image) And(right any) (*Image, error) {
	return r.callEnum("boolean", right, string(OperationBooleanAnd))
}

// Or returns the bitwise or of r and right
func (r *Image) Or(right any) (*Image, error) {
	return r.callEnum("boolean", right, string(OperationBooleanOr))
}

// Eor returns the bitwise exclusive or of r and right
func (r *Image) Eor(right any) (*Image, error) {
	return r.callEnum("boolean", right, string(OperationBooleanEor))
}

// Lshift shifts r left by right bits
func (r *Image) Lshift(right any) (*Image, error) {
	return r.callEnum("boolean", right, string(OperationBooleanLshift))
}

// Rshift shifts r right by right bits
func (r *Image) Rshift(right any) (*Image, error) {
	return r.callEnum("boolean", right, string(OperationBooleanRshift))
}

func (r *Image) math(op OperationMath) (*Image, error) {
	return callImage("math", "", r, string(op))
}

// Sin returns the sine of r, in degrees
func (r *Image) Sin() (*Image, error) { return r.math(OperationMathSin) }

// Cos returns the cosine of r, in degrees
func (r *Image) Cos() (*Image, error) { return r.math(OperationMathCos) }

// Tan returns the tangent of r, in degrees
func (r *Image) Tan() (*Image, error) { return r.math(OperationMathTan) }

// Asin returns the arc sine of r, in degrees
func (r *Image) Asin() (*Image, error) { return r.math(OperationMathAsin) }

// Acos returns the arc cosine of r, in degrees
func (r *Image) Acos() (*Image, error) { return r.math(OperationMathAcos) }

// Atan returns the arc tangent of r, in degrees
func (r *Image) Atan() (*Image, error) { return r.math(OperationMathAtan) }

// Log returns the natural logarithm of r
func (r *Image) Log() (*Image, error) { return r.math(OperationMathLog) }

// Log10 returns the base 10 logarithm of r
func (r *Image) Log10() (*Image, error) { return r.math(OperationMathLog10) }

// Exp returns e to the power r
func (r *Image) Exp() (*Image, error) { return r.math(OperationMathExp) }

// Exp10 returns 10 to the power r
func (r *Image) Exp10() (*Image, error) { return r.math(OperationMathExp10) }

func (r *Image) round(op OperationRound) (*Image, error) {
	return callImage("round", "", r, string(op))
}

// Floor rounds r down
func (r *Image) Floor() (*Image, error) { return r.round(OperationRoundFloor) }

// Ceil rounds r up
func (r *Image) Ceil() (*Image, error) { return r.round(OperationRoundCeil) }

// Rint rounds r to the nearest integer
func (r *Image) Rint() (*Image, error) { return r.round(OperationRoundRint) }

func (r *Image) complex(op OperationComplex) (*Image, error) {
	return callImage("complex", "", r, string(op))
}

// Polar converts r from rectangular to polar coordinates
func (r *Image) Polar() (*Image, error) { return r.complex(OperationComplexPolar) }

// Rect converts r from polar to rectangular coordinates
func (r *Image) Rect() (*Image, error) { return r.complex(OperationComplexRect) }

// Conj returns the complex conjugate of r
func (r *Image) Conj() (*Image, error) { return r.complex(OperationComplexConj) }

func (r *Image) complexget(op OperationComplexget) (*Image, error) {
	return callImage("complexget", "", r, string(op))
}

// Real returns the real part of a complex image
func (r *Image) Real() (*Image, error) { return r.complexget(OperationComplexgetReal) }

// Imag returns the imaginary part of a complex image
func (r *Image) Imag() (*Image, error) { return r.complexget(OperationComplexgetImag) }
