package vips

// Enums are passed to libvips by nickname, the same strings accepted in
// option strings. The constants below cover the enums used by the helpers
// in this package; any other nickname may be passed as a plain string.

// BandFormat is VipsBandFormat
type BandFormat string

// BandFormat values
const (
	BandFormatUchar     BandFormat = "uchar"
	BandFormatChar      BandFormat = "char"
	BandFormatUshort    BandFormat = "ushort"
	BandFormatShort     BandFormat = "short"
	BandFormatUint      BandFormat = "uint"
	BandFormatInt       BandFormat = "int"
	BandFormatFloat     BandFormat = "float"
	BandFormatComplex   BandFormat = "complex"
	BandFormatDouble    BandFormat = "double"
	BandFormatDpComplex BandFormat = "dpcomplex"
)

// Interpretation is VipsInterpretation
type Interpretation string

// Interpretation values
const (
	InterpretationMultiband Interpretation = "multiband"
	InterpretationBW        Interpretation = "b-w"
	InterpretationHistogram Interpretation = "histogram"
	InterpretationXYZ       Interpretation = "xyz"
	InterpretationLab       Interpretation = "lab"
	InterpretationCMYK      Interpretation = "cmyk"
	InterpretationLabq      Interpretation = "labq"
	InterpretationRGB       Interpretation = "rgb"
	InterpretationCMC       Interpretation = "cmc"
	InterpretationLch       Interpretation = "lch"
	InterpretationLabs      Interpretation = "labs"
	InterpretationSRGB      Interpretation = "srgb"
	InterpretationYxy       Interpretation = "yxy"
	InterpretationFourier   Interpretation = "fourier"
	InterpretationRGB16     Interpretation = "rgb16"
	InterpretationGrey16    Interpretation = "grey16"
	InterpretationMatrix    Interpretation = "matrix"
	InterpretationScRGB     Interpretation = "scrgb"
	InterpretationHSV       Interpretation = "hsv"
)

// Extend is VipsExtend
type Extend string

// Extend values
const (
	ExtendBlack      Extend = "black"
	ExtendCopy       Extend = "copy"
	ExtendRepeat     Extend = "repeat"
	ExtendMirror     Extend = "mirror"
	ExtendWhite      Extend = "white"
	ExtendBackground Extend = "background"
)

// Direction is VipsDirection
type Direction string

// Direction values
const (
	DirectionHorizontal Direction = "horizontal"
	DirectionVertical   Direction = "vertical"
)

// Angle is VipsAngle
type Angle string

// Angle values
const (
	AngleD0   Angle = "d0"
	AngleD90  Angle = "d90"
	AngleD180 Angle = "d180"
	AngleD270 Angle = "d270"
)

// OperationMath is VipsOperationMath
type OperationMath string

// OperationMath values
const (
	OperationMathSin   OperationMath = "sin"
	OperationMathCos   OperationMath = "cos"
	OperationMathTan   OperationMath = "tan"
	OperationMathAsin  OperationMath = "asin"
	OperationMathAcos  OperationMath = "acos"
	OperationMathAtan  OperationMath = "atan"
	OperationMathLog   OperationMath = "log"
	OperationMathLog10 OperationMath = "log10"
	OperationMathExp   OperationMath = "exp"
	OperationMathExp10 OperationMath = "exp10"
)

// OperationMath2 is VipsOperationMath2
type OperationMath2 string

// OperationMath2 values
const (
	OperationMath2Pow   OperationMath2 = "pow"
	OperationMath2Wop   OperationMath2 = "wop"
	OperationMath2Atan2 OperationMath2 = "atan2"
)

// OperationRelational is VipsOperationRelational
type OperationRelational string

// OperationRelational values
const (
	OperationRelationalEqual  OperationRelational = "equal"
	OperationRelationalNoteq  OperationRelational = "noteq"
	OperationRelationalLess   OperationRelational = "less"
	OperationRelationalLesseq OperationRelational = "lesseq"
	OperationRelationalMore   OperationRelational = "more"
	OperationRelationalMoreeq OperationRelational = "moreeq"
)

// OperationBoolean is VipsOperationBoolean
type OperationBoolean string

// OperationBoolean values
const (
	OperationBooleanAnd    OperationBoolean = "and"
	OperationBooleanOr     OperationBoolean = "or"
	OperationBooleanEor    OperationBoolean = "eor"
	OperationBooleanLshift OperationBoolean = "lshift"
	OperationBooleanRshift OperationBoolean = "rshift"
)

// OperationRound is VipsOperationRound
type OperationRound string

// OperationRound values
const (
	OperationRoundRint  OperationRound = "rint"
	OperationRoundCeil  OperationRound = "ceil"
	OperationRoundFloor OperationRound = "floor"
)

// OperationComplex is VipsOperationComplex
type OperationComplex string

// OperationComplex values
const (
	OperationComplexPolar OperationComplex = "polar"
	OperationComplexRect  OperationComplex = "rect"
	OperationComplexConj  OperationComplex = "conj"
)

// OperationComplexget is VipsOperationComplexget
type OperationComplexget string

// OperationComplexget values
const (
	OperationComplexgetReal OperationComplexget = "real"
	OperationComplexgetImag OperationComplexget = "imag"
)

// Kernel is VipsKernel
type Kernel string

// Kernel values
const (
	KernelNearest  Kernel = "nearest"
	KernelLinear   Kernel = "linear"
	KernelCubic    Kernel = "cubic"
	KernelMitchell Kernel = "mitchell"
	KernelLanczos2 Kernel = "lanczos2"
	KernelLanczos3 Kernel = "lanczos3"
)
