package vips

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntrospectInvert(t *testing.T) {
	d, err := Introspect("invert")
	require.NoError(t, err)

	assert.Equal(t, "invert", d.Name)
	assert.Equal(t, 1, d.RequiredInputs)

	in, ok := d.Argument("in")
	require.True(t, ok)
	assert.True(t, in.Flags.IsRequiredInput())
	assert.True(t, in.Type.IsA(TypeImage))
	assert.NotEmpty(t, in.Description)

	out, ok := d.Argument("out")
	require.True(t, ok)
	assert.True(t, out.Flags.IsRequiredOutput())

	flags, ok := d.Lookup("out")
	require.True(t, ok)
	assert.Equal(t, out.Flags, flags)

	_, ok = d.Lookup("bogus")
	assert.False(t, ok)
}

func TestIntrospectOnlyConstructArguments(t *testing.T) {
	d, err := Introspect("black")
	require.NoError(t, err)

	for _, arg := range d.Arguments {
		assert.True(t, arg.Flags.has(ArgumentConstruct), "%s is not a construct argument", arg.Name)
	}

	// inherited housekeeping properties are not arguments
	_, ok := d.Argument("nickname")
	assert.False(t, ok)
	_, ok = d.Argument("description")
	assert.False(t, ok)
}

func TestIntrospectRoles(t *testing.T) {
	d, err := Introspect("max")
	require.NoError(t, err)
	x, ok := d.Argument("x")
	require.True(t, ok)
	assert.True(t, x.Flags.IsOptionalOutput())

	d, err = Introspect("draw_rect")
	require.NoError(t, err)
	image, ok := d.Argument("image")
	require.True(t, ok)
	assert.True(t, image.Flags.IsModifiedInput())
	assert.True(t, image.Flags.IsRequiredInput())
	assert.Equal(t, 6, d.RequiredInputs)

	// either word separator finds an argument
	d, err = Introspect("getpoint")
	require.NoError(t, err)
	_, ok = d.Argument("out-array")
	assert.True(t, ok)
	_, ok = d.Argument("out_array")
	assert.True(t, ok)

	for _, arg := range d.Arguments {
		found, ok := d.Argument(arg.Name)
		require.True(t, ok)
		assert.Equal(t, arg, found)
		flags, ok := d.Lookup(arg.Name)
		require.True(t, ok)
		assert.Equal(t, arg.Flags, flags)
	}
}

func TestIntrospectUnknown(t *testing.T) {
	_, err := Introspect("definitely_not_a_real_op")
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestArgumentFlagsString(t *testing.T) {
	assert.Equal(t, "none", ArgumentFlags(0).String())
	assert.Equal(t, "required|input", (ArgumentRequired | ArgumentInput).String())

	f := ArgumentRequired | ArgumentConstruct | ArgumentInput | ArgumentModify
	assert.True(t, f.IsRequiredInput())
	assert.True(t, f.IsModifiedInput())
	assert.False(t, f.IsRequiredOutput())

	deprecated := ArgumentRequired | ArgumentInput | ArgumentDeprecated
	assert.False(t, deprecated.IsRequiredInput())
}

func TestOperations(t *testing.T) {
	ops := Operations()
	require.NotEmpty(t, ops)
	assert.True(t, sort.StringsAreSorted(ops))
	assert.Contains(t, ops, "invert")
	assert.Contains(t, ops, "black")

	assert.True(t, HasOperation("invert"))
	assert.False(t, HasOperation("definitely_not_a_real_op"))
}

func TestEnumNicks(t *testing.T) {
	values := EnumNicks("VipsBandFormat")
	require.NotEmpty(t, values)

	nicks := make([]string, 0, len(values))
	for _, v := range values {
		nicks = append(nicks, v.Nick)
	}
	assert.Contains(t, nicks, string(BandFormatUchar))
	assert.Contains(t, nicks, string(BandFormatDouble))

	assert.Empty(t, EnumNicks("NoSuchType"))
}

func TestTypes(t *testing.T) {
	assert.Equal(t, "VipsImage", TypeImage.Name())
	assert.Equal(t, TypeImage, TypeFromName("VipsImage"))
	assert.Equal(t, TypeEnum, TypeBandFormat.Fundamental())
	assert.True(t, TypeImage.IsA(TypeObject))
	assert.Equal(t, "gint", TypeInt.Name())
}

func TestObjectProperties(t *testing.T) {
	o, err := newOperationObject("black")
	require.NoError(t, err)
	defer o.Close()

	require.NoError(t, o.Set("width", 12))
	got, err := o.Get("width")
	require.NoError(t, err)
	assert.Equal(t, 12, got)

	require.NoError(t, o.SetFromString("[bands=2]"))
	got, err = o.Get("bands")
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	assert.Equal(t, TypeNone, o.TypeOf("no-such-property"))
	assert.Error(t, o.Set("no-such-property", 1))
}
