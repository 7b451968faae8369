package vips

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderAccessors(t *testing.T) {
	img := createWhiteImage(t, 40, 30)
	defer img.Close()

	assert.Equal(t, 40, img.Width())
	assert.Equal(t, 30, img.Height())
	assert.Equal(t, 3, img.Bands())
	assert.Equal(t, BandFormatUchar, img.Format())
	assert.False(t, img.HasAlpha())

	copied, err := img.Copy(Options{
		"interpretation": string(InterpretationSRGB),
		"xres":           2.5,
		"yres":           4.0,
		"xoffset":        3,
		"yoffset":        -2,
	})
	require.NoError(t, err)
	defer copied.Close()

	assert.Equal(t, InterpretationSRGB, copied.Interpretation())
	assert.Equal(t, 2.5, copied.Xres())
	assert.Equal(t, 4.0, copied.Yres())
	assert.Equal(t, 3, copied.Xoffset())
	assert.Equal(t, -2, copied.Yoffset())
}

func TestMetadataRoundTrip(t *testing.T) {
	img := createUniformImage(t, 4, 4, 0)
	defer img.Close()

	tests := []struct {
		name  string
		value any
	}{
		{"test-int", 42},
		{"test-double", 3.25},
		{"test-string", "hello vips"},
		{"test-bool", true},
		{"test-blob", []byte{1, 2, 3, 4}},
		{"test-array-double", []float64{1.5, 2.5}},
		{"test-array-int", []int{7, 8, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, img.Set(tt.name, tt.value))
			got, err := img.Get(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}

	// enums round trip by nickname
	require.NoError(t, img.SetType(TypeInterpretation, "test-enum", "srgb"))
	got, err := img.Get("test-enum")
	require.NoError(t, err)
	assert.Equal(t, "srgb", got)
	assert.Equal(t, TypeInterpretation, img.TypeOf("test-enum"))

	// an existing field keeps its type
	require.NoError(t, img.Set("test-double", 7))
	got, err = img.Get("test-double")
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)

	assert.Contains(t, img.Fields(), "test-string")
	assert.Contains(t, img.Fields(), "width")
}

func TestMetadataMissing(t *testing.T) {
	img := createUniformImage(t, 4, 4, 0)
	defer img.Close()

	assert.Equal(t, TypeNone, img.TypeOf("no-such-field"))

	_, err := img.Get("no-such-field")
	assert.Error(t, err)

	err = img.Set("unsupported", struct{}{})
	assert.ErrorIs(t, err, ErrBind)

	require.NoError(t, img.Set("to-remove", 1))
	assert.True(t, img.Remove("to-remove"))
	assert.False(t, img.Remove("to-remove"))
	assert.Equal(t, TypeNone, img.TypeOf("to-remove"))
}

func TestMetadataImage(t *testing.T) {
	img := createUniformImage(t, 4, 4, 0)
	defer img.Close()
	thumb := createUniformImage(t, 2, 2, 9)
	defer thumb.Close()

	require.NoError(t, img.Set("test-thumbnail", thumb))

	got, err := img.Get("test-thumbnail")
	require.NoError(t, err)
	attached, ok := got.(*Image)
	require.True(t, ok)
	defer attached.Close()

	assert.Equal(t, 2, attached.Width())
}

func TestNewImageFromMemory(t *testing.T) {
	data := []byte{
		0, 10, 20,
		30, 40, 50,
	}
	img, err := NewImageFromMemory(data, 3, 2, 1, BandFormatUchar)
	require.NoError(t, err)
	defer img.Close()

	// the image owns a copy
	data[0] = 99

	out, err := img.WriteToMemory()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 10, 20, 30, 40, 50}, out)

	_, err = NewImageFromMemory(nil, 1, 1, 1, BandFormatUchar)
	assert.Error(t, err)

	_, err = NewImageFromMemory([]byte{1}, 1, 1, 1, BandFormat("nope"))
	assert.ErrorIs(t, err, ErrUnknownEnumValue)
}

func TestNewImageFromArray(t *testing.T) {
	img, err := NewImageFromArray([][]float64{{-1, -1, -1}, {-1, 16, -1}, {-1, -1, -1}}, 8, 0)
	require.NoError(t, err)
	defer img.Close()

	assert.Equal(t, 3, img.Width())
	assert.Equal(t, 3, img.Height())
	assert.Equal(t, 8.0, img.Scale())
	assert.Equal(t, 0.0, img.Offset())

	_, err = NewImageFromArray([][]float64{{1, 2}, {3}}, 1, 0)
	assert.ErrorIs(t, err, ErrBind)

	_, err = NewImageFromArray(nil, 1, 0)
	assert.ErrorIs(t, err, ErrBind)
}

func TestImageClose(t *testing.T) {
	img := createUniformImage(t, 4, 4, 0)
	assert.False(t, img.Closed())

	img.Close()
	assert.True(t, img.Closed())
	img.Close()

	_, err := Call("invert", "", img)
	assert.ErrorIs(t, err, ErrBind)
}

func TestClosedImageHeader(t *testing.T) {
	img := createWhiteImage(t, 4, 4)
	img.Close()

	assert.Zero(t, img.Width())
	assert.Zero(t, img.Height())
	assert.Zero(t, img.Bands())
	assert.Empty(t, img.Format())
	assert.Empty(t, img.Interpretation())
	assert.Zero(t, img.Xres())
	assert.Zero(t, img.Scale())
	assert.False(t, img.HasAlpha())
	assert.Equal(t, TypeNone, img.TypeOf("width"))
	assert.Nil(t, img.Fields())
	assert.False(t, img.Remove("width"))

	_, err := img.Get("width")
	assert.Error(t, err)
	assert.ErrorIs(t, img.Set("answer", 42), ErrBind)

	_, err = img.WriteToMemory()
	assert.Error(t, err)
	_, err = img.CopyMemory()
	assert.Error(t, err)
}

func TestCopyMemory(t *testing.T) {
	img := createUniformImage(t, 8, 8, 17)
	defer img.Close()

	inverted, err := img.Invert()
	require.NoError(t, err)
	defer inverted.Close()

	rendered, err := inverted.CopyMemory()
	require.NoError(t, err)
	defer rendered.Close()

	avg, err := rendered.Avg()
	require.NoError(t, err)
	assert.Equal(t, 238.0, avg)
}
