package vips

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandjoin(t *testing.T) {
	a := createUniformImage(t, 4, 4, 1)
	defer a.Close()
	b := createUniformImage(t, 4, 4, 2)
	defer b.Close()

	joined, err := a.Bandjoin(b)
	require.NoError(t, err)
	defer joined.Close()
	assert.Equal(t, 2, joined.Bands())

	// constants only
	constant, err := a.Bandjoin(7, []float64{8, 9})
	require.NoError(t, err)
	defer constant.Close()

	pixel, err := constant.Getpoint(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 7, 8, 9}, pixel)

	// images and constants
	mixed, err := a.Bandjoin(b, 3)
	require.NoError(t, err)
	defer mixed.Close()

	pixel, err = mixed.Getpoint(3, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, pixel)

	same, err := a.Bandjoin()
	require.NoError(t, err)
	defer same.Close()
	assert.Equal(t, 1, same.Bands())
}

func TestIfthenelse(t *testing.T) {
	img := createBlackImage(t, 10, 10, 1)
	defer img.Close()

	cond, err := img.DrawRect([]float64{255}, 0, 0, 5, 10, Options{"fill": true})
	require.NoError(t, err)
	defer cond.Close()

	// both constants, matched against the condition
	out, err := cond.Ifthenelse(100, 50, nil)
	require.NoError(t, err)
	defer out.Close()

	left, err := out.Getpoint(1, 1)
	require.NoError(t, err)
	right, err := out.Getpoint(8, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{100}, left)
	assert.Equal(t, []float64{50}, right)

	// constant else, matched against the then image
	then := createWhiteImage(t, 10, 10)
	defer then.Close()

	out2, err := cond.Ifthenelse(then, []float64{1, 2, 3}, nil)
	require.NoError(t, err)
	defer out2.Close()
	assert.Equal(t, 3, out2.Bands())

	pixel, err := out2.Getpoint(8, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, pixel)

	_, err = cond.Ifthenelse("nope", 1, nil)
	assert.Error(t, err)
}

func TestGeometry(t *testing.T) {
	img := createBlackImage(t, 10, 20, 1)
	defer img.Close()

	rotated, err := img.Rot(AngleD90)
	require.NoError(t, err)
	defer rotated.Close()
	assert.Equal(t, 20, rotated.Width())
	assert.Equal(t, 10, rotated.Height())

	flipped, err := img.Flip(DirectionHorizontal)
	require.NoError(t, err)
	defer flipped.Close()
	assert.Equal(t, 10, flipped.Width())

	embedded, err := img.Embed(5, 5, 30, 40, Options{"extend": string(ExtendWhite)})
	require.NoError(t, err)
	defer embedded.Close()
	assert.Equal(t, 30, embedded.Width())
	assert.Equal(t, 40, embedded.Height())

	cropped, err := embedded.ExtractArea(0, 0, 5, 5)
	require.NoError(t, err)
	defer cropped.Close()
	avg, err := cropped.Avg()
	require.NoError(t, err)
	assert.Equal(t, 255.0, avg)

	resized, err := img.Resize(0.5, Options{"kernel": string(KernelNearest)})
	require.NoError(t, err)
	defer resized.Close()
	assert.Equal(t, 5, resized.Width())
	assert.Equal(t, 10, resized.Height())
}

func TestBandsAndFormats(t *testing.T) {
	img := createWhiteImage(t, 8, 8)
	defer img.Close()

	band, err := img.ExtractBand(1, nil)
	require.NoError(t, err)
	defer band.Close()
	assert.Equal(t, 1, band.Bands())

	two, err := img.ExtractBand(0, Options{"n": 2})
	require.NoError(t, err)
	defer two.Close()
	assert.Equal(t, 2, two.Bands())

	float, err := img.Cast(BandFormatFloat, nil)
	require.NoError(t, err)
	defer float.Close()
	assert.Equal(t, BandFormatFloat, float.Format())

	inverted, err := img.Invert()
	require.NoError(t, err)
	defer inverted.Close()
	maxVal, err := inverted.Max()
	require.NoError(t, err)
	assert.Equal(t, 0.0, maxVal)

	srgb, err := img.Copy(Options{"interpretation": string(InterpretationSRGB)})
	require.NoError(t, err)
	defer srgb.Close()

	grey, err := srgb.Colourspace(InterpretationBW, nil)
	require.NoError(t, err)
	defer grey.Close()
	assert.Equal(t, 1, grey.Bands())
	assert.Equal(t, InterpretationBW, grey.Interpretation())
}

func TestStats(t *testing.T) {
	img := createBlackImage(t, 10, 10, 1)
	defer img.Close()

	marked, err := img.DrawRect([]float64{250}, 6, 2, 1, 1, Options{"fill": true})
	require.NoError(t, err)
	defer marked.Close()

	avg, err := marked.Avg()
	require.NoError(t, err)
	assert.InDelta(t, 2.5, avg, 0.001)

	minVal, err := marked.Min()
	require.NoError(t, err)
	assert.Equal(t, 0.0, minVal)

	value, x, y, err := marked.MaxPos()
	require.NoError(t, err)
	assert.Equal(t, 250.0, value)
	assert.Equal(t, 6, x)
	assert.Equal(t, 2, y)

	pixel, err := marked.Getpoint(6, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{250}, pixel)
}

func TestDrawRectLeavesSourceAlone(t *testing.T) {
	img := createWhiteImage(t, 20, 20)
	defer img.Close()

	drawn, err := img.DrawRect([]float64{255, 0, 0}, 5, 5, 10, 10, Options{"fill": true})
	require.NoError(t, err)
	defer drawn.Close()

	inside, err := drawn.Getpoint(10, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{255, 0, 0}, inside)

	outside, err := drawn.Getpoint(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{255, 255, 255}, outside)

	original, err := img.Getpoint(10, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{255, 255, 255}, original)
}
