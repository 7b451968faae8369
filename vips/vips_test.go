package vips

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain handles setup and teardown for all tests
func TestMain(m *testing.M) {
	// Start libvips once for all tests
	config := &Config{
		ReportLeaks: true,
	}
	Startup(config)

	code := m.Run()

	Shutdown()
	os.Exit(code)
}

// createTestRGBA draws a gradient pattern
func createTestRGBA(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			b := uint8(((x + y) * 255) / (width + height))
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}
	return img
}

// createTestPNG creates a test PNG image with a pattern
func createTestPNG(t *testing.T, width, height int) []byte {
	var buf bytes.Buffer
	err := png.Encode(&buf, createTestRGBA(width, height))
	require.NoError(t, err)
	return buf.Bytes()
}

// createTestJPEG creates a test JPEG image with a pattern
func createTestJPEG(t *testing.T, width, height int) []byte {
	var buf bytes.Buffer
	err := jpeg.Encode(&buf, createTestRGBA(width, height), &jpeg.Options{Quality: 90})
	require.NoError(t, err)
	return buf.Bytes()
}

// createWhiteImage creates a solid white RGB image in memory
func createWhiteImage(t *testing.T, width, height int) *Image {
	data := bytes.Repeat([]byte{255}, width*height*3)
	img, err := NewImageFromMemory(data, width, height, 3, BandFormatUchar)
	require.NoError(t, err)
	return img
}

// createBlackImage creates a black image with the given number of bands
func createBlackImage(t *testing.T, width, height, bands int) *Image {
	img, err := Black(width, height, Options{"bands": bands})
	require.NoError(t, err)
	return img
}

// createUniformImage creates a one band uchar image with every pixel set to value
func createUniformImage(t *testing.T, width, height int, value byte) *Image {
	data := bytes.Repeat([]byte{value}, width*height)
	img, err := NewImageFromMemory(data, width, height, 1, BandFormatUchar)
	require.NoError(t, err)
	return img
}

func TestVersionInfo(t *testing.T) {
	t.Logf("libvips version: %s (major=%d, minor=%d, micro=%d)",
		Version, MajorVersion, MinorVersion, MicroVersion)

	assert.NotEmpty(t, Version)
	assert.True(t, MajorVersion >= 8, "Major version should be at least 8")
}

func TestMemoryStats(t *testing.T) {
	img := createBlackImage(t, 64, 64, 3)
	defer img.Close()

	_, err := img.WriteToMemory()
	require.NoError(t, err)

	var stats MemoryStats
	ReadVipsMemStats(&stats)
	t.Logf("libvips memory: mem=%d high=%d allocs=%d files=%d",
		stats.Mem, stats.MemHigh, stats.Allocs, stats.Files)

	assert.GreaterOrEqual(t, stats.MemHigh, stats.Mem)
}

func TestCacheControls(t *testing.T) {
	SetCacheMax(100)
	SetCacheMaxMem(50 * 1024 * 1024)
	SetCacheMaxFiles(10)

	img := createBlackImage(t, 8, 8, 1)
	defer img.Close()

	out, err := img.Invert()
	require.NoError(t, err)
	out.Close()

	ClearCache()
	assert.Equal(t, 0, CacheSize())
}

func TestLoggingSettings(t *testing.T) {
	type entry struct {
		domain  string
		level   LogLevel
		message string
	}
	var got []entry

	LoggingSettings(func(domain string, level LogLevel, message string) {
		got = append(got, entry{domain, level, message})
	}, LogLevelInfo)
	defer LoggingSettings(nil, LogLevelWarning)

	vipsLog("test", LogLevelWarning, "kept")
	vipsLog("test", LogLevelInfo, "kept too")
	vipsLog("test", LogLevelDebug, "dropped")

	require.Len(t, got, 2)
	assert.Equal(t, entry{"test", LogLevelWarning, "kept"}, got[0])
	assert.Equal(t, LogLevelInfo, got[1].level)
	assert.Equal(t, "WARNING", LogLevelWarning.String())
}
