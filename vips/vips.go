// Package vips calls libvips operations by name.
//
// Every operation in libvips is reachable through Call, which introspects the
// operation, binds positional and named arguments, builds it through the
// libvips operation cache and returns its outputs in a fixed order. Typed
// helpers such as Image.Add or Image.Embed are thin wrappers over Call.
package vips

// #cgo pkg-config: vips
// #include "vips.h"
import "C"
import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"
)

// Version is the full libvips version string, e.g. "8.15.1"
var Version string

// MajorVersion, MinorVersion and MicroVersion are the parts of Version
var (
	MajorVersion int
	MinorVersion int
	MicroVersion int
)

var (
	running  bool
	lock     sync.Mutex
	initOnce sync.Once
)

// Config allows fine-tuning of libvips when calling Startup
type Config struct {
	ConcurrencyLevel int
	MaxCacheFiles    int
	MaxCacheMem      int
	MaxCacheSize     int
	ReportLeaks      bool
	CacheTrace       bool
	VectorEnabled    bool
	LogHandler       LoggingHandlerFunction
	LogLevel         LogLevel
}

// MemoryStats is a snapshot of libvips memory tracking
type MemoryStats struct {
	Mem     int64
	MemHigh int64
	Files   int64
	Allocs  int64
}

// Startup starts libvips. It must be called once before any other function
// in this package. A nil config keeps the libvips defaults.
func Startup(config *Config) {
	lock.Lock()
	defer lock.Unlock()

	if running {
		vipsLog("vipscall", LogLevelWarning, "libvips already started")
		return
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if config != nil && config.LogHandler != nil {
		LoggingSettings(config.LogHandler, config.LogLevel)
	} else if config != nil && config.LogLevel != 0 {
		LoggingSettings(nil, config.LogLevel)
	}

	name := C.CString("vipscall")
	defer C.free(unsafe.Pointer(name))

	if C.vips_init(name) != 0 {
		panic(fmt.Sprintf("vips: failed to start: %s", takeError()))
	}

	initOnce.Do(func() {
		C.vipscall_logging_setup()
		initTypes()
		Version = C.GoString(C.vips_version_string())
		MajorVersion = int(C.vips_version(0))
		MinorVersion = int(C.vips_version(1))
		MicroVersion = int(C.vips_version(2))
	})

	if config != nil {
		C.vips_leak_set(toGboolean(config.ReportLeaks))
		C.vips_cache_set_trace(toGboolean(config.CacheTrace))
		C.vips_vector_set_enabled(toGboolean(config.VectorEnabled))

		if config.ConcurrencyLevel >= 0 {
			C.vips_concurrency_set(C.int(config.ConcurrencyLevel))
		}
		if config.MaxCacheFiles > 0 {
			SetCacheMaxFiles(config.MaxCacheFiles)
		}
		if config.MaxCacheMem > 0 {
			SetCacheMaxMem(config.MaxCacheMem)
		}
		if config.MaxCacheSize > 0 {
			SetCacheMax(config.MaxCacheSize)
		}
	}

	vipsLog("vipscall", LogLevelInfo, fmt.Sprintf("libvips %s started", Version))
	running = true
}

// Shutdown shuts libvips down. No calls may be made after it returns.
func Shutdown() {
	lock.Lock()
	defer lock.Unlock()

	if !running {
		vipsLog("vipscall", LogLevelWarning, "libvips not started")
		return
	}

	C.vips_shutdown()
	running = false
}

// SetCacheMax sets the maximum number of operations kept in the operation cache
func SetCacheMax(n int) {
	C.vips_cache_set_max(C.int(n))
}

// SetCacheMaxMem sets the maximum memory in bytes held by cached operations
func SetCacheMaxMem(bytes int) {
	C.vips_cache_set_max_mem(C.size_t(bytes))
}

// SetCacheMaxFiles sets the maximum number of files held open by the cache
func SetCacheMaxFiles(n int) {
	C.vips_cache_set_max_files(C.int(n))
}

// ClearCache drops every operation from the libvips operation cache
func ClearCache() {
	C.vips_cache_drop_all()
}

// CacheSize returns the number of operations currently cached
func CacheSize() int {
	return int(C.vips_cache_get_size())
}

// ReadVipsMemStats fills stats with the current libvips memory tracking
func ReadVipsMemStats(stats *MemoryStats) {
	stats.Mem = int64(C.vips_tracked_get_mem())
	stats.MemHigh = int64(C.vips_tracked_get_mem_highwater())
	stats.Allocs = int64(C.vips_tracked_get_allocs())
	stats.Files = int64(C.vips_tracked_get_files())
}

// takeError returns the libvips error buffer and clears it
func takeError() string {
	text := C.vipscall_error_take()
	defer C.g_free(C.gpointer(unsafe.Pointer(text)))
	return C.GoString(text)
}

func toGboolean(b bool) C.gboolean {
	if b {
		return C.gboolean(1)
	}
	return C.gboolean(0)
}

func fromGboolean(b C.gboolean) bool {
	return b != 0
}
