package probe

// Library is the prober's view of a loaded native library. Every method
// models one resolve-or-invoke operation against the library's exported
// entry points; resolution failures come back as errors rather than panics.
//
// internal/native implements Library over the platform dynamic loader.
// Tests substitute fakes.
type Library interface {
	// Symbol resolves the named entry point without invoking it.
	Symbol(name string) error

	// Version invokes the named version-reporting entry point
	// (signature `char *f(int)`) with the given selector.
	Version(entry string, selector int32) (string, error)

	// NewKeyByCurve invokes EC_KEY_new_by_curve_name with the given NID.
	// A zero handle means the curve is unsupported.
	NewKeyByCurve(nid int32) (uintptr, error)

	// FreeKey releases a key handle via EC_KEY_free.
	FreeKey(key uintptr) error

	// RandBytes fills buf via RAND_bytes and returns the native status
	// code (1 on success).
	RandBytes(buf []byte) (int32, error)
}
