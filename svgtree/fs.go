package svgtree

import "github.com/spf13/afero"

// DefaultFs is the default filesystem used for local href resolution.
// It defaults to the OS filesystem but can be overridden for testing.
//
// Example usage for testing:
//
//	func TestLocalHref(t *testing.T) {
//	    memFs := afero.NewMemMapFs()
//	    afero.WriteFile(memFs, "/logo.png", pngBytes, 0644)
//	    svgtree.SetDefaultFs(memFs)
//	    defer svgtree.ResetDefaultFs()
//	    // ... test code ...
//	}
var DefaultFs afero.Fs = afero.NewOsFs()

// SetDefaultFs sets the global default filesystem.
//
// WARNING: This modifies global state and is NOT thread-safe.
// Do not use with t.Parallel() tests. For concurrent tests,
// set Options.Fs on individual Options values instead.
func SetDefaultFs(fs afero.Fs) {
	DefaultFs = fs
}

// ResetDefaultFs resets the global filesystem to the OS filesystem.
// Call this in test cleanup to restore default behavior.
func ResetDefaultFs() {
	DefaultFs = afero.NewOsFs()
}
