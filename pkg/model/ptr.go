package model

// IntPtr returns a pointer to v. Convenience for building rule sets inline.
func IntPtr(v int) *int { return &v }

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }
