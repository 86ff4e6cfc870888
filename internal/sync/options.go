package sync

// Options configures synchronization behavior. The zero value is a merge-mode
// sync that executes for real.
type Options struct {
	// Mirror makes the destination's file set exactly equal the source's by
	// deleting destination files absent from the source. When false, extra
	// destination files are preserved (merge semantics).
	Mirror bool

	// DryRun previews the plan without modifying the filesystem.
	DryRun bool
}

// DefaultOptions returns the default sync options: merge mode, real run.
func DefaultOptions() Options {
	return Options{}
}

// Mode returns the human label for the effective mode.
func (o Options) Mode() string {
	if o.Mirror {
		return "mirror"
	}
	return "merge"
}
