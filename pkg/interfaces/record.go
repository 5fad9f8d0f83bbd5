package interfaces

// Record is the host record contract the translation accessors operate on.
// Implementations expose raw column storage; persistence stays with the host.
type Record interface {
	// HasColumn reports whether the underlying storage defines a native
	// column with the given name.
	HasColumn(name string) bool
	Column(name string) any
	// SetColumn stores value in the named column. It fails when the column
	// cannot hold the value, so callers never persist a stale record.
	SetColumn(name string, value any) error
}
