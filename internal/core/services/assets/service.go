package assets

// Kind separates the two asset namespaces. A script and a style may share a
// handle without colliding.
type Kind string

const (
	KindScript Kind = "script"
	KindStyle  Kind = "style"
)

// Asset is a registered script or style handle.
type Asset struct {
	Handle  string   `json:"handle"`
	Kind    Kind     `json:"kind"`
	Source  string   `json:"source"`
	Deps    []string `json:"deps,omitempty"`
	Version string   `json:"version,omitempty"`
}

// IAssetService is an in-memory registry of script/style handles with
// dependency-ordered resolution.
type IAssetService interface {
	Register(kind Kind, handle, source string, deps []string, version string) error
	Deregister(kind Kind, handle string)
	Enqueue(kind Kind, handle string) error
	Dequeue(kind Kind, handle string)
	IsRegistered(kind Kind, handle string) bool
	// Resolve returns the asset plus its transitive dependencies, each
	// dependency before its dependents.
	Resolve(kind Kind, handle string) ([]Asset, error)
	// ResolveEnqueued resolves every enqueued handle of the kind in one
	// ordered pass with no duplicates.
	ResolveEnqueued(kind Kind) ([]Asset, error)
}
