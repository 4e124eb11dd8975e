package backup

// Archiver packages an ordered list of file paths into a compressed archive
// at the destination path. The core never inspects archive internals; the
// archiver is an external collaborator behind this interface.
type Archiver interface {
	// Archive writes an archive containing exactly the given files.
	Archive(destination string, files []string) error

	// Describe returns the human-readable invocation that Archive would
	// perform, for dry runs.
	Describe(destination string, files []string) string
}

// ManifestStore loads and stores manifests by file path.
type ManifestStore interface {
	// Load reads and decodes the manifest at path.
	Load(path string) (*Manifest, error)

	// Store writes the manifest to path, replacing any previous content.
	// The write must be all-or-nothing: a failure may not leave a partial
	// manifest behind.
	Store(path string, m *Manifest) error
}
