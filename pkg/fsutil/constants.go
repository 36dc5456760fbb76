package fsutil

// File and directory permission constants.
// Dataset files are handed to an external job runner, so they stay group and world readable.
const (
	FileModeDefault = 0o644 // -rw-r--r--: dataset and metadata files
	DirModeDefault  = 0o755 // drwxr-xr-x: output, staging and extra-files directories
)
