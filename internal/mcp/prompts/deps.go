package prompts

// Config holds settings that shape prompt text.
type Config struct {
	ArchiveBaseURL       string
	DefaultSnapshotLimit int
}
