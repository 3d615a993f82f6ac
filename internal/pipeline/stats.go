package pipeline

// RunStats tracks aggregate counters across a run.
type RunStats struct {
	RunID         string // Logged at start and in the summary, and written to the mapping dump.
	Mapped        int // Keys in the extracted taxonomy.
	Total         int // Source files discovered.
	Copied        int // Files copied (or planned, in dry-run).
	Uncategorized int
	Renamed       int
	Failed        int
	BytesCopied   int64
}
