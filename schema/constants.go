package schema

// Custom string types for type safety.
type (
	// Era classifies a repository relative to the AI-tooling cutoff.
	Era string

	// SignalCategory represents one of the commit-message keyword tables.
	SignalCategory string

	// OutputMode represents the format of the raw data export.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// EraCutoffYear splits repositories into pre-AI and post-AI populations.
// Repos created before January 2022 are pre-AI; 2022 onward is post-AI.
const EraCutoffYear = 2022

// All eras supported.
const (
	PreAIEra  Era = "pre-ai"
	PostAIEra Era = "post-ai"
)

// All signal categories supported.
const (
	DebtSignals        SignalCategory = "debt"
	BugSignals         SignalCategory = "bug"
	RevertSignals      SignalCategory = "revert"
	FrustrationSignals SignalCategory = "frustration"
	PositiveSignals    SignalCategory = "positive"
)

// AllSignalCategories lists categories in report order.
var AllSignalCategories = []SignalCategory{
	DebtSignals,
	BugSignals,
	RevertSignals,
	FrustrationSignals,
	PositiveSignals,
}

// All output modes supported for raw data export.
const (
	MarkdownOut OutputMode = "markdown" // default
	JSONOut     OutputMode = "json"
	CSVOut      OutputMode = "csv"
	ParquetOut  OutputMode = "parquet"
)

// All run-tracking backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	MarkdownOut: {},
	JSONOut:     {},
	CSVOut:      {},
	ParquetOut:  {},
}

// ValidDatabaseBackends lists all valid run-tracking backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
