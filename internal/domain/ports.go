package domain

// Dataset is the full set of persisted work items.
// Epic SubtaskIDs are not trusted on load; links are rebuilt from Subtask.EpicID.
type Dataset struct {
	Tasks    []*Task
	Epics    []*Epic
	Subtasks []*Subtask
}

// Len returns the total number of items in the dataset.
func (d *Dataset) Len() int {
	return len(d.Tasks) + len(d.Epics) + len(d.Subtasks)
}

// MaxID returns the highest item ID in the dataset, or 0 if it is empty.
func (d *Dataset) MaxID() int {
	maxID := 0
	for _, t := range d.Tasks {
		maxID = max(maxID, t.ID)
	}
	for _, e := range d.Epics {
		maxID = max(maxID, e.ID)
	}
	for _, s := range d.Subtasks {
		maxID = max(maxID, s.ID)
	}
	return maxID
}

// DatasetStore persists datasets.
type DatasetStore interface {
	// Load reads the stored dataset. A missing store returns ErrNotInitialized.
	Load() (*Dataset, error)

	// Save replaces the stored dataset.
	Save(data *Dataset) error
}

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	Initialize() error

	// IsInitialized reports whether the store exists.
	IsInitialized() bool
}

// Logger writes operational logs. itemID 0 logs only to the global log.
type Logger interface {
	Info(itemID int, category, msg string)
	Debug(itemID int, category, msg string)
	Warn(itemID int, category, msg string)
	Error(itemID int, category, msg string)
}

// NopLogger discards all log entries.
type NopLogger struct{}

// Info implements Logger.
func (NopLogger) Info(int, string, string) {}

// Debug implements Logger.
func (NopLogger) Debug(int, string, string) {}

// Warn implements Logger.
func (NopLogger) Warn(int, string, string) {}

// Error implements Logger.
func (NopLogger) Error(int, string, string) {}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (default + global + repo).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetRepoConfigInfo returns information about the repository config file.
	GetRepoConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitRepoConfig writes the default config template into the kanban directory.
	InitRepoConfig(cfg *Config) error

	// InitGlobalConfig writes the default config template into the global directory.
	InitGlobalConfig(cfg *Config) error
}
