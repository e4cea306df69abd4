package domain

import (
	"fmt"
	"path/filepath"
)

// Directory and file names for kanban.
const (
	KanbanDirName  = ".kanban"     // Per-project data directory
	GlobalDirName  = "kanban"      // Directory under XDG_CONFIG_HOME
	ConfigFileName = "config.toml" // Config file name
)

// ProjectKanbanDir returns the kanban directory path for a project root.
func ProjectKanbanDir(root string) string {
	return filepath.Join(root, KanbanDirName)
}

// GlobalKanbanDir returns the global kanban directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalKanbanDir(configHome string) string {
	return filepath.Join(configHome, GlobalDirName)
}

// StorePath returns the path of the data file inside the kanban directory.
// Absolute file names are returned unchanged.
func StorePath(kanbanDir, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(kanbanDir, file)
}

// ItemLogPath returns the path to the per-item log file.
func ItemLogPath(kanbanDir string, itemID int) string {
	return filepath.Join(kanbanDir, "logs", fmt.Sprintf("item-%d.log", itemID))
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(kanbanDir string) string {
	return filepath.Join(kanbanDir, "logs", "kanban.log")
}
