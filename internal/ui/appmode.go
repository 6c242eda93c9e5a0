package ui

// AppMode represents the top-level input mode.
type AppMode int

const (
	ModeWorkspace AppMode = iota
	ModeCatalog
)

func (m AppMode) String() string {
	switch m {
	case ModeWorkspace:
		return "Workspace"
	case ModeCatalog:
		return "Catalog"
	default:
		return "Unknown"
	}
}
