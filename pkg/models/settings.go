package models

// Settings represents the application configuration
type Settings struct {
	Editor    EditorSettings    `yaml:"editor"`
	Container ContainerSettings `yaml:"container"`
	UI        UISettings        `yaml:"ui"`
}

// EditorSettings controls text-entry behavior
type EditorSettings struct {
	LineLimit int `yaml:"line_limit"`
}

// ContainerSettings controls the persisted container format
type ContainerSettings struct {
	Extension string `yaml:"extension"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowGrid    bool   `yaml:"show_grid"`
	DefaultView string `yaml:"default_view"` // "styled" or "source"
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Editor: EditorSettings{
			LineLimit: 80,
		},
		Container: ContainerSettings{
			Extension: ".xedit",
		},
		UI: UISettings{
			ShowGrid:    false,
			DefaultView: string(ViewModeStyled),
		},
	}
}
