package config

// Default returns the built-in configuration used when no file exists.
// Values mirror the editor's historical defaults.
func Default() Config {
	return Config{
		Converter: Converter{
			UesavePath: "~/.cargo/bin/uesave",
		},
		Catalog: Catalog{
			MappingPath:    "mapping.yaml",
			MasterListPath: "master_list.txt",
			AllowUpdating:  true,
			ValidationLog:  "missing_subcategories.log",
		},
		Paths: Paths{
			BackupDir: "Save_Backup",
			LogDir:    "logs",
			HistoryDB: "logs/history.db",
		},
		UI: UI{
			Transparency:    0.7,
			BackgroundColor: "#000001",
			DarkMode:        true,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}
