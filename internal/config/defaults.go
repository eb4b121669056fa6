package config

const (
	defaultDataFile  = "books_data.json"
	defaultLogFormat = "console"
	defaultLogLevel  = "warn"
	defaultColor     = ColorAuto
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Storage: Storage{
			DataFile: defaultDataFile,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Display: Display{
			Color: defaultColor,
		},
	}
}
