package log

// LoggerConfig configures level, line pattern, and output appenders.
type LoggerConfig struct {
	Level     string           `mapstructure:"level"`
	Pattern   string           `mapstructure:"pattern"`
	Time      string           `mapstructure:"time"`
	Appenders []AppenderConfig `mapstructure:"appenders"`
}

// AppenderConfig selects one output: "console" (stderr) or "file".
type AppenderConfig struct {
	Type    string         `mapstructure:"type"`
	Options map[string]any `mapstructure:"options"`
}

// FileAppenderOpt are the options of a "file" appender, rotated by
// lumberjack.
type FileAppenderOpt struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// DefaultConfig logs at info level to a rotated file next to the binary's
// working directory.
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:   "info",
		Pattern: "%time [%level] %field%msg\n",
		Time:    "2006-01-02 15:04:05.000",
		Appenders: []AppenderConfig{
			{
				Type: "file",
				Options: map[string]any{
					"filename": "wireview.log",
					"max_size": 10,
				},
			},
		},
	}
}
