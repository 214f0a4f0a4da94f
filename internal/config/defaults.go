package config

const (
	environmentDevelopment = "development"
	environmentProduction  = "production"

	defaultBindHost               = "0.0.0.0"
	defaultBindPort               = "5454"
	defaultReadTimeoutSeconds     = 15
	defaultWriteTimeoutSeconds    = 120
	defaultShutdownTimeoutSeconds = 5
	defaultStateDir               = "~/.local/share/findex"
	defaultLogDir                 = "~/.local/share/findex/logs"
	defaultYtDlpBinary            = "yt-dlp"
	defaultFetchTimeoutSeconds    = 60
	defaultLanguage               = "en"
	defaultJournalRetentionDays   = 30
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Environment: environmentProduction,
		Server: Server{
			Bind:                   defaultBindHost + ":" + defaultBindPort,
			CORSOrigins:            []string{"*"},
			ReadTimeoutSeconds:     defaultReadTimeoutSeconds,
			WriteTimeoutSeconds:    defaultWriteTimeoutSeconds,
			ShutdownTimeoutSeconds: defaultShutdownTimeoutSeconds,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Fetch: Fetch{
			YtDlpBinary:     defaultYtDlpBinary,
			TimeoutSeconds:  defaultFetchTimeoutSeconds,
			DefaultLanguage: defaultLanguage,
		},
		Journal: Journal{
			Enabled:       true,
			RetentionDays: defaultJournalRetentionDays,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
