package config

const (
	defaultRootDir         = "."
	defaultStateDir        = "~/.local/share/rootsweep"
	defaultConfigPath      = "~/.config/rootsweep/config.toml"
	projectConfigName      = "rootsweep.toml"
	defaultDuplicatePolicy = PolicyDelete
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"

	journalFileName = "journal.db"
	lockFileName    = "rootsweep.lock"
	logFileName     = "rootsweep.log"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			RootDir:  "",
			StateDir: defaultStateDir,
		},
		Sweep: Sweep{
			DuplicatePolicy:  defaultDuplicatePolicy,
			CreateTargetDirs: false,
			Journal:          true,
			Lock:             true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
