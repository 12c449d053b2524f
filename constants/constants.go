package constants

import "os"

const AppName = "songtask"

const (
	DefaultLogLevel    = "info"
	DefaultFormat      = "text"
	DefaultPairing     = "fifo"
	DefaultPitchPolicy = "reject"
	DefaultListenAddr  = ":8080"
)

// Environment overrides, applied over the config file.
const (
	EnvConfigPath = "SONGTASK_CONFIG"
	EnvLogLevel   = "SONGTASK_LOG_LEVEL"
	EnvFormat     = "SONGTASK_FORMAT"
	EnvListenAddr = "SONGTASK_LISTEN"
)

// MaxUploadSize caps request bodies accepted by serve.
const MaxUploadSize = 16 * 1024 * 1024

func GetConfigPath() string {
	return os.Getenv(EnvConfigPath)
}
