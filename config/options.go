package config

const (
	defaultVersion              = "0.1.0"
	defaultLogFile              = "homeshelf.log"
	defaultLogLevel             = "info"
	defaultLogFileMaxSize       = 20
	defaultLogFileMaxBackups    = 3
	defaultLogFileMaxAge        = 28
	defaultLogCompress          = false
	defaultPort                 = 8080
	defaultHost                 = "127.0.0.1"
	defaultData                 = "/var/opt/homeshelf"
	defaultDSN                  = defaultData + "/homeshelf.db"
	defaultLookupEndpoint       = "https://api.itbook.store/1.0"
	defaultLookupTimeoutSeconds = 10
	defaultLookupPoolSize       = 2
)

var Opts *Options

// Why use mapstructure instead of json, if use json as field tags, it can't recgnize the field, since the viper use mapstructure.
// see: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// Version is the version of the application
	Version string `mapstructure:"version"`
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database holding the persisted collections
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory to store data
	Data string `mapstructure:"data"`
	// LookupEndpoint is the base URL of the external book-search service
	LookupEndpoint string `mapstructure:"lookup_endpoint"`
	// LookupTimeout is the per-request timeout for the lookup, in seconds
	LookupTimeout int `mapstructure:"lookup_timeout"`
	// LookupPoolSize is the number of background lookup workers
	LookupPoolSize int `mapstructure:"lookup_pool_size"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		Version:           defaultVersion,
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		DSN:               defaultDSN,
		Port:              defaultPort,
		Host:              defaultHost,
		Data:              defaultData,
		LookupEndpoint:    defaultLookupEndpoint,
		LookupTimeout:     defaultLookupTimeoutSeconds,
		LookupPoolSize:    defaultLookupPoolSize,
	}
	return Opts
}
