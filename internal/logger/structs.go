package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `mapstructure:"enabled"          json:"enabled"`
	UseConsoleWriter bool `mapstructure:"useConsoleWriter" json:"useConsoleWriter"`
}

// LogFile implements a file based logger with one rolling file per level group.
type LogFile struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled"`
	Path    string `mapstructure:"path"    json:"path"`

	AccessLog        string `mapstructure:"access"           json:"access"`
	AccessMaxSize    int    `mapstructure:"accessMaxSize"    json:"accessMaxSize"`
	AccessMaxBackups int    `mapstructure:"accessMaxBackups" json:"accessMaxBackups"`
	AccessMaxAge     int    `mapstructure:"accessMaxAge"     json:"accessMaxAge"`

	ErrorLog        string `mapstructure:"error"           json:"error"`
	ErrorMaxSize    int    `mapstructure:"errorMaxSize"    json:"errorMaxSize"`
	ErrorMaxBackups int    `mapstructure:"errorMaxBackups" json:"errorMaxBackups"`
	ErrorMaxAge     int    `mapstructure:"errorMaxAge"     json:"errorMaxAge"`

	InfoLog        string `mapstructure:"info"           json:"info"`
	InfoMaxSize    int    `mapstructure:"infoMaxSize"    json:"infoMaxSize"`
	InfoMaxBackups int    `mapstructure:"infoMaxBackups" json:"infoMaxBackups"`
	InfoMaxAge     int    `mapstructure:"infoMaxAge"     json:"infoMaxAge"`

	TraceLog        string `mapstructure:"trace"           json:"trace"`
	TraceMaxSize    int    `mapstructure:"traceMaxSize"    json:"traceMaxSize"`
	TraceMaxBackups int    `mapstructure:"traceMaxBackups" json:"traceMaxBackups"`
	TraceMaxAge     int    `mapstructure:"traceMaxAge"     json:"traceMaxAge"`

	WarnLog        string `mapstructure:"warn"           json:"warn"`
	WarnMaxSize    int    `mapstructure:"warnMaxSize"    json:"warnMaxSize"`
	WarnMaxBackups int    `mapstructure:"warnMaxBackups" json:"warnMaxBackups"`
	WarnMaxAge     int    `mapstructure:"warnMaxAge"     json:"warnMaxAge"`
}

// Log implements the logger config.
type Log struct {
	LogLevel string `mapstructure:"logLevel" json:"logLevel"` // trace, debug, info, warn, error.
	LogEnv   string `mapstructure:"logEnv"   json:"logEnv"`

	// EnableAccessLogToConsole writes the HTTP access log to the console as well.
	// Does not overrule Console.Enabled.
	EnableAccessLogToConsole bool `mapstructure:"enableAccessLogToConsole" json:"enableAccessLogToConsole"`
	ReportCaller             bool `mapstructure:"reportCaller"             json:"reportCaller"`
	DisableCheckAlive        bool `mapstructure:"disableCheckAlive"        json:"disableCheckAlive"` // do not log /checkalive calls

	// LogQueries logs every SQL statement at debug level, slow ones are always logged.
	LogQueries bool `mapstructure:"logQueries" json:"logQueries"`
	// SlowQueryMS is the threshold in milliseconds above which a query is logged as slow.
	SlowQueryMS int `mapstructure:"slowQueryMS" json:"slowQueryMS"`

	AppName     string `mapstructure:"appName"     json:"appName"`
	ServiceName string `mapstructure:"serviceName" json:"serviceName"`

	// Console used mainly for docker and dev.
	Console Console `mapstructure:"console" json:"console"`

	// File enables rolling log files.
	File LogFile `mapstructure:"file" json:"file"`
}
