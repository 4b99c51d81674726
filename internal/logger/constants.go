package logger

// Accepted LOG_LEVEL values. "warning" is an alias of "warn".
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Accepted LOG_FORMAT values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

const (
	DefaultServiceName = "coffee-pos"
	DefaultVersion     = "dev"
	ProductionVersion  = "1.0.0"

	// EnvironmentDev turns on source locations in log lines
	EnvironmentDev        = "dev"
	EnvironmentProduction = "prod"
)

// Attribute keys. Base attributes go on every line; request_id and caller
// are attached per request by WithRequestID and WithCaller.
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyCaller      = "caller"
)
