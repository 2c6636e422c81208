package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldModel       = "model"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldTxCount     = "transaction_count"
	FieldSeriesLen   = "series_length"
	FieldActualCents = "actual_cents"
	FieldRemainder   = "forecast_cents"
	FieldEstimate    = "estimate"
	FieldClosed      = "month_closed"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentEstimate = "estimate"
	ComponentForecast = "forecast"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentExport   = "export"
	ComponentCache    = "cache"
)
