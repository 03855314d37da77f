package log

// Component names used to tag log lines by subsystem.
const (
	ComponentHTTP    = "http"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
)

// Common structured field keys. Using the same keys everywhere keeps
// log queries simple.
const (
	FieldComponent     = "component"
	FieldError         = "error"
	FieldYear          = "year"
	FieldMonth         = "month"
	FieldCategory      = "category"
	FieldTransactionID = "transaction_id"
	FieldBudget        = "budget"
	FieldActual        = "actual"
	FieldDelta         = "delta"
)
