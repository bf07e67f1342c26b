package log

// Common field names for structured logging
const (
	FieldComponent    = "component"
	FieldRequestID    = "request_id"
	FieldClientIP     = "client_ip"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldStatusCode   = "status_code"
	FieldDuration     = "duration_ms"
	FieldError        = "error"
	FieldOperation    = "operation"
	FieldYear         = "year"
	FieldMonthIndex   = "month_index"
	FieldCategory     = "category"
	FieldAmount       = "amount"
	FieldInstallments = "installments"
	FieldVersion      = "version"
	FieldSlot         = "slot"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
	ComponentAdvisor = "advisor"
	ComponentExport  = "export"
)

// Operations defines standard operation names
const (
	OpSetIncome  = "set_income"
	OpSetExpense = "set_expense"
	OpApplyTx    = "apply_transaction"
	OpImport     = "import"
	OpExport     = "export"
	OpSave       = "save"
	OpLoad       = "load"
	OpSync       = "sync"
	OpAdvice     = "advice"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
)
