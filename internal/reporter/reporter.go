package reporter

// Reporter defines the interface for diagnostic output.
type Reporter interface {
	Tools(summary ToolSummary)
	BatchStarted(info BatchStartInfo)
	FileStarted(fileCtx FileContext)
	Diagnostic(rep Report)
	Warning(message string)
	Error(err ReporterError)
	BatchComplete(summary BatchSummary)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) Tools(ToolSummary)           {}
func (NullReporter) BatchStarted(BatchStartInfo) {}
func (NullReporter) FileStarted(FileContext)     {}
func (NullReporter) Diagnostic(Report)           {}
func (NullReporter) Warning(string)              {}
func (NullReporter) Error(ReporterError)         {}
func (NullReporter) BatchComplete(BatchSummary)  {}
func (NullReporter) Verbose(string)              {}
