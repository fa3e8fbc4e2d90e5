package fab

// Reporter receives the human-readable status lines produced at each
// decision point of a conversion.
type Reporter interface {
	Info(msg string)
	Success(msg string)
	Warning(msg string)
	Error(msg string)
}

// NopReporter discards all status lines.
type NopReporter struct{}

func (NopReporter) Info(string)    {}
func (NopReporter) Success(string) {}
func (NopReporter) Warning(string) {}
func (NopReporter) Error(string)   {}
