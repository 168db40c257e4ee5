package logger

// NullLogger discards everything.
type NullLogger struct{}

var _ Logger = (*NullLogger)(nil)

func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Info(_ string, _ map[string]interface{})  {}
func (l *NullLogger) Warn(_ string, _ map[string]interface{})  {}
func (l *NullLogger) Error(_ error, _ map[string]interface{})  {}
func (l *NullLogger) Fatal(_ error, _ map[string]interface{})  {}
func (l *NullLogger) Debug(_ string, _ map[string]interface{}) {}
func (l *NullLogger) SetLevel(_ Level)                         {}
