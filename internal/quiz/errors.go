package quiz

import "fmt"

// ConfigError reports a malformed catalog. It is only ever returned while a
// catalog or navigator is being constructed.
type ConfigError struct {
	Source string // file path or "embedded"; empty when built in code
	Msg    string
	Err    error
}

func (e *ConfigError) Error() string {
	prefix := "catalog"
	if e.Source != "" {
		prefix = fmt.Sprintf("catalog %s", e.Source)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Msg)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}
