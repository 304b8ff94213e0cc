package core

// Logger is any service that can log messages.
// Extra args may be errors, maps of data or the request Principal.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Principal identifies the authenticated caller of a request.
type Principal struct {
	Subject string
	Role    string
}
