// ANSI escape codes
package display

var colorEnabled = true

// SetColorEnabled controls whether ANSI color codes are output
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

const (
	resetCode  = "\x1b[0m"
	redCode    = "\x1b[31m"
	greenCode  = "\x1b[32m"
	yellowCode = "\x1b[33m"
	cyanCode   = "\x1b[36m"
)

func reset() string {
	if colorEnabled {
		return resetCode
	}
	return ""
}

func red() string {
	if colorEnabled {
		return redCode
	}
	return ""
}

func green() string {
	if colorEnabled {
		return greenCode
	}
	return ""
}

func yellow() string {
	if colorEnabled {
		return yellowCode
	}
	return ""
}

func cyan() string {
	if colorEnabled {
		return cyanCode
	}
	return ""
}
