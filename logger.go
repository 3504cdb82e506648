package fluri

import (
	"encoding/json"
	"fmt"
	"path"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// logger is an active logging object that generates lines of output for a
// `Registry`.
type logger struct {
	r     *Registry
	mutex *sync.Mutex
}

// newLogger returns a new instance of the `logger` with the r.
func newLogger(r *Registry) *logger {
	return &logger{
		r:     r,
		mutex: &sync.Mutex{},
	}
}

// log logs the m at the level with the optional extras.
func (l *logger) log(
	level LoggerLevel,
	m string,
	extras ...map[string]interface{},
) {
	if level < l.r.LoggerLowestLevel || l.r.LoggerOutput == nil {
		return
	}

	fields := map[string]interface{}{}
	for _, extra := range extras {
		for k, v := range extra {
			fields[k] = v
		}
	}

	_, file, line, _ := runtime.Caller(1)

	fields["app_name"] = l.r.AppName
	fields["time"] = time.Now().UnixNano()
	fields["level"] = level.String()
	fields["file"] = path.Base(file)
	fields["line"] = strconv.Itoa(line)
	fields["message"] = m

	var (
		b   []byte
		err error
	)

	if l.r.DebugMode {
		b, err = json.MarshalIndent(fields, "", "\t")
	} else {
		b, err = json.Marshal(fields)
	}

	if err != nil {
		b = []byte(fmt.Sprintf(
			`{"app_name":%q,"level":"error","message":%q}`,
			l.r.AppName,
			"fluri: failed to marshal log fields: "+err.Error(),
		))
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.r.LoggerOutput.Write(append(b, '\n'))
}

// LoggerLevel is the level of the logger.
type LoggerLevel uint8

// The logger levels.
const (
	LoggerLevelDebug LoggerLevel = iota
	LoggerLevelInfo
	LoggerLevelWarn
	LoggerLevelError
	LoggerLevelFatal
	LoggerLevelPanic
	LoggerLevelOff
)

// String returns the string value of the ll.
func (ll LoggerLevel) String() string {
	switch ll {
	case LoggerLevelDebug:
		return "debug"
	case LoggerLevelInfo:
		return "info"
	case LoggerLevelWarn:
		return "warn"
	case LoggerLevelError:
		return "error"
	case LoggerLevelFatal:
		return "fatal"
	case LoggerLevelPanic:
		return "panic"
	}

	return "off"
}

// ParseLoggerLevel parses the s into a `LoggerLevel`. Unknown values are
// parsed as the `LoggerLevelOff`.
func ParseLoggerLevel(s string) LoggerLevel {
	for ll := LoggerLevelDebug; ll < LoggerLevelOff; ll++ {
		if strings.EqualFold(s, ll.String()) {
			return ll
		}
	}

	return LoggerLevelOff
}
