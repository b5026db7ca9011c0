package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Level string

const (
	DEBUG Level = "DEBUG"
	INFO  Level = "INFO"
	WARN  Level = "WARN"
	ERROR Level = "ERROR"
)

var levelRank = map[Level]int{DEBUG: 0, INFO: 1, WARN: 2, ERROR: 3}

type Logger struct {
	level  Level
	out    io.Writer
	mu     *sync.Mutex
	fields map[string]interface{}
	exit   func(int)
}

type LogEntry struct {
	Time    string                 `json:"time"`
	Level   string                 `json:"level"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

func New() *Logger {
	return NewWithWriter(os.Stdout, INFO)
}

// NewWithWriter builds a logger that writes entries at or above level to w.
func NewWithWriter(w io.Writer, level Level) *Logger {
	if _, ok := levelRank[level]; !ok {
		level = INFO
	}
	return &Logger{level: level, out: w, mu: &sync.Mutex{}, exit: os.Exit}
}

// ParseLevel maps a config string onto a Level, defaulting to INFO.
func ParseLevel(s string) Level {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := levelRank[l]; ok {
		return l
	}
	return INFO
}

// With returns a child logger that adds the given key/value pairs to every entry.
func (l *Logger) With(args ...interface{}) *Logger {
	child := *l
	child.fields = make(map[string]interface{}, len(l.fields)+len(args)/2)
	for k, v := range l.fields {
		child.fields[k] = v
	}
	for i := 0; i < len(args)-1; i += 2 {
		if key, ok := args[i].(string); ok {
			child.fields[key] = args[i+1]
		}
	}
	return &child
}

func (l *Logger) log(level Level, msg string, args ...interface{}) {
	if levelRank[level] < levelRank[l.level] {
		return
	}

	entry := LogEntry{
		Time:    time.Now().Format(time.RFC3339),
		Level:   string(level),
		Message: msg,
	}

	if len(args) > 0 || len(l.fields) > 0 {
		entry.Data = make(map[string]interface{}, len(l.fields)+len(args)/2)
		for k, v := range l.fields {
			entry.Data[k] = v
		}
		for i := 0; i < len(args)-1; i += 2 {
			if key, ok := args[i].(string); ok {
				if err, isErr := args[i+1].(error); isErr {
					entry.Data[key] = err.Error()
					continue
				}
				entry.Data[key] = args[i+1]
			}
		}
	}

	output, _ := json.Marshal(entry)
	l.mu.Lock()
	fmt.Fprintln(l.out, string(output))
	l.mu.Unlock()
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(INFO, msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(WARN, msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(ERROR, msg, args...)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(DEBUG, msg, args...)
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.log(ERROR, msg, args...)
	l.exit(1)
}

// Discard is a logger for tests that do not inspect output.
func Discard() *Logger {
	return NewWithWriter(io.Discard, ERROR)
}
