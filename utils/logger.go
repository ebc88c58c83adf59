/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the logrus logger type used across the project.
type Logger = logrus.Logger

var (
	defaultLevel     = ParseLogLevel(EnvDefaultString("LOG_LEVEL", "info"))
	loggerRegistryMu sync.RWMutex
	loggerRegistry   = map[string]*logrus.Logger{}
)

// EnvDefaultString returns the environment variable value or a default.
func EnvDefaultString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// EnvDefaultBool returns the environment variable as a boolean or a default.
func EnvDefaultBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}

// ParseLogLevel converts a level string into a logrus level, defaulting to info.
func ParseLogLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info", "":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

// NewLogger returns a named logger writing colored, log4j-style lines to
// stderr. Loggers are registered so their level can be changed later by name.
func NewLogger(name string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(defaultLevel)
	l.SetReportCaller(true)
	l.SetFormatter(&ConsoleFormatter{
		LoggerName:      name,
		TimestampFormat: "2006-01-02 15:04:05.000",
		NameWidth:       10,
	})
	RegisterLogger(name, l)
	return l
}

// RegisterLogger stores a logger under a name for later level adjustments.
func RegisterLogger(name string, l *logrus.Logger) {
	loggerRegistryMu.Lock()
	defer loggerRegistryMu.Unlock()
	loggerRegistry[name] = l
}

// SetLoggerLevel sets the level of a registered logger by name. It returns
// false when no logger is registered under the given name.
func SetLoggerLevel(name string, lvlStr string) bool {
	lvl := ParseLogLevel(lvlStr)
	loggerRegistryMu.RLock()
	l, ok := loggerRegistry[name]
	loggerRegistryMu.RUnlock()
	if !ok {
		return false
	}
	l.SetLevel(lvl)
	return true
}

// SetAllLoggersLevel applies the level to every registered logger and makes it
// the default for loggers created afterwards.
func SetAllLoggersLevel(lvl logrus.Level) {
	loggerRegistryMu.RLock()
	for _, l := range loggerRegistry {
		l.SetLevel(lvl)
	}
	loggerRegistryMu.RUnlock()
	defaultLevel = lvl
}

// ConfigureLogLevel parses a level string and applies it to all loggers.
func ConfigureLogLevel(levelStr string) {
	SetAllLoggersLevel(ParseLogLevel(levelStr))
}

const (
	ansiReset   = "\x1b[0m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiMagenta = "\x1b[35m"
	ansiCyan    = "\x1b[36m"
	ansiFaint   = "\x1b[2m"
)

// ConsoleFormatter renders entries as
// "2006-01-02 15:04:05.000   INFO 12345 [main]   DATABASE file.go:42 : msg".
type ConsoleFormatter struct {
	LoggerName      string
	TimestampFormat string
	NameWidth       int
}

func (f *ConsoleFormatter) tsFormat() string {
	if f.TimestampFormat != "" {
		return f.TimestampFormat
	}
	return "2006-01-02 15:04:05.000"
}

// Format implements logrus.Formatter.
func (f *ConsoleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	b.WriteString(time.Now().Format(f.tsFormat()))
	b.WriteByte(' ')
	b.WriteString(colorLevel(padLeft(strings.ToUpper(entry.Level.String()), 7), entry.Level))
	b.WriteByte(' ')
	b.WriteString(colorWrap(fmt.Sprintf("%-6d", os.Getpid()), ansiMagenta))
	b.WriteString(colorWrap("[main] ", ansiMagenta))
	b.WriteString(colorWrap(padLeft(limitRunes(f.LoggerName, f.NameWidth), f.NameWidth), ansiCyan))

	if entry.Caller != nil {
		caller := fmt.Sprintf(" %s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
		b.WriteString(colorWrap(caller, ansiFaint))
	}

	b.WriteString(" : ")
	b.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf(" %s=%v", k, entry.Data[k]))
		}
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func colorWrap(s, code string) string { return code + s + ansiReset }

func colorLevel(s string, level logrus.Level) string {
	switch level {
	case logrus.TraceLevel, logrus.DebugLevel:
		return colorWrap(s, ansiFaint)
	case logrus.InfoLevel:
		return colorWrap(s, ansiGreen)
	case logrus.WarnLevel:
		return colorWrap(s, ansiYellow)
	default:
		return colorWrap(s, ansiRed)
	}
}

func padLeft(s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

func limitRunes(s string, max int) string {
	r := []rune(s)
	if max > 0 && len(r) > max {
		return string(r[len(r)-max:])
	}
	return s
}
