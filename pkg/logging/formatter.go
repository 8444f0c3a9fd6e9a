/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatters. CustomFormatter prints colored, sorted key=value
output; LearnerFormatter adds a short tag for learning events.
*/

package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomFormatter provides readable, structured logging output
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format formats a log entry
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.format(entry, ""), nil
}

func (f *CustomFormatter) format(entry *logrus.Entry, tag string) []byte {
	var output strings.Builder

	if f.Timestamp {
		output.WriteString(f.paint(36, entry.Time.Format("2006-01-02 15:04:05.000")))
		output.WriteByte(' ')
	}

	output.WriteString(f.paint(levelColor(entry.Level), strings.ToUpper(entry.Level.String())))
	output.WriteByte(' ')

	if tag != "" {
		output.WriteString(f.paint(35, "["+tag+"]"))
		output.WriteByte(' ')
	}

	if f.Caller && entry.HasCaller() {
		output.WriteString(f.paint(33, fmt.Sprintf("[%s:%d]", entry.Caller.File, entry.Caller.Line)))
		output.WriteByte(' ')
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteByte(' ')
		output.WriteString(f.fields(entry.Data))
	}

	output.WriteByte('\n')
	return []byte(output.String())
}

func (f *CustomFormatter) paint(color int, s string) string {
	if !f.Colors {
		return s
	}
	return fmt.Sprintf("\033[%dm%s\033[0m", color, s)
}

var levelColors = map[logrus.Level]int{
	logrus.InfoLevel:  32,
	logrus.WarnLevel:  33,
	logrus.ErrorLevel: 31,
	logrus.FatalLevel: 35,
	logrus.PanicLevel: 35,
}

func levelColor(level logrus.Level) int {
	if c, ok := levelColors[level]; ok {
		return c
	}
	return 37
}

// fields renders key=value pairs sorted by key
func (f *CustomFormatter) fields(data logrus.Fields) string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.paint(34, key))
		b.WriteByte('=')
		b.WriteString(f.paint(32, value(data[key])))
	}
	return b.String()
}

// value shortens long strings and byte slices
func value(v interface{}) string {
	switch v := v.(type) {
	case time.Time:
		return v.Format("15:04:05.000")
	case string:
		if len(v) > 50 {
			return v[:50] + "..."
		}
		return v
	case []byte:
		if len(v) > 20 {
			return fmt.Sprintf("[%d bytes]", len(v))
		}
		return fmt.Sprintf("%x", v)
	default:
		return fmt.Sprint(v)
	}
}

// LearnerFormatter tags learning events so long runs are easy to scan
type LearnerFormatter struct {
	CustomFormatter
}

// Format formats a log entry with an event tag
func (f *LearnerFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.format(entry, eventTag(entry.Message)), nil
}

func eventTag(message string) string {
	switch {
	case strings.HasPrefix(message, "Query round"):
		return "ROUND"
	case strings.HasPrefix(message, "Conjecture"):
		return "CONJ"
	case strings.HasPrefix(message, "Counterexample"):
		return "CEX"
	case strings.HasPrefix(message, "Samples"):
		return "SAMPLES"
	case strings.HasPrefix(message, "Statistics"):
		return "STATS"
	case strings.Contains(message, "engine"):
		return "ENGINE"
	default:
		return ""
	}
}
