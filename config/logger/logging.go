// Package logger manages the configuration of logging
package logger

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/client9/reopen"
	"github.com/sirupsen/logrus"
)

// Config configures the log level, format, and output destination
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Defaults applied by Init for any field left empty
var defaults = Config{
	Level:  "INFO",
	Format: "default",
	Output: "stdout",
}

// Init initializes the logrus standard logger from the Config,
// falling back to defaults for unset fields
func (l *Config) Init() error {
	if l.Level == "" {
		l.Level = defaults.Level
	}
	if l.Format == "" {
		l.Format = defaults.Format
	}
	if l.Output == "" {
		l.Output = defaults.Output
	}
	level, err := logrus.ParseLevel(strings.ToLower(l.Level))
	if err != nil {
		return fmt.Errorf("unknown log level '%s': %s", l.Level, err)
	}
	var formatter logrus.Formatter
	var output io.Writer
	switch strings.ToLower(l.Format) {
	case "text":
		formatter = &logrus.TextFormatter{}
	case "json":
		formatter = &logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		}
	case "default":
		formatter = &DefaultLogFormatter{
			TimestampFormat: time.RFC3339Nano,
		}
	default:
		return fmt.Errorf("unknown log format '%s'", l.Format)
	}
	switch strings.ToLower(l.Output) {
	case "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		f, err := reopen.NewFileWriter(l.Output)
		if err != nil {
			return fmt.Errorf("error initializing log file '%s': %s", l.Output, err)
		}
		reopenOnSignal(f)
		output = f
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(formatter)
	logrus.SetOutput(output)
	return nil
}

// DefaultLogFormatter delegates formatting to standard go log package
type DefaultLogFormatter struct {
	TimestampFormat string
}

// Format formats the logrus entry by passing it to the "log" package
func (f *DefaultLogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := &bytes.Buffer{}
	logger := log.New(b, "", 0)
	logger.Println(time.Now().Format(f.TimestampFormat) + " " + entry.Message)
	// Panic and Fatal are handled by logrus automatically
	return b.Bytes(), nil
}

// reopenOnSignal reopens the log file when we get SIGUSR1 so that
// external logrotate tooling works as expected
func reopenOnSignal(f *reopen.FileWriter) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGUSR1)
	go func() {
		for {
			<-sig
			f.Reopen()
		}
	}()
}
