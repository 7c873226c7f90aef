package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(t *testing.T, cfg *LoggerConfig) (Logger, *bytes.Buffer) {
	t.Helper()
	l, err := newLogrusAdapter(cfg)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	l.(*logrusAdapter).entry.Logger.SetOutput(buf)
	return l, buf
}

func TestPatternFormatter(t *testing.T) {
	l, buf := newBufferedLogger(t, &LoggerConfig{
		Level:   "debug",
		Pattern: "[%level] %field%msg\n",
		Time:    "15:04:05",
	})

	l.WithField("iface", "eth0").Infof("capture %s", "started")

	out := buf.String()
	assert.Contains(t, out, "[info]")
	assert.Contains(t, out, "iface=eth0")
	assert.Contains(t, out, "capture started")
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newBufferedLogger(t, &LoggerConfig{
		Level:   "warn",
		Pattern: "%msg\n",
		Time:    "15:04:05",
	})

	l.Debug("hidden")
	l.Warn("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
	assert.False(t, l.IsDebugEnabled())
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	l, err := newLogrusAdapter(&LoggerConfig{
		Level:   "chatty",
		Pattern: "%msg\n",
		Time:    "15:04:05",
	})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, l.(*logrusAdapter).entry.Logger.GetLevel())
}

func TestUnknownAppenderType(t *testing.T) {
	_, err := newLogrusAdapter(&LoggerConfig{
		Level:     "info",
		Pattern:   "%msg\n",
		Time:      "15:04:05",
		Appenders: []AppenderConfig{{Type: "pigeon"}},
	})
	assert.Error(t, err)
}

func TestFileAppenderRequiresFilename(t *testing.T) {
	_, err := newLogrusAdapter(&LoggerConfig{
		Level:     "info",
		Pattern:   "%msg\n",
		Time:      "15:04:05",
		Appenders: []AppenderConfig{{Type: "file"}},
	})
	assert.Error(t, err)
}
