package repositories

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBadgerLogger_Routes_To_Slog(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger := NewBadgerLogger(log)
	logger.Warningf("value log %d is full\n", 3)
	logger.Debugf("hidden below info")

	out := buf.String()
	req.Contains(out, "level=WARN")
	req.Contains(out, `msg="value log 3 is full"`)
	req.Contains(out, "component=badger")
	req.NotContains(out, "hidden below info")
}
