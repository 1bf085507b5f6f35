package utils

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/setanarut/glitchsort"
)

func TestWarnFallbackUsesPackageLogger(t *testing.T) {
	var buf bytes.Buffer
	glitchsort.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer glitchsort.SetLogger(nil)

	warnFallback(PaletteMethodKMeans, PaletteMethodDominantColor)
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "method=kmeans")
	require.Contains(t, buf.String(), "fallback=dominantcolor")
}
