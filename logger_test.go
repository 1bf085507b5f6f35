package glitchsort_test

import (
	"bytes"
	"context"
	"image"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	gs "github.com/setanarut/glitchsort"
)

func TestLogger_DefaultSilent(t *testing.T) {
	gs.SetLogger(nil)
	require.False(t, gs.Logger().Enabled(context.Background(), slog.LevelError))
}

func TestLogger_ReceivesPipelineEvents(t *testing.T) {
	var buf bytes.Buffer
	gs.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer gs.SetLogger(nil)

	// Two rows of mid-gray pixels, one run per row.
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for i := range img.Pix {
		img.Pix[i] = 100
	}
	opt := gs.DefaultOptions()
	opt.Workers = 2
	require.NoError(t, gs.NewSorter(img).Build(context.Background(), opt))
	require.Contains(t, buf.String(), "msg=mask")
	require.Contains(t, buf.String(), "runs=2")
	require.Contains(t, buf.String(), "msg=\"sorted image\"")
}
