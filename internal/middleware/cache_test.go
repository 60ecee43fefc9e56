package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorable(t *testing.T) {
	cases := []struct {
		name   string
		status int
		size   int64
		limit  int64
		want   bool
	}{
		{"ok under limit", http.StatusOK, 100, 1024, true},
		{"ok at limit", http.StatusOK, 1024, 1024, true},
		{"ok over limit", http.StatusOK, 2048, 1024, false},
		{"no limit", http.StatusOK, 1 << 30, 0, true},
		{"error status", http.StatusInternalServerError, 10, 1024, false},
		{"not found", http.StatusNotFound, 10, 1024, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, storable(tc.status, tc.size, tc.limit))
		})
	}
}

func TestCaptureWriterTracksFullSize(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 8}

	body := strings.Repeat("x", 20)
	_, err := cw.Write([]byte(body))
	require.NoError(t, err)

	// The client still receives everything; the capture stops at the
	// limit but the size counter keeps the real total so the store
	// decision sees the oversize.
	assert.Equal(t, body, rec.Body.String())
	assert.LessOrEqual(t, int64(cw.buf.Len()), int64(8))
	assert.Equal(t, int64(20), cw.size)
	assert.False(t, storable(cw.status, cw.size, cw.limit))
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"timeSlots":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	_, _, _, ok := decodePayload([]byte("short"))
	assert.False(t, ok)
}
