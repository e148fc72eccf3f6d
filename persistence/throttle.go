package persistence

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// ThrottledWriter limits the byte rate of an io.Writer. It backs the
// WithIOLimit save option so that large background snapshots do not starve
// foreground IO.
type ThrottledWriter struct {
	w       io.Writer
	limiter *rate.Limiter
}

// NewThrottledWriter wraps w with a bytesPerSec rate limit. The burst equals
// one second of budget.
func NewThrottledWriter(w io.Writer, bytesPerSec int) *ThrottledWriter {
	return &ThrottledWriter{
		w:       w,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec),
	}
}

// Write implements io.Writer, waiting for rate budget in burst-sized chunks.
func (t *ThrottledWriter) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		chunk := len(p)
		if burst := t.limiter.Burst(); chunk > burst {
			chunk = burst
		}
		if err := t.limiter.WaitN(context.Background(), chunk); err != nil {
			return written, err
		}
		n, err := t.w.Write(p[:chunk])
		written += n
		if err != nil {
			return written, err
		}
		p = p[chunk:]
	}
	return written, nil
}
