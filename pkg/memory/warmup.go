package memory

import (
	"sync"

	"go.uber.org/zap"

	"github.com/go-drift/memlab/pkg/logging"
)

// Warmer performs a one-time warm-up read. The first read after process start
// pays for lazily mapped runtime and probe state; taking it once up front
// keeps that cost out of the first measured baseline.
type Warmer struct {
	once    sync.Once
	reading Reading
}

// Do takes the warm-up reading on the first call and returns it on every call.
func (w *Warmer) Do(s *Sampler) Reading {
	w.once.Do(func() {
		w.reading = s.Read("warmup")
		if w.reading.Available() {
			logging.L().Info("warmup memory footprint", zap.Uint64("bytes", uint64(w.reading.Bytes)))
		} else {
			logging.L().Warn("warmup memory footprint unavailable", zap.Error(w.reading.Err))
		}
	})
	return w.reading
}

var processWarmer Warmer

// WarmUp runs the process-wide warm-up. It is safe to call more than once;
// only the first call reads the probe.
func WarmUp(s *Sampler) Reading {
	return processWarmer.Do(s)
}
