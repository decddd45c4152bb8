package cmd

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/go-drift/memlab/cmd/memlab/internal/config"
	"github.com/go-drift/memlab/pkg/diagnostics"
	"github.com/go-drift/memlab/pkg/factory"
	"github.com/go-drift/memlab/pkg/logging"
	"github.com/go-drift/memlab/pkg/memory"
	"github.com/go-drift/memlab/pkg/render"
	"github.com/go-drift/memlab/pkg/screen"
)

// historyWindow is how much reading history the diagnostics server keeps.
const historyWindow = 2 * time.Minute

// session is a controller plus the optional diagnostics server built from
// the resolved configuration.
type session struct {
	controller *screen.Controller
	sampler    *memory.Sampler
	server     *diagnostics.Server
	history    *memory.History
}

func newSession(res *config.Resolved, hint render.Hint) (*session, error) {
	probe, ok := memory.ProbeByName(res.Probe)
	if !ok {
		return nil, fmt.Errorf("unknown probe %q", res.Probe)
	}
	sampler := memory.NewSampler(probe)
	sampler.WarmupReads = res.WarmupReads

	history := memory.NewHistory(historyWindow, res.Interval)
	ctrl := screen.New(screen.Options{
		Registry: factory.Default(),
		Sampler:  sampler,
		Hint:     hint,
		Interval: res.Interval,
		History:  history,
		Type:     res.ComponentType,
		Count:    res.Count,
	})
	return &session{controller: ctrl, sampler: sampler, history: history}, nil
}

// start mounts the controller and serves diagnostics if configured.
func (s *session) start(port int) error {
	s.controller.Mount()
	if err := s.serve(port); err != nil {
		s.controller.Unmount()
		return err
	}
	return nil
}

// serve starts the diagnostics server. Port 0 leaves it off.
func (s *session) serve(port int) error {
	if port == 0 {
		return nil
	}
	s.server = diagnostics.New(s.controller, s.history)
	actual, err := s.server.Start(port)
	if err != nil {
		return err
	}
	logging.L().Info("diagnostics available", zap.String("url", fmt.Sprintf("http://localhost:%d/state", actual)))
	return nil
}

func (s *session) stop() {
	if s.server != nil {
		s.server.Stop()
	}
	s.controller.Unmount()
	s.controller.Host().Close()
}

func hintFor(deferred bool) render.Hint {
	if deferred {
		return render.Deferred
	}
	return render.Immediate
}
