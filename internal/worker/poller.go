package worker

// poller.go
// Background goroutine that re-fetches the ventas history while any record is
// still in a processing SRI state. The stop condition is re-evaluated on
// every tick and the poller cancels itself once nothing qualifies; the
// circuit breaker keeps it from hammering a downed API.

import (
	"context"
	"sync"
	"time"

	"sripos/internal/dto"
	"sripos/internal/infra"
	"sripos/internal/model"

	"github.com/rs/zerolog/log"
)

const defaultPollInterval = 10 * time.Second

// VentasFuente fetches the history rows the poller watches.
type VentasFuente interface {
	GetVentas(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, error)
}

// PollerConfig holds the poller's dependencies.
type PollerConfig struct {
	Fuente   VentasFuente
	CB       *infra.CircuitBreaker
	Interval time.Duration
	// OnUpdate receives every successful fetch, including the final one.
	OnUpdate func([]model.Venta)
}

// Poller supervises the periodic refresh. Start and Stop are the explicit
// lifecycle hooks tied to the view's mount/unmount.
type Poller struct {
	cfg    PollerConfig
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(cfg PollerConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultPollInterval
	}
	if cfg.CB == nil {
		cfg.CB = infra.NewCircuitBreaker(0, 0, 0)
	}
	return &Poller{cfg: cfg}
}

// Start launches the polling goroutine. A second Start while running is a
// no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.run(pollCtx, cancel, p.done)
	log.Info().Dur("interval", p.cfg.Interval).Msg("poller: started")
}

// Stop tears the poller down and waits for the goroutine to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (p *Poller) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}) {
	defer close(done)
	defer cancel()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("poller: shutting down")
			return
		case <-ticker.C:
			if !p.tick(ctx) {
				log.Info().Msg("poller: no quedan documentos en proceso, deteniendo")
				p.mu.Lock()
				if p.done == done {
					p.cancel = nil
					p.done = nil
				}
				p.mu.Unlock()
				return
			}
		}
	}
}

// tick fetches once and reports whether any record still needs polling.
func (p *Poller) tick(ctx context.Context) bool {
	if p.cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("poller: circuit breaker abierto, tick omitido")
		return true
	}

	var ventas []model.Venta
	err := p.cfg.CB.Execute(func() error {
		resp, err := p.cfg.Fuente.GetVentas(ctx, dto.VentaFilter{})
		if err != nil {
			return err
		}
		ventas = resp
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("poller: fallo al consultar ventas")
		return true
	}

	if p.cfg.OnUpdate != nil {
		p.cfg.OnUpdate(ventas)
	}

	for _, v := range ventas {
		if v.EnProceso() {
			return true
		}
	}
	return false
}
