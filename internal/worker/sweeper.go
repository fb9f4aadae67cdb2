package worker

import (
	"context"
	"time"

	"github.com/jhoicas/Avicola-api/internal/application/alerts"
	"github.com/jhoicas/Avicola-api/internal/domain/repository"
	"github.com/jhoicas/Avicola-api/pkg/logger"
)

// AlertSweeper corre la generación de alertas para todos los usuarios en un intervalo
// fijo. Complementa el poll del cliente: cubre a los usuarios sin sesión abierta.
// La generación es idempotente, así que el barrido y el poll pueden solaparse sin
// producir duplicados.
type AlertSweeper struct {
	users     repository.UserRepository
	generate  *alerts.GenerateAlertsUseCase
	log       *logger.Logger
	interval  time.Duration
	batchSize int

	cancel context.CancelFunc
	done   chan struct{}
}

// NewAlertSweeper construye el barrido. batchSize limita cuántos usuarios se
// procesan por ciclo para no monopolizar el pool de conexiones.
func NewAlertSweeper(
	users repository.UserRepository,
	generate *alerts.GenerateAlertsUseCase,
	log *logger.Logger,
	interval time.Duration,
	batchSize int,
) *AlertSweeper {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &AlertSweeper{
		users:     users,
		generate:  generate,
		log:       log,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Start lanza la goroutine del barrido. No hace nada si el intervalo es cero
// (modo solo bajo demanda).
func (s *AlertSweeper) Start() {
	if s.interval <= 0 {
		s.log.Info().Msg("barrido de alertas deshabilitado (solo bajo demanda)")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		s.log.Info().Dur("interval", s.interval).Msg("barrido de alertas iniciado")
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

// Stop detiene el barrido y espera a que termine el ciclo en curso.
func (s *AlertSweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *AlertSweeper) sweep(ctx context.Context) {
	start := time.Now()
	ids, err := s.users.ListIDs(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("barrido: listar usuarios falló")
		return
	}

	created := 0
	for i, userID := range ids {
		if ctx.Err() != nil {
			return
		}
		if i >= s.batchSize {
			// El resto de los usuarios espera al siguiente ciclo.
			s.log.Warn().Int("pending", len(ids)-i).Msg("barrido: lote completo, usuarios pendientes")
			break
		}
		notifs, err := s.generate.GenerateAlerts(ctx, userID)
		if err != nil {
			// Fail-open por usuario: un fallo no detiene el barrido de los demás.
			s.log.Warn().Err(err).Str("user_id", userID).Msg("barrido: generación de alertas falló")
			continue
		}
		created += len(notifs)
	}

	s.log.Info().
		Int("users", len(ids)).
		Int("created", created).
		Dur("elapsed", time.Since(start)).
		Msg("barrido de alertas completado")
}
