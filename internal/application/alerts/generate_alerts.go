package alerts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Avicola-api/internal/application/notification"
	"github.com/jhoicas/Avicola-api/internal/domain"
	"github.com/jhoicas/Avicola-api/internal/domain/alert"
	"github.com/jhoicas/Avicola-api/internal/domain/entity"
	"github.com/jhoicas/Avicola-api/internal/domain/repository"
	"github.com/jhoicas/Avicola-api/pkg/logger"
	"github.com/jhoicas/Avicola-api/pkg/metrics"
)

// GenerateAlertsUseCase corre los escáneres de condiciones y materializa notificaciones
// nuevas, deduplicadas por clave. Es idempotente dentro del scope de cada clave: dos
// ejecuciones seguidas con el mismo estado no crean filas duplicadas, y es seguro
// ejecutarlo en paralelo con escrituras del ledger (solo lee proyecciones y agrega filas).
type GenerateAlertsUseCase struct {
	scanners []Scanner
	notifs   repository.NotificationRepository
	cache    notification.UnreadCountCache // puede ser nil
	log      *logger.Logger
	now      func() time.Time
}

// NewGenerateAlertsUseCase construye el motor de alertas con los escáneres en orden.
func NewGenerateAlertsUseCase(
	scanners []Scanner,
	notifs repository.NotificationRepository,
	cache notification.UnreadCountCache,
	log *logger.Logger,
) *GenerateAlertsUseCase {
	return &GenerateAlertsUseCase{
		scanners: scanners,
		notifs:   notifs,
		cache:    cache,
		log:      log,
		now:      time.Now,
	}
}

// GenerateAlerts escanea y crea las notificaciones que aún no existen.
// Un escáner que falla se registra y se omite (fail-open): los demás siguen corriendo.
// Solo si fallan todos se devuelve ErrScanFailed. Cada inserción es un paso atómico,
// así que una cancelación de contexto no deja filas parciales.
func (uc *GenerateAlertsUseCase) GenerateAlerts(ctx context.Context, userID string) ([]*entity.Notification, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	metrics.AlertSweeps.Inc()
	today := uc.now()

	var conditions []Condition
	failed := 0
	for _, s := range uc.scanners {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		conds, err := s.Scan(ctx, userID, today)
		if err != nil {
			failed++
			metrics.ScannerFailures.WithLabelValues(s.Name()).Inc()
			uc.log.Warn().Err(err).
				Str("scanner", s.Name()).
				Str("user_id", userID).
				Msg("escáner de condiciones falló; se continúa con los demás")
			continue
		}
		conditions = append(conditions, conds...)
	}
	if failed > 0 && failed == len(uc.scanners) {
		return nil, domain.ErrScanFailed
	}

	created := make([]*entity.Notification, 0)
	for _, cond := range conditions {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		key := alert.Key(cond.Type, cond.EntityID, today)
		// Para tipos con scope diario la clave incluye el día: cualquier fila con la misma
		// clave (leída o no) suprime. Para low_stock solo suprime una fila no leída.
		exists, err := uc.notifs.ActiveExists(ctx, userID, key, alert.DayScoped(cond.Type))
		if err != nil {
			uc.log.Error().Err(err).Str("dedup_key", key).Msg("verificación de deduplicación falló")
			continue
		}
		if exists {
			continue
		}

		n := &entity.Notification{
			ID:        uuid.New().String(),
			UserID:    userID,
			Type:      cond.Type,
			Title:     cond.Title,
			Message:   cond.Message,
			Link:      cond.Link,
			DedupKey:  key,
			CreatedAt: uc.now(),
		}
		if err := uc.notifs.Create(ctx, n); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				// Otro barrido concurrente ganó la carrera por esta clave: no es un error.
				continue
			}
			uc.log.Error().Err(err).Str("dedup_key", key).Msg("crear notificación falló")
			continue
		}
		metrics.AlertsGenerated.WithLabelValues(cond.Type).Inc()
		created = append(created, n)
	}

	if len(created) > 0 && uc.cache != nil {
		uc.cache.Invalidate(ctx, userID)
	}
	return created, nil
}
