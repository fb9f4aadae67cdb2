package alert

import (
	"fmt"
	"time"

	"github.com/jhoicas/Avicola-api/internal/domain/entity"
)

// dayScoped indica qué tipos de condición se deduplican por día calendario:
// una vacunación vencida vuelve a alertar una vez al día, no una sola vez en la vida.
var dayScoped = map[string]bool{
	entity.NotificationVaccinationDue:     true,
	entity.NotificationVaccinationOverdue: true,
	entity.NotificationTaskDue:            true,
	entity.NotificationTaskOverdue:        true,
}

// DayScoped reporta si condType re-alerta por día calendario.
// Para low_stock no hay scope: se suprime mientras exista una notificación no leída.
func DayScoped(condType string) bool {
	return dayScoped[condType]
}

// Key deriva la clave de deduplicación de una condición detectada.
// Formato: "<tipo>:<entidad>" o "<tipo>:<entidad>:<yyyy-mm-dd>" si el tipo es diario.
// El userID no forma parte de la clave porque las notificaciones ya están
// particionadas por usuario en el almacén.
func Key(condType, entityID string, day time.Time) string {
	if DayScoped(condType) {
		return fmt.Sprintf("%s:%s:%s", condType, entityID, day.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s:%s", condType, entityID)
}
