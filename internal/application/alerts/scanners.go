package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Avicola-api/internal/domain/entity"
	"github.com/jhoicas/Avicola-api/internal/domain/repository"
)

// Condition es una condición digna de alerta detectada por un escáner:
// el par (Type, EntityID) identifica la instancia para la deduplicación.
type Condition struct {
	Type     string
	EntityID string
	Title    string
	Message  string
	Link     string
}

// Scanner es un detector puro sobre el estado actual: sin estado propio, sin mutaciones,
// seguro de invocar repetidamente. Cada dominio (stock, vacunación, tareas) tiene el suyo.
type Scanner interface {
	Name() string
	Scan(ctx context.Context, userID string, today time.Time) ([]Condition, error)
}

// daysUntil diferencia en días calendario entre hoy y la fecha objetivo
// (negativo si ya pasó). Compara fechas, no instantes.
func daysUntil(today, target time.Time) int {
	ty, tm, td := today.Date()
	y, m, d := target.Date()
	t0 := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	t1 := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(t1.Sub(t0).Hours() / 24)
}

// LowStockScanner detecta ítems con quantity <= minimum_stock.
// La presencia de la condición es booleana: no hay ranking de severidad.
type LowStockScanner struct {
	items repository.InventoryItemRepository
}

// NewLowStockScanner construye el escáner.
func NewLowStockScanner(items repository.InventoryItemRepository) *LowStockScanner {
	return &LowStockScanner{items: items}
}

func (s *LowStockScanner) Name() string { return "low_stock" }

func (s *LowStockScanner) Scan(ctx context.Context, userID string, _ time.Time) ([]Condition, error) {
	items, err := s.items.ListBelowMinimum(ctx, userID)
	if err != nil {
		return nil, err
	}
	conds := make([]Condition, 0, len(items))
	for _, it := range items {
		min := ""
		if it.MinimumStock != nil {
			min = it.MinimumStock.String()
		}
		conds = append(conds, Condition{
			Type:     entity.NotificationLowStock,
			EntityID: it.ID,
			Title:    "Stock bajo: " + it.Name,
			Message:  fmt.Sprintf("Quedan %s %s de %s (mínimo %s)", it.Quantity.String(), it.Unit, it.Name, min),
			Link:     "/inventory/" + it.ID,
		})
	}
	return conds, nil
}

// VaccinationScanner detecta vacunaciones próximas a vencer o vencidas.
// Próxima: 0 <= días restantes <= ventana; vencida: días restantes < 0.
type VaccinationScanner struct {
	vaccinations  repository.VaccinationRepository
	dueWindowDays int
}

// NewVaccinationScanner construye el escáner con la ventana de política (ej. 3 días).
func NewVaccinationScanner(vaccinations repository.VaccinationRepository, dueWindowDays int) *VaccinationScanner {
	return &VaccinationScanner{vaccinations: vaccinations, dueWindowDays: dueWindowDays}
}

func (s *VaccinationScanner) Name() string { return "vaccination" }

func (s *VaccinationScanner) Scan(ctx context.Context, userID string, today time.Time) ([]Condition, error) {
	list, err := s.vaccinations.ListScheduledByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var conds []Condition
	for _, v := range list {
		days := daysUntil(today, v.ScheduledDate)
		switch {
		case days < 0:
			conds = append(conds, Condition{
				Type:     entity.NotificationVaccinationOverdue,
				EntityID: v.ID,
				Title:    "Vacunación vencida: " + v.VaccineName,
				Message:  fmt.Sprintf("La vacunación %s estaba programada para el %s", v.VaccineName, v.ScheduledDate.Format("2006-01-02")),
				Link:     "/vaccinations/" + v.ID,
			})
		case days <= s.dueWindowDays:
			conds = append(conds, Condition{
				Type:     entity.NotificationVaccinationDue,
				EntityID: v.ID,
				Title:    "Vacunación próxima: " + v.VaccineName,
				Message:  fmt.Sprintf("La vacunación %s está programada para el %s", v.VaccineName, v.ScheduledDate.Format("2006-01-02")),
				Link:     "/vaccinations/" + v.ID,
			})
		}
	}
	return conds, nil
}

// TaskScanner misma lógica de próxima/vencida sobre tareas pendientes con fecha límite.
type TaskScanner struct {
	tasks         repository.FarmTaskRepository
	dueWindowDays int
}

// NewTaskScanner construye el escáner.
func NewTaskScanner(tasks repository.FarmTaskRepository, dueWindowDays int) *TaskScanner {
	return &TaskScanner{tasks: tasks, dueWindowDays: dueWindowDays}
}

func (s *TaskScanner) Name() string { return "task" }

func (s *TaskScanner) Scan(ctx context.Context, userID string, today time.Time) ([]Condition, error) {
	list, err := s.tasks.ListPendingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var conds []Condition
	for _, t := range list {
		days := daysUntil(today, t.DueDate)
		switch {
		case days < 0:
			conds = append(conds, Condition{
				Type:     entity.NotificationTaskOverdue,
				EntityID: t.ID,
				Title:    "Tarea vencida: " + t.Title,
				Message:  fmt.Sprintf("La tarea %q venció el %s", t.Title, t.DueDate.Format("2006-01-02")),
				Link:     "/tasks/" + t.ID,
			})
		case days <= s.dueWindowDays:
			conds = append(conds, Condition{
				Type:     entity.NotificationTaskDue,
				EntityID: t.ID,
				Title:    "Tarea próxima a vencer: " + t.Title,
				Message:  fmt.Sprintf("La tarea %q vence el %s", t.Title, t.DueDate.Format("2006-01-02")),
				Link:     "/tasks/" + t.ID,
			})
		}
	}
	return conds, nil
}
