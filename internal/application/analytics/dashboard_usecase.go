// Package analytics implementa las consultas agregadas de los tableros y el
// historial de notificaciones.
package analytics

import (
	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
)

// DashboardUseCase consultas de tableros.
type DashboardUseCase struct {
	dashRepo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashRepo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{dashRepo: dashRepo}
}

// Stats devuelve los contadores agregados. Es el mismo snapshot que se
// difunde por los canales de tablero cuando cambian los trabajos.
func (uc *DashboardUseCase) Stats() (*dto.DashboardStatsResponse, error) {
	stats, err := uc.dashRepo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsResponse{
		JobsByStatus:      stats.JobsByStatus,
		PendingInvoices:   stats.PendingInvoices,
		OpenSubstitutions: stats.OpenSubstitutions,
	}, nil
}

// NotificationUseCase consultas del historial de notificaciones de un usuario.
type NotificationUseCase struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(notifRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifRepo: notifRepo}
}

// ListByUser lista las notificaciones del usuario, más recientes primero.
func (uc *NotificationUseCase) ListByUser(userID string, limit, offset int) ([]*dto.NotificationResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.notifRepo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n))
	}
	return out, nil
}

// MarkRead marca una notificación del usuario como leída.
func (uc *NotificationUseCase) MarkRead(id, userID string) error {
	return uc.notifRepo.MarkRead(id, userID)
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Severity:  n.Severity,
		RefID:     n.RefID,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
