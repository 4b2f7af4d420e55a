// Package production implementa los casos de uso del equipo de producción:
// trabajos, sustituciones de material y entregas. Cada mutación relevante se
// difunde en vivo por los tópicos correspondientes.
package production

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
	"github.com/tu-usuario/imprenta-pro/internal/application/notify"
	"github.com/tu-usuario/imprenta-pro/internal/domain"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
	"github.com/tu-usuario/imprenta-pro/internal/realtime"
	"github.com/tu-usuario/imprenta-pro/pkg/logger"
)

// Umbrales de alerta de vencimiento.
const (
	deadlineWarningDays  = 3
	deadlineCriticalDays = 1
)

// validJobTransitions transiciones de estado permitidas.
var validJobTransitions = map[string][]string{
	entity.JobStatusPending:    {entity.JobStatusInProgress, entity.JobStatusCancelled},
	entity.JobStatusInProgress: {entity.JobStatusQuality, entity.JobStatusCancelled},
	entity.JobStatusQuality:    {entity.JobStatusInProgress, entity.JobStatusCompleted},
	entity.JobStatusCompleted:  {entity.JobStatusDelivered},
}

// JobUseCase casos de uso de trabajos de producción.
type JobUseCase struct {
	jobRepo  repository.JobRepository
	dashRepo repository.DashboardRepository
	hub      *realtime.Hub
	notifier *notify.Notifier
	log      *logger.Logger
}

// NewJobUseCase construye el caso de uso.
func NewJobUseCase(
	jobRepo repository.JobRepository,
	dashRepo repository.DashboardRepository,
	hub *realtime.Hub,
	notifier *notify.Notifier,
	log *logger.Logger,
) *JobUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &JobUseCase{jobRepo: jobRepo, dashRepo: dashRepo, hub: hub, notifier: notifier, log: log}
}

// Create registra un trabajo nuevo. Si tiene asignado, se le notifica y su
// tablero de producción recibe la alerta de trabajo nuevo.
func (uc *JobUseCase) Create(in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if in.ClientID == "" || in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	job := &entity.Job{
		ID:         uuid.New().String(),
		ClientID:   in.ClientID,
		Title:      in.Title,
		Status:     entity.JobStatusPending,
		Progress:   0,
		AssigneeID: in.AssigneeID,
		DueDate:    in.DueDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.jobRepo.Create(job); err != nil {
		return nil, err
	}

	if job.AssigneeID != "" {
		if err := uc.notifier.JobAssigned(job.AssigneeID, job.ID, job.Title); err != nil {
			uc.log.Warn().Err(err).Str("job_id", job.ID).Msg("notificación de asignación fallida")
		}
		uc.hub.Broadcast(
			realtime.DashboardTopic(entity.RoleProduction, job.AssigneeID),
			realtime.NewEvent(realtime.EventNewJobAlert, map[string]any{"job_id": job.ID, "title": job.Title}),
		)
	}

	return ToJobResponse(job), nil
}

// Get devuelve un trabajo por ID.
func (uc *JobUseCase) Get(id string) (*dto.JobResponse, error) {
	job, err := uc.jobRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	return ToJobResponse(job), nil
}

// ListByStatus lista trabajos por estado.
func (uc *JobUseCase) ListByStatus(status string, limit, offset int) ([]*dto.JobResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.jobRepo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.JobResponse, 0, len(list))
	for _, j := range list {
		out = append(out, ToJobResponse(j))
	}
	return out, nil
}

// UpdateStatus transiciona el estado del trabajo, difunde el cambio al tópico
// del trabajo y actualiza los contadores del tablero del asignado.
func (uc *JobUseCase) UpdateStatus(id string, newStatus string) (*dto.JobResponse, error) {
	job, err := uc.jobRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	if !transitionAllowed(job.Status, newStatus) {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.jobRepo.UpdateStatus(id, newStatus); err != nil {
		return nil, err
	}
	job.Status = newStatus
	job.UpdatedAt = time.Now()

	uc.hub.Broadcast(realtime.JobTopic(job.ID), realtime.JobStatusEvent(job.ID, newStatus))
	uc.pushJobCounts(job.AssigneeID)

	return ToJobResponse(job), nil
}

// UpdateProgress registra el avance (0-100) y lo difunde al tópico del trabajo.
func (uc *JobUseCase) UpdateProgress(id string, progress int) (*dto.JobResponse, error) {
	if progress < 0 || progress > 100 {
		return nil, domain.ErrInvalidInput
	}
	job, err := uc.jobRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.jobRepo.UpdateProgress(id, progress); err != nil {
		return nil, err
	}
	job.Progress = progress
	job.UpdatedAt = time.Now()

	uc.hub.Broadcast(realtime.JobTopic(job.ID), realtime.JobProgressEvent(job.ID, progress))

	return ToJobResponse(job), nil
}

// Assign asigna el trabajo a un usuario y le notifica.
func (uc *JobUseCase) Assign(id, assigneeID string) (*dto.JobResponse, error) {
	if assigneeID == "" {
		return nil, domain.ErrInvalidInput
	}
	job, err := uc.jobRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.jobRepo.UpdateAssignee(id, assigneeID); err != nil {
		return nil, err
	}
	job.AssigneeID = assigneeID

	if err := uc.notifier.JobAssigned(assigneeID, job.ID, job.Title); err != nil {
		uc.log.Warn().Err(err).Str("job_id", job.ID).Msg("notificación de asignación fallida")
	}
	return ToJobResponse(job), nil
}

// ScanDeadlines revisa trabajos abiertos próximos a vencer y emite alertas a
// sus asignados: warning a 3 días, critical a 1 día. Devuelve cuántas alertas
// se emitieron. Pensado para invocarse periódicamente.
func (uc *JobUseCase) ScanDeadlines(now time.Time) (int, error) {
	jobs, err := uc.jobRepo.ListOpenDueBefore(now.AddDate(0, 0, deadlineWarningDays))
	if err != nil {
		return 0, err
	}
	emitted := 0
	for _, job := range jobs {
		if job.AssigneeID == "" || !job.IsOpen() {
			continue
		}
		severity := entity.SeverityWarning
		if job.DueDate.Before(now.AddDate(0, 0, deadlineCriticalDays)) {
			severity = entity.SeverityCritical
		}
		if err := uc.notifier.DeadlineApproaching(job.AssigneeID, job.ID, job.Title, severity); err != nil {
			uc.log.Warn().Err(err).Str("job_id", job.ID).Msg("alerta de deadline fallida")
			continue
		}
		emitted++
	}
	return emitted, nil
}

// pushJobCounts difunde los contadores de trabajos al tablero del usuario.
func (uc *JobUseCase) pushJobCounts(userID string) {
	if userID == "" {
		return
	}
	stats, err := uc.dashRepo.Stats()
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudieron calcular contadores de tablero")
		return
	}
	uc.hub.Broadcast(
		realtime.DashboardTopic(entity.RoleProduction, userID),
		realtime.JobCountEvent(stats.JobsByStatus),
	)
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range validJobTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ToJobResponse mapea la entidad al DTO (también snapshot inicial del canal).
func ToJobResponse(j *entity.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:         j.ID,
		ClientID:   j.ClientID,
		QuoteID:    j.QuoteID,
		Title:      j.Title,
		Status:     j.Status,
		Progress:   j.Progress,
		AssigneeID: j.AssigneeID,
		DueDate:    j.DueDate,
		CreatedAt:  j.CreatedAt,
		UpdatedAt:  j.UpdatedAt,
	}
}
