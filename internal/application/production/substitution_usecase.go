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

// SubstitutionUseCase casos de uso de sustituciones de material.
type SubstitutionUseCase struct {
	subRepo  repository.SubstitutionRepository
	jobRepo  repository.JobRepository
	userRepo repository.UserRepository
	dashRepo repository.DashboardRepository
	hub      *realtime.Hub
	notifier *notify.Notifier
	log      *logger.Logger
}

// NewSubstitutionUseCase construye el caso de uso.
func NewSubstitutionUseCase(
	subRepo repository.SubstitutionRepository,
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	dashRepo repository.DashboardRepository,
	hub *realtime.Hub,
	notifier *notify.Notifier,
	log *logger.Logger,
) *SubstitutionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SubstitutionUseCase{
		subRepo:  subRepo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		dashRepo: dashRepo,
		hub:      hub,
		notifier: notifier,
		log:      log,
	}
}

// Create registra la propuesta de sustitución de un proveedor. El trabajo debe
// existir y seguir abierto.
func (uc *SubstitutionUseCase) Create(vendorID string, in dto.CreateSubstitutionRequest) (*dto.SubstitutionResponse, error) {
	if in.JobID == "" || in.OriginalMaterial == "" || in.ProposedMaterial == "" {
		return nil, domain.ErrInvalidInput
	}
	job, err := uc.jobRepo.GetByID(in.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	if !job.IsOpen() {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	req := &entity.SubstitutionRequest{
		ID:               uuid.New().String(),
		JobID:            in.JobID,
		VendorID:         vendorID,
		OriginalMaterial: in.OriginalMaterial,
		ProposedMaterial: in.ProposedMaterial,
		Reason:           in.Reason,
		Status:           entity.SubstitutionPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.subRepo.Create(req); err != nil {
		return nil, err
	}
	return toSubstitutionResponse(req), nil
}

// Get devuelve una sustitución por ID.
func (uc *SubstitutionUseCase) Get(id string) (*dto.SubstitutionResponse, error) {
	req, err := uc.subRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return toSubstitutionResponse(req), nil
}

// ListByJob lista las sustituciones asociadas a un trabajo.
func (uc *SubstitutionUseCase) ListByJob(jobID string) ([]*dto.SubstitutionResponse, error) {
	list, err := uc.subRepo.ListByJob(jobID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SubstitutionResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toSubstitutionResponse(r))
	}
	return out, nil
}

// Approve aprueba una sustitución pendiente.
func (uc *SubstitutionUseCase) Approve(id, decidedBy string) (*dto.SubstitutionResponse, error) {
	return uc.decide(id, decidedBy, entity.SubstitutionApproved)
}

// Reject rechaza una sustitución pendiente.
func (uc *SubstitutionUseCase) Reject(id, decidedBy string) (*dto.SubstitutionResponse, error) {
	return uc.decide(id, decidedBy, entity.SubstitutionRejected)
}

// decide resuelve la solicitud, difunde la decisión al tópico de la sustitución
// y notifica a los usuarios del proveedor.
func (uc *SubstitutionUseCase) decide(id, decidedBy, status string) (*dto.SubstitutionResponse, error) {
	req, err := uc.subRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if req.Status != entity.SubstitutionPending {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	req.Status = status
	req.DecidedBy = decidedBy
	req.DecidedAt = &now
	req.UpdatedAt = now
	if err := uc.subRepo.Update(req); err != nil {
		return nil, err
	}

	uc.hub.Broadcast(realtime.SubstitutionTopic(req.ID), realtime.SubstitutionEvent(req.ID, status))
	uc.notifyVendor(req)
	uc.pushDashboard(decidedBy)

	return toSubstitutionResponse(req), nil
}

// pushDashboard refresca el tablero del decisor: la decisión cambió el
// contador de sustituciones abiertas.
func (uc *SubstitutionUseCase) pushDashboard(userID string) {
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
		realtime.DashboardEvent(stats.JobsByStatus, stats.PendingInvoices, stats.OpenSubstitutions),
	)
}

// AddComment difunde un comentario sobre la sustitución a quienes siguen el
// canal. Los comentarios no se persisten, son conversación efímera.
func (uc *SubstitutionUseCase) AddComment(id, userID, comment string) error {
	if comment == "" {
		return domain.ErrInvalidInput
	}
	req, err := uc.subRepo.GetByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	uc.hub.Broadcast(realtime.SubstitutionTopic(id), realtime.CommentEvent(id, userID, comment))
	return nil
}

func (uc *SubstitutionUseCase) notifyVendor(req *entity.SubstitutionRequest) {
	users, err := uc.userRepo.ListByVendor(req.VendorID)
	if err != nil {
		uc.log.Warn().Err(err).Str("vendor_id", req.VendorID).Msg("no se pudieron listar usuarios del proveedor")
		return
	}
	for _, u := range users {
		if err := uc.notifier.SubstitutionDecision(u.ID, req.ID, req.Status); err != nil {
			uc.log.Warn().Err(err).Str("user_id", u.ID).Msg("notificación de sustitución fallida")
		}
	}
}

func toSubstitutionResponse(r *entity.SubstitutionRequest) *dto.SubstitutionResponse {
	return &dto.SubstitutionResponse{
		ID:               r.ID,
		JobID:            r.JobID,
		VendorID:         r.VendorID,
		OriginalMaterial: r.OriginalMaterial,
		ProposedMaterial: r.ProposedMaterial,
		Reason:           r.Reason,
		Status:           r.Status,
		DecidedBy:        r.DecidedBy,
		DecidedAt:        r.DecidedAt,
		CreatedAt:        r.CreatedAt,
	}
}
