package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/imprenta-pro/internal/application/dto"
	"github.com/tu-usuario/imprenta-pro/internal/domain"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
)

// Plazo de producción por defecto al abrir el trabajo de una cotización aceptada.
const defaultLeadDays = 14

// QuoteUseCase casos de uso de cotizaciones.
type QuoteUseCase struct {
	quoteRepo  repository.QuoteRepository
	clientRepo repository.ClientRepository
	jobRepo    repository.JobRepository
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(
	quoteRepo repository.QuoteRepository,
	clientRepo repository.ClientRepository,
	jobRepo repository.JobRepository,
) *QuoteUseCase {
	return &QuoteUseCase{quoteRepo: quoteRepo, clientRepo: clientRepo, jobRepo: jobRepo}
}

// Create registra una cotización en borrador. El total se calcula aquí a
// partir de las líneas, nunca se recibe del cliente.
func (uc *QuoteUseCase) Create(in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if in.ClientID == "" || in.Title == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	quote := &entity.Quote{
		ID:        uuid.New().String(),
		ClientID:  in.ClientID,
		Title:     in.Title,
		Status:    entity.QuoteStatusDraft,
		ValidTo:   in.ValidTo,
		CreatedAt: now,
		UpdatedAt: now,
	}

	items := make([]*entity.QuoteItem, 0, len(in.Items))
	total := decimal.Zero
	for _, it := range in.Items {
		if it.Description == "" || it.Quantity.Sign() <= 0 || it.UnitPrice.Sign() < 0 {
			return nil, domain.ErrInvalidInput
		}
		subtotal := it.Quantity.Mul(it.UnitPrice)
		total = total.Add(subtotal)
		items = append(items, &entity.QuoteItem{
			ID:          uuid.New().String(),
			QuoteID:     quote.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    subtotal,
		})
	}
	quote.Total = total

	if err := uc.quoteRepo.Create(quote); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := uc.quoteRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}
	return toQuoteResponse(quote, items), nil
}

// Get devuelve una cotización con sus líneas.
func (uc *QuoteUseCase) Get(id string) (*dto.QuoteResponse, error) {
	quote, items, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote, items), nil
}

// ListByClient lista las cotizaciones de un cliente (sin líneas).
func (uc *QuoteUseCase) ListByClient(clientID string, limit, offset int) ([]*dto.QuoteResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.quoteRepo.ListByClient(clientID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuoteResponse, 0, len(list))
	for _, q := range list {
		out = append(out, toQuoteResponse(q, nil))
	}
	return out, nil
}

// Send marca la cotización como enviada al cliente.
func (uc *QuoteUseCase) Send(id string) (*dto.QuoteResponse, error) {
	return uc.transition(id, entity.QuoteStatusDraft, entity.QuoteStatusSent)
}

// Reject marca la cotización como rechazada por el cliente.
func (uc *QuoteUseCase) Reject(id string) (*dto.QuoteResponse, error) {
	return uc.transition(id, entity.QuoteStatusSent, entity.QuoteStatusRejected)
}

// Accept acepta una cotización enviada y vigente, y abre el trabajo de
// producción asociado.
func (uc *QuoteUseCase) Accept(id string) (*dto.AcceptQuoteResponse, error) {
	quote, items, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	if quote.Status != entity.QuoteStatusSent {
		return nil, domain.ErrInvalidTransition
	}
	if !quote.ValidTo.IsZero() && quote.ValidTo.Before(time.Now()) {
		return nil, domain.ErrConflict
	}
	if err := uc.quoteRepo.UpdateStatus(id, entity.QuoteStatusAccepted); err != nil {
		return nil, err
	}
	quote.Status = entity.QuoteStatusAccepted

	now := time.Now()
	job := &entity.Job{
		ID:        uuid.New().String(),
		ClientID:  quote.ClientID,
		QuoteID:   quote.ID,
		Title:     quote.Title,
		Status:    entity.JobStatusPending,
		DueDate:   now.AddDate(0, 0, defaultLeadDays),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.jobRepo.Create(job); err != nil {
		return nil, err
	}

	return &dto.AcceptQuoteResponse{
		Quote: *toQuoteResponse(quote, items),
		Job: dto.JobResponse{
			ID:        job.ID,
			ClientID:  job.ClientID,
			QuoteID:   job.QuoteID,
			Title:     job.Title,
			Status:    job.Status,
			DueDate:   job.DueDate,
			CreatedAt: job.CreatedAt,
			UpdatedAt: job.UpdatedAt,
		},
	}, nil
}

func (uc *QuoteUseCase) transition(id, from, to string) (*dto.QuoteResponse, error) {
	quote, items, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	if quote.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.quoteRepo.UpdateStatus(id, to); err != nil {
		return nil, err
	}
	quote.Status = to
	return toQuoteResponse(quote, items), nil
}

func (uc *QuoteUseCase) load(id string) (*entity.Quote, []*entity.QuoteItem, error) {
	quote, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if quote == nil {
		return nil, nil, domain.ErrNotFound
	}
	items, err := uc.quoteRepo.GetItems(id)
	if err != nil {
		return nil, nil, err
	}
	return quote, items, nil
}

func toQuoteResponse(q *entity.Quote, items []*entity.QuoteItem) *dto.QuoteResponse {
	resp := &dto.QuoteResponse{
		ID:        q.ID,
		ClientID:  q.ClientID,
		Title:     q.Title,
		Status:    q.Status,
		Total:     q.Total,
		ValidTo:   q.ValidTo,
		CreatedAt: q.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.QuoteItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return resp
}
