package notify_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/imprenta-pro/internal/application/notify"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/realtime"
)

type fakeNotificationRepo struct {
	created   []*entity.Notification
	createErr error
}

func (f *fakeNotificationRepo) Create(n *entity.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(string, int, int) ([]*entity.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) MarkRead(string, string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Persistir y difundir
// ──────────────────────────────────────────────────────────────────────────────

func TestNotifier_PersisteYDifunde(t *testing.T) {
	repo := &fakeNotificationRepo{}
	hub := realtime.NewHub(nil)
	notifier := notify.NewNotifier(repo, hub, nil)

	sub := hub.Subscribe(realtime.NotificationTopic("user-1"))
	defer hub.Unsubscribe(sub)

	err := notifier.JobAssigned("user-1", "job-1", "Vallas centro")
	require.NoError(t, err)

	// Persistida con identidad y tipo.
	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "user-1", stored.UserID)
	assert.Equal(t, entity.NotifyJobAssigned, stored.Type)
	assert.Equal(t, "job-1", stored.RefID)
	assert.False(t, stored.CreatedAt.IsZero())

	// Difundida por el canal del usuario.
	select {
	case event := <-sub.C():
		assert.Equal(t, realtime.EventJobAssigned, event.Type)
		assert.Equal(t, "job-1", event.Payload["job_id"])
		assert.Equal(t, "Vallas centro", event.Payload["title"])
	default:
		t.Fatal("el canal del usuario no recibió el evento")
	}
}

func TestNotifier_FalloDePersistencia_NoDifunde(t *testing.T) {
	repo := &fakeNotificationRepo{createErr: errors.New("db caída")}
	hub := realtime.NewHub(nil)
	notifier := notify.NewNotifier(repo, hub, nil)

	sub := hub.Subscribe(realtime.NotificationTopic("user-1"))
	defer hub.Unsubscribe(sub)

	err := notifier.JobAssigned("user-1", "job-1", "Vallas centro")
	require.Error(t, err)

	select {
	case <-sub.C():
		t.Fatal("no debe difundirse si la persistencia falló")
	default:
	}
}

func TestNotifier_SoloElDestinatarioRecibe(t *testing.T) {
	repo := &fakeNotificationRepo{}
	hub := realtime.NewHub(nil)
	notifier := notify.NewNotifier(repo, hub, nil)

	mine := hub.Subscribe(realtime.NotificationTopic("user-1"))
	other := hub.Subscribe(realtime.NotificationTopic("user-2"))
	defer hub.Unsubscribe(mine)
	defer hub.Unsubscribe(other)

	require.NoError(t, notifier.InvoiceStatus("user-1", "inv-1", entity.InvoiceStatusValidated))

	select {
	case event := <-mine.C():
		assert.Equal(t, realtime.EventInvoiceStatus, event.Type)
	default:
		t.Fatal("el destinatario no recibió su notificación")
	}
	select {
	case <-other.C():
		t.Fatal("la notificación llegó al canal de otro usuario")
	default:
	}
}

func TestNotifier_DeadlineLlevaSeveridad(t *testing.T) {
	repo := &fakeNotificationRepo{}
	hub := realtime.NewHub(nil)
	notifier := notify.NewNotifier(repo, hub, nil)

	sub := hub.Subscribe(realtime.NotificationTopic("user-1"))
	defer hub.Unsubscribe(sub)

	err := notifier.DeadlineApproaching("user-1", "job-1", "Vallas centro", entity.SeverityCritical)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Equal(t, entity.SeverityCritical, repo.created[0].Severity)

	select {
	case event := <-sub.C():
		assert.Equal(t, realtime.EventDeadlineApproaching, event.Type)
		assert.Equal(t, entity.SeverityCritical, event.Payload["severity"])
	default:
		t.Fatal("el canal del usuario no recibió la alerta")
	}
}

func TestNotifier_SubstitutionDecision_TituloSegunEstado(t *testing.T) {
	repo := &fakeNotificationRepo{}
	hub := realtime.NewHub(nil)
	notifier := notify.NewNotifier(repo, hub, nil)

	require.NoError(t, notifier.SubstitutionDecision("user-1", "sub-1", entity.SubstitutionApproved))
	require.NoError(t, notifier.SubstitutionDecision("user-1", "sub-2", entity.SubstitutionRejected))

	require.Len(t, repo.created, 2)
	assert.Equal(t, "Sustitución aprobada", repo.created[0].Title)
	assert.Equal(t, "Sustitución rechazada", repo.created[1].Title)
}
