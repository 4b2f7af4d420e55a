package http_test

import (
	"net"
	"testing"
	"time"

	fwebsocket "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/imprenta-pro/internal/application/access"
	"github.com/tu-usuario/imprenta-pro/internal/application/notify"
	"github.com/tu-usuario/imprenta-pro/internal/application/production"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
	"github.com/tu-usuario/imprenta-pro/internal/domain/repository"
	apphttp "github.com/tu-usuario/imprenta-pro/internal/interfaces/http"
	"github.com/tu-usuario/imprenta-pro/internal/realtime"
	pkgjwt "github.com/tu-usuario/imprenta-pro/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeJobRepo struct {
	jobs map[string]*entity.Job
}

func (f *fakeJobRepo) Create(j *entity.Job) error { f.jobs[j.ID] = j; return nil }
func (f *fakeJobRepo) GetByID(id string) (*entity.Job, error) {
	return f.jobs[id], nil
}
func (f *fakeJobRepo) ListByStatus(string, int, int) ([]*entity.Job, error) { return nil, nil }
func (f *fakeJobRepo) ListOpenDueBefore(time.Time) ([]*entity.Job, error)   { return nil, nil }
func (f *fakeJobRepo) UpdateStatus(id, status string) error {
	f.jobs[id].Status = status
	return nil
}
func (f *fakeJobRepo) UpdateProgress(id string, progress int) error {
	f.jobs[id].Progress = progress
	return nil
}
func (f *fakeJobRepo) UpdateAssignee(id, assigneeID string) error {
	f.jobs[id].AssigneeID = assigneeID
	return nil
}

type fakeSubRepo struct {
	reqs map[string]*entity.SubstitutionRequest
}

func (f *fakeSubRepo) Create(r *entity.SubstitutionRequest) error { f.reqs[r.ID] = r; return nil }
func (f *fakeSubRepo) GetByID(id string) (*entity.SubstitutionRequest, error) {
	return f.reqs[id], nil
}
func (f *fakeSubRepo) ListByJob(string) ([]*entity.SubstitutionRequest, error) { return nil, nil }
func (f *fakeSubRepo) Update(r *entity.SubstitutionRequest) error {
	f.reqs[r.ID] = r
	return nil
}

type fakeUserRepo struct{}

func (f *fakeUserRepo) Create(*entity.User) error                   { return nil }
func (f *fakeUserRepo) GetByID(string) (*entity.User, error)        { return nil, nil }
func (f *fakeUserRepo) FindByEmail(string) (*entity.User, error)    { return nil, nil }
func (f *fakeUserRepo) ListByVendor(string) ([]*entity.User, error) { return nil, nil }

type fakeNotificationRepo struct{}

func (f *fakeNotificationRepo) Create(*entity.Notification) error { return nil }
func (f *fakeNotificationRepo) ListByUser(string, int, int) ([]*entity.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationRepo) MarkRead(string, string) error { return nil }

type fakeDashRepo struct{}

func (f *fakeDashRepo) Stats() (*repository.DashboardStats, error) {
	return &repository.DashboardStats{JobsByStatus: map[string]int{}}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Arranque del servidor de prueba
// ──────────────────────────────────────────────────────────────────────────────

// wsEvent sobre recibido por el cliente.
type wsEvent struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type wsTestServer struct {
	hub  *realtime.Hub
	jobs *fakeJobRepo
	subs *fakeSubRepo
	addr string
}

// startWSServer levanta la aplicación con los cuatro canales sobre un listener
// real: el camino completo upgrade → chequeo de acceso → suscripción → relevo.
func startWSServer(t *testing.T) *wsTestServer {
	t.Helper()

	jobs := &fakeJobRepo{jobs: make(map[string]*entity.Job)}
	subs := &fakeSubRepo{reqs: make(map[string]*entity.SubstitutionRequest)}
	hub := realtime.NewHub(nil)
	notifier := notify.NewNotifier(&fakeNotificationRepo{}, hub, nil)
	checker := access.NewChecker(jobs, subs)
	jobUC := production.NewJobUseCase(jobs, &fakeDashRepo{}, hub, notifier, nil)
	subUC := production.NewSubstitutionUseCase(subs, jobs, &fakeUserRepo{}, &fakeDashRepo{}, hub, notifier, nil)
	handler := apphttp.NewWSHandler(hub, checker, jobUC, subUC, nil)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	ws := app.Group("/ws", apphttp.Upgrade(testJWTSecret))
	ws.Get("/jobs/:id", handler.Job())
	ws.Get("/dashboards/:kind/:userID", handler.Dashboard())
	ws.Get("/notifications", handler.Notifications())
	ws.Get("/substitutions/:id", handler.Substitution())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return &wsTestServer{hub: hub, jobs: jobs, subs: subs, addr: ln.Addr().String()}
}

func wsToken(t *testing.T, userID, role, vendorID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, vendorID, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

// dialWS abre una conexión al canal con el token de query. Reintenta mientras
// el listener termina de arrancar.
func dialWS(t *testing.T, addr, path, token string) *fwebsocket.Conn {
	t.Helper()
	url := "ws://" + addr + path + "?token=" + token
	var conn *fwebsocket.Conn
	require.Eventually(t, func() bool {
		c, _, err := fwebsocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			return false
		}
		conn = c
		return true
	}, 2*time.Second, 20*time.Millisecond, "no se pudo conectar a %s", path)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *fwebsocket.Conn) wsEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event wsEvent
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

// ──────────────────────────────────────────────────────────────────────────────
// Canal de notificaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestWSNotifications_RecibeEventosDeSuTopico(t *testing.T) {
	srv := startWSServer(t)
	topic := realtime.NotificationTopic(testUserID)

	conn := dialWS(t, srv.addr, "/ws/notifications", wsToken(t, testUserID, entity.RoleProduction, ""))

	require.Eventually(t, func() bool { return srv.hub.Subscribers(topic) == 1 },
		2*time.Second, 20*time.Millisecond, "la conexión debe quedar suscrita a su tópico")

	srv.hub.Broadcast(topic, realtime.InvoiceStatusEvent("inv-1", entity.InvoiceStatusValidated))

	event := readEvent(t, conn)
	assert.Equal(t, realtime.EventInvoiceStatus, event.Type)
	assert.Equal(t, "inv-1", event.Payload["invoice_id"])
}

// La desconexión del cliente retira la suscripción aunque el tópico esté en
// silencio: no queda goroutine ni membresía colgando en el hub.
func TestWSNotifications_DesconexionRetiraLaSuscripcion(t *testing.T) {
	srv := startWSServer(t)
	topic := realtime.NotificationTopic(testUserID)

	conn := dialWS(t, srv.addr, "/ws/notifications", wsToken(t, testUserID, entity.RoleProduction, ""))

	require.Eventually(t, func() bool { return srv.hub.Subscribers(topic) == 1 },
		2*time.Second, 20*time.Millisecond)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return srv.hub.Subscribers(topic) == 0 },
		2*time.Second, 20*time.Millisecond,
		"la suscripción debe retirarse sin necesidad de un broadcast posterior")
}

// ──────────────────────────────────────────────────────────────────────────────
// Canal de trabajo
// ──────────────────────────────────────────────────────────────────────────────

func TestWSJob_SinAccesoSeCierraSinSnapshot(t *testing.T) {
	srv := startWSServer(t)
	srv.jobs.jobs["job-1"] = &entity.Job{ID: "job-1", Status: entity.JobStatusPending, AssigneeID: "otro-usuario"}

	// Proveedor que no es el asignado: el handshake pasa, el canal se cierra.
	conn := dialWS(t, srv.addr, "/ws/jobs/job-1", wsToken(t, testUserID, entity.RoleVendor, testVendorID))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "el cliente sin acceso nunca recibe el snapshot, solo el cierre")
	assert.Zero(t, srv.hub.Subscribers(realtime.JobTopic("job-1")))
}

func TestWSJob_SnapshotYRelevoDeEstado(t *testing.T) {
	srv := startWSServer(t)
	srv.jobs.jobs["job-1"] = &entity.Job{
		ID: "job-1", Title: "Vallas centro", Status: entity.JobStatusPending, AssigneeID: "user-prod",
	}

	emisor := dialWS(t, srv.addr, "/ws/jobs/job-1", wsToken(t, "user-a", entity.RoleProduction, ""))
	oyente := dialWS(t, srv.addr, "/ws/jobs/job-1", wsToken(t, "user-b", entity.RoleProduction, ""))

	// Cada conexión recibe primero el estado completo del trabajo.
	for _, conn := range []*fwebsocket.Conn{emisor, oyente} {
		snapshot := readEvent(t, conn)
		require.Equal(t, realtime.EventJobSnapshot, snapshot.Type)
		require.Contains(t, snapshot.Payload, "job")
	}

	require.NoError(t, emisor.WriteJSON(map[string]any{
		"type": "status_update", "status": entity.JobStatusInProgress,
	}))

	event := readEvent(t, oyente)
	assert.Equal(t, realtime.EventJobStatusUpdated, event.Type)
	assert.Equal(t, entity.JobStatusInProgress, event.Payload["status"])
	assert.Equal(t, entity.JobStatusInProgress, srv.jobs.jobs["job-1"].Status,
		"el cambio relevado también se persiste")
}

// ──────────────────────────────────────────────────────────────────────────────
// Canal de tablero
// ──────────────────────────────────────────────────────────────────────────────

func TestWSDashboard_SoloElPropioUsuario(t *testing.T) {
	srv := startWSServer(t)

	// Personal de producción intentando observar el tablero de otro usuario.
	conn := dialWS(t, srv.addr, "/ws/dashboards/production/otro-usuario",
		wsToken(t, testUserID, entity.RoleProduction, ""))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Zero(t, srv.hub.Subscribers(realtime.DashboardTopic("production", "otro-usuario")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Canal de sustitución
// ──────────────────────────────────────────────────────────────────────────────

func TestWSSubstitution_ComentarioLlegaAlGrupo(t *testing.T) {
	srv := startWSServer(t)
	srv.subs.reqs["sub-1"] = &entity.SubstitutionRequest{
		ID: "sub-1", JobID: "job-1", VendorID: testVendorID, Status: entity.SubstitutionPending,
	}

	vendor := dialWS(t, srv.addr, "/ws/substitutions/sub-1",
		wsToken(t, "user-vendor", entity.RoleVendor, testVendorID))
	staff := dialWS(t, srv.addr, "/ws/substitutions/sub-1",
		wsToken(t, "user-staff", entity.RoleProduction, ""))

	topic := realtime.SubstitutionTopic("sub-1")
	require.Eventually(t, func() bool { return srv.hub.Subscribers(topic) == 2 },
		2*time.Second, 20*time.Millisecond)

	require.NoError(t, vendor.WriteJSON(map[string]any{
		"type": "comment_added", "comment": "El mate llega el jueves",
	}))

	event := readEvent(t, staff)
	assert.Equal(t, realtime.EventCommentAdded, event.Type)
	assert.Equal(t, "El mate llega el jueves", event.Payload["comment"])
	assert.Equal(t, "user-vendor", event.Payload["user_id"])
}
