package access_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/imprenta-pro/internal/application/access"
	"github.com/tu-usuario/imprenta-pro/internal/domain/entity"
)

type fakeJobRepo struct {
	jobs map[string]*entity.Job
}

func (f *fakeJobRepo) Create(j *entity.Job) error { f.jobs[j.ID] = j; return nil }
func (f *fakeJobRepo) GetByID(id string) (*entity.Job, error) {
	return f.jobs[id], nil
}
func (f *fakeJobRepo) ListByStatus(string, int, int) ([]*entity.Job, error) { return nil, nil }
func (f *fakeJobRepo) ListOpenDueBefore(time.Time) ([]*entity.Job, error)   { return nil, nil }
func (f *fakeJobRepo) UpdateStatus(string, string) error                    { return nil }
func (f *fakeJobRepo) UpdateProgress(string, int) error                     { return nil }
func (f *fakeJobRepo) UpdateAssignee(string, string) error                  { return nil }

type fakeSubRepo struct {
	reqs map[string]*entity.SubstitutionRequest
}

func (f *fakeSubRepo) Create(r *entity.SubstitutionRequest) error { f.reqs[r.ID] = r; return nil }
func (f *fakeSubRepo) GetByID(id string) (*entity.SubstitutionRequest, error) {
	return f.reqs[id], nil
}
func (f *fakeSubRepo) ListByJob(string) ([]*entity.SubstitutionRequest, error) { return nil, nil }
func (f *fakeSubRepo) Update(*entity.SubstitutionRequest) error                { return nil }

func newChecker() *access.Checker {
	jobs := &fakeJobRepo{jobs: map[string]*entity.Job{
		"job-1": {ID: "job-1", Title: "Vallas centro", AssigneeID: "user-prod", Status: entity.JobStatusInProgress},
	}}
	subs := &fakeSubRepo{reqs: map[string]*entity.SubstitutionRequest{
		"sub-1": {ID: "sub-1", JobID: "job-1", VendorID: "vendor-a", Status: entity.SubstitutionPending},
	}}
	return access.NewChecker(jobs, subs)
}

// ──────────────────────────────────────────────────────────────────────────────
// CanViewJob
// ──────────────────────────────────────────────────────────────────────────────

func TestCanViewJob(t *testing.T) {
	checker := newChecker()

	cases := []struct {
		name string
		id   access.Identity
		job  string
		want bool
	}{
		{"admin ve cualquier trabajo", access.Identity{UserID: "u1", Role: entity.RoleAdmin}, "job-1", true},
		{"producción ve cualquier trabajo", access.Identity{UserID: "u2", Role: entity.RoleProduction}, "job-1", true},
		{"account manager ve cualquier trabajo", access.Identity{UserID: "u3", Role: entity.RoleAccountManager}, "job-1", true},
		{"el asignado ve su trabajo", access.Identity{UserID: "user-prod", Role: entity.RoleVendor}, "job-1", true},
		{"otro usuario no ve el trabajo", access.Identity{UserID: "user-x", Role: entity.RoleVendor}, "job-1", false},
		{"cliente no asignado no ve el trabajo", access.Identity{UserID: "user-y", Role: entity.RoleClient}, "job-1", false},
		{"trabajo inexistente se niega igual que prohibido", access.Identity{UserID: "user-prod", Role: entity.RoleVendor}, "job-nope", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, checker.CanViewJob(tc.id, tc.job))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CanViewSubstitution
// ──────────────────────────────────────────────────────────────────────────────

func TestCanViewSubstitution(t *testing.T) {
	checker := newChecker()

	cases := []struct {
		name string
		id   access.Identity
		sub  string
		want bool
	}{
		{"admin ve cualquier sustitución", access.Identity{UserID: "u1", Role: entity.RoleAdmin}, "sub-1", true},
		{"producción ve cualquier sustitución", access.Identity{UserID: "u2", Role: entity.RoleProduction}, "sub-1", true},
		{"el proveedor dueño la ve", access.Identity{UserID: "u3", Role: entity.RoleVendor, VendorID: "vendor-a"}, "sub-1", true},
		{"otro proveedor no la ve", access.Identity{UserID: "u4", Role: entity.RoleVendor, VendorID: "vendor-b"}, "sub-1", false},
		{"vendor sin VendorID no la ve", access.Identity{UserID: "u5", Role: entity.RoleVendor}, "sub-1", false},
		{"sustitución inexistente se niega", access.Identity{UserID: "u3", Role: entity.RoleVendor, VendorID: "vendor-a"}, "sub-nope", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, checker.CanViewSubstitution(tc.id, tc.sub))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CanViewDashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestCanViewDashboard(t *testing.T) {
	checker := newChecker()

	assert.True(t, checker.CanViewDashboard(
		access.Identity{UserID: "u1", Role: entity.RoleProduction}, "u1"),
		"cada usuario ve su propio tablero")

	assert.False(t, checker.CanViewDashboard(
		access.Identity{UserID: "u1", Role: entity.RoleProduction}, "u2"),
		"el personal no observa tableros ajenos")

	assert.True(t, checker.CanViewDashboard(
		access.Identity{UserID: "admin-1", Role: entity.RoleAdmin}, "u2"),
		"un admin observa el tablero de cualquiera")
}
