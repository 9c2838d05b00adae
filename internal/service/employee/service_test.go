package employee

import (
	"context"
	"testing"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	byID     map[string]employee.Employee
	byDevice map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	if _, exists := f.byDevice[emp.DeviceUserID]; exists {
		return employee.Employee{}, employee.ErrDeviceUserIDExists
	}
	emp.ID = "emp-" + emp.DeviceUserID
	f.byID[emp.ID] = emp
	f.byDevice[emp.DeviceUserID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByDeviceUserID(_ context.Context, deviceUserID string) (employee.Employee, error) {
	emp, ok := f.byDevice[deviceUserID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, emp := range f.byID {
		if filter.Active != nil && emp.Active != *filter.Active {
			continue
		}
		out = append(out, emp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.byID {
		if emp.Active {
			out = append(out, emp)
		}
	}
	return out, nil
}

func newDirectoryFixture() (*fakeEmployeeRepo, employee.EmployeeService) {
	repo := &fakeEmployeeRepo{
		byID:     map[string]employee.Employee{},
		byDevice: map[string]employee.Employee{},
	}
	return repo, NewEmployeeService(repo)
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()
	repo, svc := newDirectoryFixture()

	resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		DeviceUserID: "101",
		FullName:     "Ana Quispe",
	})
	require.NoError(t, err)
	assert.True(t, resp.Active)
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, repo.byDevice, 1)

	t.Run("duplicate device user ID", func(t *testing.T) {
		_, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			DeviceUserID: "101",
			FullName:     "Otra Persona",
		})
		assert.ErrorIs(t, err, employee.ErrDeviceUserIDExists)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.Create(ctx, employee.CreateEmployeeRequest{DeviceUserID: "abc"})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
	})
}

func TestGetEmployee(t *testing.T) {
	ctx := context.Background()
	_, svc := newDirectoryFixture()

	created, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		DeviceUserID: "101",
		FullName:     "Ana Quispe",
	})
	require.NoError(t, err)

	t.Run("by internal ID", func(t *testing.T) {
		resp, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana Quispe", resp.FullName)
	})

	t.Run("numeric ID resolves through the device identity", func(t *testing.T) {
		resp, err := svc.Get(ctx, "101")
		require.NoError(t, err)
		assert.Equal(t, created.ID, resp.ID)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := svc.Get(ctx, "nope")
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestListEmployees(t *testing.T) {
	ctx := context.Background()
	_, svc := newDirectoryFixture()

	for _, req := range []employee.CreateEmployeeRequest{
		{DeviceUserID: "101", FullName: "Ana Quispe"},
		{DeviceUserID: "102", FullName: "Luis Torres"},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
}
