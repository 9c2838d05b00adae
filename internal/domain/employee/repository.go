package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByDeviceUserID(ctx context.Context, deviceUserID string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)

	// ListActive returns every active employee ordered by name, used by batch
	// recomputes and reports when no explicit employee filter is given.
	ListActive(ctx context.Context) ([]Employee, error)
}
