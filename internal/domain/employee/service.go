package employee

import "context"

// EmployeeService defines the directory operations exposed over HTTP. The
// reconciliation engine reads employees through EmployeeRepository directly.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
}
