package employee

import (
	"context"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/validator"
)

type employeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &employeeServiceImpl{employeeRepo: employeeRepo}
}

func (s *employeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		DeviceUserID: req.DeviceUserID,
		FullName:     req.FullName,
		Department:   req.Department,
		Active:       true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toEmployeeResponse(created), nil
}

// Get accepts either the internal ID or the numeric identity the clock
// hardware reports. Device sync callers only know the latter.
func (s *employeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	var (
		emp employee.Employee
		err error
	)
	if validator.IsNumeric(id) {
		emp, err = s.employeeRepo.GetByDeviceUserID(ctx, id)
	} else {
		emp, err = s.employeeRepo.GetByID(ctx, id)
	}
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toEmployeeResponse(emp), nil
}

func (s *employeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	resp := employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, emp := range employees {
		resp.Employees = append(resp.Employees, toEmployeeResponse(emp))
	}
	return resp, nil
}

func toEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           emp.ID,
		DeviceUserID: emp.DeviceUserID,
		FullName:     emp.FullName,
		Department:   emp.Department,
		Active:       emp.Active,
	}
}
