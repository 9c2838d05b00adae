package schedule

import (
	"context"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/schedule"
)

type scheduleServiceImpl struct {
	templateRepo   schedule.ScheduleTemplateRepository
	segmentRepo    schedule.SegmentRepository
	assignmentRepo schedule.ScheduleAssignmentRepository
	holidayRepo    schedule.HolidayRepository
}

func NewScheduleService(
	templateRepo schedule.ScheduleTemplateRepository,
	segmentRepo schedule.SegmentRepository,
	assignmentRepo schedule.ScheduleAssignmentRepository,
	holidayRepo schedule.HolidayRepository,
) schedule.ScheduleService {
	return &scheduleServiceImpl{
		templateRepo:   templateRepo,
		segmentRepo:    segmentRepo,
		assignmentRepo: assignmentRepo,
		holidayRepo:    holidayRepo,
	}
}

// ==================== TEMPLATE OPERATIONS ====================

func (s *scheduleServiceImpl) CreateTemplate(ctx context.Context, req schedule.CreateTemplateRequest) (schedule.TemplateResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return schedule.TemplateResponse{}, err
	}

	created, err := s.templateRepo.Create(ctx, schedule.ScheduleTemplate{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	})
	if err != nil {
		return schedule.TemplateResponse{}, err
	}

	return toTemplateResponse(created), nil
}

func (s *scheduleServiceImpl) GetTemplate(ctx context.Context, id string) (schedule.TemplateResponse, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return schedule.TemplateResponse{}, err
	}

	segments, err := s.segmentRepo.GetByScheduleID(ctx, id)
	if err != nil {
		return schedule.TemplateResponse{}, err
	}
	template.Segments = segments

	return toTemplateResponse(template), nil
}

func (s *scheduleServiceImpl) ListTemplates(ctx context.Context, activeOnly bool) ([]schedule.TemplateResponse, error) {
	templates, err := s.templateRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]schedule.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		responses = append(responses, toTemplateResponse(t))
	}
	return responses, nil
}

func (s *scheduleServiceImpl) DeleteTemplate(ctx context.Context, id string) error {
	return s.templateRepo.Delete(ctx, id)
}

// ==================== SEGMENT OPERATIONS ====================

func (s *scheduleServiceImpl) AddSegments(ctx context.Context, req schedule.CreateSegmentsRequest) ([]schedule.SegmentResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Template must exist before attaching segments
	if _, err := s.templateRepo.GetByID(ctx, req.ScheduleID); err != nil {
		return nil, err
	}

	startTime, _ := parseClock(req.StartTime)
	endTime, _ := parseClock(req.EndTime)

	responses := make([]schedule.SegmentResponse, 0, len(req.Weekdays))
	for _, weekday := range req.Weekdays {
		created, err := s.segmentRepo.Create(ctx, schedule.Segment{
			ScheduleID:       req.ScheduleID,
			Weekday:          weekday,
			StartTime:        startTime,
			EndTime:          endTime,
			ToleranceMinutes: req.ToleranceMinutes,
			SequenceOrder:    req.SequenceOrder,
		})
		if err != nil {
			return nil, err
		}
		responses = append(responses, toSegmentResponse(created))
	}

	return responses, nil
}

func (s *scheduleServiceImpl) DeleteSegment(ctx context.Context, id string) error {
	return s.segmentRepo.Delete(ctx, id)
}

// ==================== ASSIGNMENT OPERATIONS ====================

func (s *scheduleServiceImpl) AssignSchedule(ctx context.Context, req schedule.AssignScheduleRequest) (schedule.AssignmentResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return schedule.AssignmentResponse{}, err
	}

	if _, err := s.templateRepo.GetByID(ctx, req.ScheduleID); err != nil {
		return schedule.AssignmentResponse{}, err
	}

	validFrom, _ := time.Parse("2006-01-02", req.ValidFrom)
	var validTo *time.Time
	if req.ValidTo != nil {
		to, _ := time.Parse("2006-01-02", *req.ValidTo)
		validTo = &to
	}

	// Reject assignments that intersect an existing validity window, so
	// every employee-date maps to at most one schedule.
	overlapping, err := s.assignmentRepo.CountOverlapping(ctx, req.EmployeeID, validFrom, validTo)
	if err != nil {
		return schedule.AssignmentResponse{}, err
	}
	if overlapping > 0 {
		return schedule.AssignmentResponse{}, schedule.ErrOverlappingScheduleAssignment
	}

	created, err := s.assignmentRepo.Create(ctx, schedule.ScheduleAssignment{
		EmployeeID: req.EmployeeID,
		ScheduleID: req.ScheduleID,
		ValidFrom:  validFrom,
		ValidTo:    validTo,
	})
	if err != nil {
		return schedule.AssignmentResponse{}, err
	}

	return toAssignmentResponse(created), nil
}

func (s *scheduleServiceImpl) ListAssignments(ctx context.Context, employeeID string) ([]schedule.AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]schedule.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, toAssignmentResponse(a))
	}
	return responses, nil
}

func (s *scheduleServiceImpl) DeleteAssignment(ctx context.Context, id string) error {
	return s.assignmentRepo.Delete(ctx, id)
}

// ==================== HOLIDAY OPERATIONS ====================

func (s *scheduleServiceImpl) CreateHoliday(ctx context.Context, req schedule.CreateHolidayRequest) (schedule.HolidayResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return schedule.HolidayResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	created, err := s.holidayRepo.Create(ctx, schedule.Holiday{
		Date: date,
		Name: req.Name,
	})
	if err != nil {
		return schedule.HolidayResponse{}, err
	}

	return toHolidayResponse(created), nil
}

func (s *scheduleServiceImpl) ListHolidays(ctx context.Context, year int) ([]schedule.HolidayResponse, error) {
	holidays, err := s.holidayRepo.List(ctx, year)
	if err != nil {
		return nil, err
	}

	responses := make([]schedule.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		responses = append(responses, toHolidayResponse(h))
	}
	return responses, nil
}

func (s *scheduleServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	return s.holidayRepo.Delete(ctx, id)
}

// ==================== HELPERS ====================

func parseClock(value string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", value); err == nil {
		return t, nil
	}
	return time.Parse("15:04", value)
}

func toTemplateResponse(t schedule.ScheduleTemplate) schedule.TemplateResponse {
	resp := schedule.TemplateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Active:      t.Active,
	}
	for _, seg := range t.Segments {
		resp.Segments = append(resp.Segments, toSegmentResponse(seg))
	}
	return resp
}

func toSegmentResponse(seg schedule.Segment) schedule.SegmentResponse {
	return schedule.SegmentResponse{
		ID:               seg.ID,
		ScheduleID:       seg.ScheduleID,
		Weekday:          seg.Weekday,
		StartTime:        seg.StartTime.Format("15:04"),
		EndTime:          seg.EndTime.Format("15:04"),
		ToleranceMinutes: seg.ToleranceMinutes,
		SequenceOrder:    seg.SequenceOrder,
	}
}

func toAssignmentResponse(a schedule.ScheduleAssignment) schedule.AssignmentResponse {
	resp := schedule.AssignmentResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		ScheduleID: a.ScheduleID,
		ValidFrom:  a.ValidFrom.Format("2006-01-02"),
	}
	if a.ValidTo != nil {
		to := a.ValidTo.Format("2006-01-02")
		resp.ValidTo = &to
	}
	return resp
}

func toHolidayResponse(h schedule.Holiday) schedule.HolidayResponse {
	return schedule.HolidayResponse{
		ID:   h.ID,
		Date: h.Date.Format("2006-01-02"),
		Name: h.Name,
	}
}
