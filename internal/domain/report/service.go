package report

import "context"

// ReportService projects persisted (or lazily computed) daily records into
// the monthly attendance matrix.
type ReportService interface {
	MonthlyMatrix(ctx context.Context, req MatrixRequest) (MatrixReport, error)
}
