package employee

import "context"

type EmployeeRepository interface {
	// ListActive returns active, non-archived employees of a business with
	// preferences and branch assignments loaded. A non-empty ids slice
	// restricts the result to those employees.
	ListActive(ctx context.Context, businessID string, ids []string) ([]Employee, error)
}
