package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/staffing-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context, businessID string, ids []string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, business_id, full_name, phone_number, employee_type, weekly_hours_required,
			preferences, is_active, is_archived, created_at, updated_at
		FROM employees
		WHERE business_id = $1 AND is_active = true AND is_archived = false
		  AND (cardinality($2::text[]) = 0 OR id::text = ANY($2))
		ORDER BY created_at, id
	`
	if ids == nil {
		ids = []string{}
	}

	rows, err := q.Query(ctx, query, businessID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	index := make(map[string]int)
	for rows.Next() {
		var (
			emp      employee.Employee
			empType  string
			required decimal.NullDecimal
			prefs    []byte
		)
		if err := rows.Scan(
			&emp.ID, &emp.BusinessID, &emp.FullName, &emp.PhoneNumber, &empType, &required,
			&prefs, &emp.IsActive, &emp.IsArchived, &emp.CreatedAt, &emp.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}

		emp.EmployeeType = employee.EmployeeType(empType)
		if required.Valid {
			hours := required.Decimal
			emp.WeeklyHoursRequired = &hours
		}
		emp.Preferences = decodePreferences(emp.ID, prefs)

		index[emp.ID] = len(employees)
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	if len(employees) == 0 {
		return employees, nil
	}

	employeeIDs := make([]string, 0, len(employees))
	for _, emp := range employees {
		employeeIDs = append(employeeIDs, emp.ID)
	}

	branchRows, err := q.Query(ctx, `
		SELECT eb.employee_id, eb.branch_id, COALESCE(b.name, ''), eb.is_active
		FROM employee_branches eb
		LEFT JOIN branches b ON b.id = eb.branch_id
		WHERE eb.employee_id::text = ANY($1)
		ORDER BY eb.employee_id, eb.created_at, eb.branch_id
	`, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list branch assignments: %w", err)
	}
	defer branchRows.Close()

	for branchRows.Next() {
		var (
			employeeID string
			assignment employee.BranchAssignment
		)
		if err := branchRows.Scan(&employeeID, &assignment.BranchID, &assignment.BranchName, &assignment.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan branch assignment: %w", err)
		}
		if i, ok := index[employeeID]; ok {
			employees[i].Branches = append(employees[i].Branches, assignment)
		}
	}
	if err := branchRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate branch assignments: %w", err)
	}

	return employees, nil
}

// decodePreferences returns nil for empty, null or malformed JSON. A malformed
// value is logged and the employee keeps the permissive defaults.
func decodePreferences(employeeID string, raw []byte) *employee.Preferences {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var p employee.Preferences
	if err := json.Unmarshal(raw, &p); err != nil {
		slog.Warn("Ignoring undecodable employee preferences",
			"employee_id", employeeID,
			"error", fmt.Errorf("%w: %v", employee.ErrPreferencesDecode, err))
		return nil
	}
	return &p
}
