package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeArchived = errors.New("employee is archived")

	ErrPreferencesDecode = errors.New("employee preferences could not be decoded")
)
