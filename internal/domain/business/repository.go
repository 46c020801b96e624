package business

import "context"

type BusinessRepository interface {
	ListActive(ctx context.Context) ([]Business, error)
	GetByID(ctx context.Context, id string) (Business, error)
}
