package recommendation

import "context"

type WeightsRepository interface {
	// GetByUserID returns ErrWeightsNotFound when the operator has no saved weights.
	GetByUserID(ctx context.Context, userID string) (StoredWeights, error)
	Upsert(ctx context.Context, weights StoredWeights) error
	Delete(ctx context.Context, userID string) error
}
