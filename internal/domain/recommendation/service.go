package recommendation

import (
	"context"
	"time"
)

// RecommendationService builds ranked staffing suggestions.
type RecommendationService interface {
	// Recommend scores every submitted shift of the business against every
	// submitting employee under one immutable weight snapshot.
	Recommend(ctx context.Context, businessID string, weekStart time.Time, weights ScoreWeights) ([]ShiftRecommendationData, error)

	// RecommendForRequest resolves the operator's weights, applies overrides
	// and delegates to Recommend.
	RecommendForRequest(ctx context.Context, req RecommendRequest) (RecommendResponse, error)
}

type WeightsService interface {
	GetWeights(ctx context.Context, userID string) (WeightsResponse, error)
	UpdateWeights(ctx context.Context, req UpdateWeightsRequest) (WeightsResponse, error)
	ResetWeights(ctx context.Context, userID string) (WeightsResponse, error)
}
