package recommendation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/recommendation"
)

type weightsService struct {
	repo recommendation.WeightsRepository
}

func NewWeightsService(repo recommendation.WeightsRepository) recommendation.WeightsService {
	return &weightsService{repo: repo}
}

func (s *weightsService) GetWeights(ctx context.Context, userID string) (recommendation.WeightsResponse, error) {
	if userID == "" {
		return recommendation.WeightsResponse{}, recommendation.ErrOperatorRequired
	}

	stored, err := s.repo.GetByUserID(ctx, userID)
	if errors.Is(err, recommendation.ErrWeightsNotFound) {
		return recommendation.WeightsResponse{ScoreWeights: recommendation.DefaultScoreWeights(), IsDefault: true}, nil
	}
	if err != nil {
		return recommendation.WeightsResponse{}, fmt.Errorf("get score weights: %w", err)
	}
	return recommendation.WeightsResponse{ScoreWeights: stored.Weights}, nil
}

func (s *weightsService) UpdateWeights(ctx context.Context, req recommendation.UpdateWeightsRequest) (recommendation.WeightsResponse, error) {
	if err := req.Validate(); err != nil {
		return recommendation.WeightsResponse{}, err
	}

	stored := recommendation.StoredWeights{
		UserID:    req.UserID,
		Weights:   req.Weights(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.Upsert(ctx, stored); err != nil {
		return recommendation.WeightsResponse{}, fmt.Errorf("save score weights: %w", err)
	}
	return recommendation.WeightsResponse{ScoreWeights: stored.Weights}, nil
}

func (s *weightsService) ResetWeights(ctx context.Context, userID string) (recommendation.WeightsResponse, error) {
	if userID == "" {
		return recommendation.WeightsResponse{}, recommendation.ErrOperatorRequired
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return recommendation.WeightsResponse{}, fmt.Errorf("reset score weights: %w", err)
	}
	return recommendation.WeightsResponse{ScoreWeights: recommendation.DefaultScoreWeights(), IsDefault: true}, nil
}
