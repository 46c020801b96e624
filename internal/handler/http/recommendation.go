package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/staffing-backend-go/internal/domain/recommendation"
	"github.com/cmlabs-hris/staffing-backend-go/internal/handler/http/response"
)

type RecommendationHandler interface {
	Recommend(w http.ResponseWriter, r *http.Request)
	GetWeights(w http.ResponseWriter, r *http.Request)
	UpdateWeights(w http.ResponseWriter, r *http.Request)
	ResetWeights(w http.ResponseWriter, r *http.Request)
}

type recommendationHandlerImpl struct {
	recommendationService recommendation.RecommendationService
	weightsService        recommendation.WeightsService
}

func NewRecommendationHandler(recommendationService recommendation.RecommendationService, weightsService recommendation.WeightsService) RecommendationHandler {
	return &recommendationHandlerImpl{
		recommendationService: recommendationService,
		weightsService:        weightsService,
	}
}

// Recommend ranks submitting employees for every submitted shift of the
// caller's business. An empty body means the current week with saved weights.
func (h *recommendationHandlerImpl) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendation.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.BusinessID = getBusinessIDFromContext(r)
	req.UserID = getUserIDFromContext(r)

	result, err := h.recommendationService.RecommendForRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *recommendationHandlerImpl) GetWeights(w http.ResponseWriter, r *http.Request) {
	result, err := h.weightsService.GetWeights(r.Context(), getUserIDFromContext(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *recommendationHandlerImpl) UpdateWeights(w http.ResponseWriter, r *http.Request) {
	var req recommendation.UpdateWeightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.UserID = getUserIDFromContext(r)

	result, err := h.weightsService.UpdateWeights(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Score weights updated", result)
}

func (h *recommendationHandlerImpl) ResetWeights(w http.ResponseWriter, r *http.Request) {
	result, err := h.weightsService.ResetWeights(r.Context(), getUserIDFromContext(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Score weights reset to defaults", result)
}
