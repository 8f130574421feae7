package converter

import (
	"fundihub/internal/delivery/dto"
	"fundihub/internal/domain/entity"
)

// ReviewToResponse converts a Review entity to ReviewResponse DTO
func ReviewToResponse(review *entity.Review) *dto.ReviewResponse {
	if review == nil {
		return nil
	}

	return &dto.ReviewResponse{
		ID:         review.ID,
		BookingID:  review.BookingID,
		ReviewerID: review.ReviewerID,
		ReviewedID: review.ReviewedID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}

// ReviewsToResponses converts a slice of Review entities to ReviewResponse DTOs
func ReviewsToResponses(reviews []entity.Review) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		resp := ReviewToResponse(&review)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
