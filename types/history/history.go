package history

import (
	parcelModel "parcel-tracking/models/parcel"
	"time"
)

type StatusHistoryResponse struct {
	ID                uint               `json:"id"`
	Parcel            uint               `json:"parcel"`
	PreviousStatus    parcelModel.Status `json:"previous_status"`
	NewStatus         parcelModel.Status `json:"new_status"`
	ChangedBy         *uint              `json:"changed_by"`
	ChangedByUsername *string            `json:"changed_by_username"`
	Notes             *string            `json:"notes"`
	CreatedAt         time.Time          `json:"created_at"`
}

// NewStatusHistoryResponse reads the username from a preloaded ChangedBy.
func NewStatusHistoryResponse(h *parcelModel.StatusHistory) StatusHistoryResponse {
	resp := StatusHistoryResponse{
		ID:             h.ID,
		Parcel:         h.ParcelID,
		PreviousStatus: h.PreviousStatus,
		NewStatus:      h.NewStatus,
		ChangedBy:      h.ChangedByID,
		Notes:          h.Notes,
		CreatedAt:      h.CreatedAt,
	}
	if h.ChangedBy != nil {
		username := h.ChangedBy.Username
		resp.ChangedByUsername = &username
	}
	return resp
}

func NewStatusHistoryList(rows []parcelModel.StatusHistory) []StatusHistoryResponse {
	out := make([]StatusHistoryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewStatusHistoryResponse(&rows[i]))
	}
	return out
}

type DeliveryHistoryResponse struct {
	ID           uint             `json:"id"`
	User         uint             `json:"user"`
	UserUsername string           `json:"user_username"`
	Parcel       uint             `json:"parcel"`
	Role         parcelModel.Role `json:"role"`
	Timestamp    time.Time        `json:"timestamp"`
}

func NewDeliveryHistoryResponse(h *parcelModel.DeliveryHistory) DeliveryHistoryResponse {
	return DeliveryHistoryResponse{
		ID:           h.ID,
		User:         h.UserID,
		UserUsername: h.User.Username,
		Parcel:       h.ParcelID,
		Role:         h.Role,
		Timestamp:    h.Timestamp,
	}
}

type StatusHistoryFilter struct {
	ParcelID *uint
}

type DeliveryHistoryFilter struct {
	Role     string
	Ordering string
}
