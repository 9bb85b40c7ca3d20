package notification

type NotificationRequest struct {
	Parcel  *uint   `json:"parcel"`
	Title   *string `json:"title" validate:"omitempty,max=255"`
	Message *string `json:"message"`
	IsRead  *bool   `json:"is_read"`
}

type ListFilter struct {
	IsRead   *bool
	Ordering string
}
