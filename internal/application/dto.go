package application

type UpdateStatusDTO struct {
	Status  string  `json:"status" validate:"required"`
	Remarks *string `json:"remarks,omitempty" validate:"omitempty,max=500"`
}

type ListResponse struct {
	Applications []View `json:"applications"`
}
