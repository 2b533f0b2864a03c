package catalog

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	ImageURL    string  `json:"image_url"`
}

// UpdateServiceRequest carries partial updates; nil fields are left as is.
type UpdateServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
}

type ServiceResponse struct {
	ID             int64   `json:"id"`
	PhotographerID int64   `json:"photographer_id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	Price          float64 `json:"price"`
	ImageURL       string  `json:"image_url,omitempty"`
}
