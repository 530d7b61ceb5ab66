package profession

// Profession represents a profession catalog entry as returned by the backend
type Profession struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// ListResponse is the paginated profession listing
type ListResponse struct {
	Professions []Profession `json:"professions"`
	Total       int          `json:"total"`
	Page        int          `json:"page"`
	Size        int          `json:"size"`
	TotalPages  int          `json:"total_pages"`
}
