package dto

type IngestRequest struct {
	Scope string `json:"scope"`
	Text  string `json:"text" validate:"required"`
}

type IngestResponse struct {
	Scope     string `json:"scope"`
	Chunks    int    `json:"chunks"`
	IndexSize int    `json:"index_size"`
}
