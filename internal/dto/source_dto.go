package dto

type AddSourceRequest struct {
	Category string `json:"category" validate:"required"`
	Source   string `json:"source" validate:"required"`
}

type SourceCatalogResponse struct {
	Categories map[string][]string `json:"categories"`
}
