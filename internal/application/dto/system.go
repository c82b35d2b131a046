package dto

type GetHealthCommand struct{}

type HealthOutput struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

type GetOpenAPISpecQuery struct{}

type OpenAPISpecOutput struct {
	Content     []byte
	ContentType string
}
