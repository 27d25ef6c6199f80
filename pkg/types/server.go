package types

// ServerInfo is the static metadata served at the root endpoint.
type ServerInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	DocsURL     string `json:"docs_url"`
}

// HealthStatus is the body returned by the health endpoint.
type HealthStatus struct {
	Status         string `json:"status"`
	AvailableTools int    `json:"available_tools"`
}
