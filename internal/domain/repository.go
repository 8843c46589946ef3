package domain

// ConnectRequest — запрос на подключение OpenCode-репозитория.
type ConnectRequest struct {
	RepositoryURL string `json:"repository_url"`
	Branch        string `json:"branch"`
	// Токен принимается для приватных репозиториев, но никогда
	// не попадает ни в ответы, ни в логи.
	AccessToken string `json:"access_token,omitempty"`
}

// ConnectAck — немедленное подтверждение без ожидания сканирования.
type ConnectAck struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	RepositoryURL string `json:"repository_url"`
	Branch        string `json:"branch"`
	Status        string `json:"status"` // Всегда "connecting"
}

// RepositorySummary описывает одно подключение для списка /repositories.
type RepositorySummary struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Branch     string `json:"branch"`
	LastSync   string `json:"last_sync"`
	AgentCount int    `json:"agent_count"`
	Status     string `json:"status"`
}
