package models

// Request bodies are bound and validated at the API boundary so that only
// typed values reach the engine.

type RegisterResourceRequest struct {
	Provider      string  `json:"provider"`
	ProviderId    string  `json:"provider_id" binding:"required"`
	WalletAddress string  `json:"wallet_address" binding:"required"`
	Location      string  `json:"location" binding:"required"`
	CpuCores      int     `json:"cpu_cores"`
	GpuMemory     int     `json:"gpu_memory"`
	CpuPrice      float64 `json:"cpu_price"`
	GpuPrice      float64 `json:"gpu_price"`
	Availability  int     `json:"availability"`
	Rating        float64 `json:"rating"`
}

type UpdateResourceRequest struct {
	Id           string   `json:"id" binding:"required"`
	ProviderId   string   `json:"provider_id" binding:"required"`
	Location     *string  `json:"location,omitempty"`
	CpuCores     *int     `json:"cpu_cores,omitempty"`
	GpuMemory    *int     `json:"gpu_memory,omitempty"`
	CpuPrice     *float64 `json:"cpu_price,omitempty"`
	GpuPrice     *float64 `json:"gpu_price,omitempty"`
	Availability *int     `json:"availability,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

type SubmitTaskRequest struct {
	Type          string `json:"type" binding:"required"`
	Description   string `json:"description"`
	ConsumerId    string `json:"consumer_id" binding:"required"`
	ResourceId    string `json:"resource_id" binding:"required"`
	WalletAddress string `json:"wallet_address" binding:"required"`
	CpuCores      int    `json:"cpu_cores"`
	GpuMemory     int    `json:"gpu_memory"`
}

// CompleteTaskRequest settles a task. Usage seconds are optional; when both
// are nil the controller derives them from the task start time. Simulate
// selects the simulated payment sender and must be requested explicitly.
type CompleteTaskRequest struct {
	CpuSeconds *float64 `json:"cpu_seconds,omitempty"`
	GpuSeconds *float64 `json:"gpu_seconds,omitempty"`
	Simulate   bool     `json:"simulate"`
}
