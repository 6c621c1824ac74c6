package models

// Resource is a compute offer advertised by a provider: capacity, hourly
// prices and marketplace metadata. Mutable by its owning provider only.
type Resource struct {
	Id            string  `json:"id"`
	Provider      string  `json:"provider"`
	ProviderId    string  `json:"provider_id"`
	WalletAddress string  `json:"wallet_address"`
	Location      string  `json:"location"`
	CpuCores      int     `json:"cpu_cores"`
	GpuMemory     int     `json:"gpu_memory"`
	CpuPrice      float64 `json:"cpu_price"`
	GpuPrice      float64 `json:"gpu_price"`
	Availability  int     `json:"availability"`
	Rating        float64 `json:"rating"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

// Task is one unit of work bound to a resource and a consumer. Payment and
// receipt fields stay empty until the task settles.
type Task struct {
	Id              string  `json:"id"`
	Type            string  `json:"type"`
	Description     string  `json:"description"`
	ConsumerId      string  `json:"consumer_id"`
	ProviderId      string  `json:"provider_id"`
	ResourceId      string  `json:"resource_id"`
	WalletAddress   string  `json:"wallet_address"`
	CpuCores        int     `json:"cpu_cores"`
	GpuMemory       int     `json:"gpu_memory"`
	Status          string  `json:"status"`
	StartTime       string  `json:"start_time,omitempty"`
	EndTime         string  `json:"end_time,omitempty"`
	Duration        string  `json:"duration,omitempty"`
	CpuPayment      float64 `json:"cpu_payment"`
	GpuPayment      float64 `json:"gpu_payment"`
	TotalPayment    float64 `json:"total_payment"`
	TransactionHash string  `json:"transaction_hash,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at,omitempty"`
}

// PaymentTransaction is the immutable settlement record, written exactly once
// per settled task.
type PaymentTransaction struct {
	TaskId                string  `json:"task_id"`
	ProviderId            string  `json:"provider_id"`
	ConsumerWalletAddress string  `json:"consumer_wallet_address"`
	ProviderWalletAddress string  `json:"provider_wallet_address"`
	CpuPayment            float64 `json:"cpu_payment"`
	GpuPayment            float64 `json:"gpu_payment"`
	TotalPayment          float64 `json:"total_payment"`
	TransactionHash       string  `json:"transaction_hash"`
	Timestamp             string  `json:"timestamp"`
}

type HostInfo struct {
	OperatingSystem string `json:"os"`
	Architecture    string `json:"arch"`
	CPUCores        int    `json:"cpu_cores"`
}

// TaskEvent is pushed to websocket subscribers whenever a task changes state.
type TaskEvent struct {
	TaskId    string `json:"task_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
