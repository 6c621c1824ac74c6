package constants

// resource status
const ResourceStatusActive = "active"
const ResourceStatusInactive = "inactive"

// task status
const TaskStatusPending string = "pending"
const TaskStatusRunning string = "running"
const TaskStatusCompleted string = "completed"
const TaskStatusFailed string = "failed"

const TASK_SETTLE string = "worker.settle"

const REDIS_RESOURCE_PREFIX = "RESOURCE:"

const SECONDS_PER_HOUR = 3600
