package dto

type SystemInfoResponse struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

type ServerStatsResponse struct {
	CategoryCount int64              `json:"categoryCount"`
	ProductCount  int64              `json:"productCount"`
	ImageCount    int64              `json:"imageCount"`
	StoredFiles   int                `json:"storedFiles"`
	StorageUsage  int64              `json:"storageUsage"`
	SystemInfo    SystemInfoResponse `json:"systemInfo"`
}
