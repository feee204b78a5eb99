package dashboard

import "time"

// Stats is the panel's landing snapshot
type Stats struct {
	TotalUsers            int64     `json:"totalUsers"`
	OnlineUsers           int64     `json:"onlineUsers"`
	CallAccessUsers       int64     `json:"callAccessUsers"`
	TotalAdmins           int64     `json:"totalAdmins"`
	ActiveAdmins          int64     `json:"activeAdmins"`
	TotalGroups           int64     `json:"totalGroups"`
	StandaloneInnerGroups int64     `json:"standaloneInnerGroups"`
	GeneratedAt           time.Time `json:"generatedAt"`
}
