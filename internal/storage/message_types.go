package storage

import "time"

// ParseTaskMessage 简历解析任务消息，由API层发布、worker消费
type ParseTaskMessage struct {
	RecordID         string    `json:"record_id"`          // 解析记录ID，主键
	OriginalFilename string    `json:"original_filename"`  // 原始文件名
	OriginalFilePath string    `json:"original_file_path"` // MinIO中的对象路径
	RawFileMD5       string    `json:"raw_file_md5,omitempty"`
	SubmittedAt      time.Time `json:"submitted_at"`
}
