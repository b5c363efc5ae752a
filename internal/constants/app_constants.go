package constants

const (
	// DefaultParserVersion 解析器版本号，配置未指定时写入落库记录
	DefaultParserVersion = "1.0"

	// 解析记录状态
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusPending   = "pending"

	// 支持的上传文件类型
	FileTypePDF = ".pdf"
	FileTypeTXT = ".txt"
)
