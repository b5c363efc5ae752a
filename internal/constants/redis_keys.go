package constants

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// ResumeModulePrefix 简历模块
	ResumeModulePrefix = "resume"
	// FileModulePrefix 文件模块
	FileModulePrefix = "file"

	// EntityDedupSet 去重集合实体
	EntityDedupSet = "dedup_set"
	// EntityMD5ToRecord MD5到解析记录ID的映射实体
	EntityMD5ToRecord = "md5_to_record"

	// KeyTextMD5Set 解析文本MD5集合，用于快速去重 (SET)
	// 格式: app:resume:dedup_set
	KeyTextMD5Set = AppPrefix + ":" + ResumeModulePrefix + ":" + EntityDedupSet

	// KeyTextMD5ToRecordID 文本MD5到解析记录ID的映射 (STRING)
	// 格式: app:resume:md5_to_record:{md5}
	KeyTextMD5ToRecordID = AppPrefix + ":" + ResumeModulePrefix + ":" + EntityMD5ToRecord + ":%s"

	// KeyFileMD5Set 原始文件MD5集合 (SET)
	// 格式: app:file:dedup_set
	KeyFileMD5Set = AppPrefix + ":" + FileModulePrefix + ":" + EntityDedupSet
)
