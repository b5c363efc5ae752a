package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ParseRecord 简历解析记录表，保存一次解析的输入指纹与结构化输出
type ParseRecord struct {
	RecordID         string         `gorm:"type:char(36);primaryKey"`
	OriginalFilename string         `gorm:"type:varchar(255)"`
	OriginalFilePath string         `gorm:"type:varchar(1024)"` // MinIO中的对象路径
	RawTextMD5       string         `gorm:"type:char(32);index:idx_pr_raw_text_md5"`
	ParsedJSON       datatypes.JSON `gorm:"type:json"` // 归一化后的结构化记录
	ConfidenceJSON   datatypes.JSON `gorm:"type:json"` // 字段置信度明细
	OverallScore     float64        `gorm:"type:float"`
	ParserVersion    string         `gorm:"type:varchar(50)"`
	Status           string         `gorm:"type:varchar(50);default:'completed';index:idx_pr_status"`
	CreatedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (ParseRecord) TableName() string {
	return "parse_records"
}

// ToJSON 将任意可序列化的值转换为datatypes.JSON
func ToJSON(v interface{}) (datatypes.JSON, error) {
	if v == nil {
		return datatypes.JSON("null"), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
