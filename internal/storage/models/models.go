package models

import (
	"time"

	"gorm.io/datatypes"
)

// MatchRecord 匹配历史记录，每个(简历, 职位)对一行
type MatchRecord struct {
	ID                uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestUUID       string         `gorm:"type:varchar(36);index:idx_request_uuid" json:"request_uuid"` // 同一次请求的所有记录共享一个UUID
	JobFileName       string         `gorm:"type:varchar(255);index:idx_job_file" json:"job_file_name"`
	ResumeFileName    string         `gorm:"type:varchar(255)" json:"resume_file_name"`
	MatchPercent      float64        `json:"match_percent"`             // 加权总分
	NormalizedPercent float64        `json:"normalized_match_percent"`  // 同一职位批次内归一化后的得分
	SectionScores     datatypes.JSON `gorm:"type:json" json:"section_scores"`
	Explanation       string         `gorm:"type:text" json:"explanation"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (MatchRecord) TableName() string {
	return "match_records"
}
