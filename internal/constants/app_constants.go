package constants

import "time"

const (
	// 上传文件相关限制
	MinUploadFileBytes = 50      // 小于该字节数的上传文件视为空文件或损坏文件
	PDFFileExtension   = ".pdf"  // 仅接受PDF格式的简历与职位描述
	MinValidPDFBytes   = 10      // PDF有效性校验的最小文件大小
	PDFMagicHeader     = "%PDF-" // PDF文件魔数

	// 文本处理相关
	DefaultMaxTextChars = 4000 // 参与匹配计算的文本截断长度（按字符数）

	// 缓存键前缀（Redis后端使用，文件后端使用哈希文件名）
	TextCacheKeyPrefix   = "matcher:text:" // 原始文档文本缓存，按文件内容MD5寻址
	VectorCacheKeyPrefix = "matcher:vec:"  // 向量缓存，按文本MD5寻址

	// 缓存默认过期时间
	DefaultTextCacheTTL   = 30 * 24 * time.Hour // 文本缓存默认过期时间
	DefaultVectorCacheTTL = 30 * 24 * time.Hour // 向量缓存默认过期时间
)
