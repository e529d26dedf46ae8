package matching

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrExtractionFailed = errors.New("提取文档文本失败")
	ErrInvalidDocument  = errors.New("文档校验失败")
	ErrEmbeddingFailed  = errors.New("向量计算失败")
)

// MatchError 包含详细错误信息的自定义错误
type MatchError struct {
	Op      string // 出错的操作：extract、embed、validate
	BaseErr error
	Detail  string
}

func (e *MatchError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s): %s", e.BaseErr, e.Op, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s)", e.BaseErr, e.Op)
}

func (e *MatchError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *MatchError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewExtractionError(detail string) error {
	return &MatchError{
		Op:      "extract",
		BaseErr: ErrExtractionFailed,
		Detail:  detail,
	}
}

func NewInvalidDocumentError(detail string) error {
	return &MatchError{
		Op:      "validate",
		BaseErr: ErrInvalidDocument,
		Detail:  detail,
	}
}

func NewEmbeddingError(detail string) error {
	return &MatchError{
		Op:      "embed",
		BaseErr: ErrEmbeddingFailed,
		Detail:  detail,
	}
}
