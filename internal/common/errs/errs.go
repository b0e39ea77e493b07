package errs

import (
	"context"
	"errors"
	"fmt"
)

// 错误分类（按调用方的处置方式划分）：
// - ErrValidation: 入参缺失/非法，调用方的问题
// - ErrNotFound:   引用的实体不存在
// - ErrConflict:   区间重叠/并发写冲突
// - ErrTimeout:    存储操作超过配置的 deadline
// - ErrStorage:    底层存储不可用，本次操作失败，核心层不自动重试
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrTimeout    = errors.New("storage deadline exceeded")
	ErrStorage    = errors.New("storage failure")
)

func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Storage 把底层存储错误归入本层的分类：
// - context 超时/取消归为 ErrTimeout
// - 已经分类过的错误原样返回
// - 其余包装为 ErrStorage
func Storage(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) || errors.Is(err, ErrTimeout) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
