package resp

import (
	"errors"
	"fmt"
)

// 帧级别错误：输入字节本身不合法
var (
	ErrIncorrectFirstByte        = errors.New("resp: unexpected first byte")
	ErrMissingCRLF               = errors.New("resp: missing CRLF terminator")
	ErrIncorrectBulkStringLength = errors.New("resp: incorrect bulk string length")
	ErrWrongArrayItemFormat      = errors.New("resp: array items must be bulk strings")
	ErrStringInterpretation      = errors.New("resp: frame is not a valid UTF-8 string")
	ErrInvalidInteger            = errors.New("resp: invalid integer")
)

// IncorrectFirstByteError 携带出错的类型字节
type IncorrectFirstByteError struct {
	Byte byte
}

func (e *IncorrectFirstByteError) Error() string {
	return fmt.Sprintf("resp: unexpected first byte: 0x%02X", e.Byte)
}

func (e *IncorrectFirstByteError) Is(target error) bool {
	return target == ErrIncorrectFirstByte
}

// IsFrameError 判断 err 是否属于帧级别错误
func IsFrameError(err error) bool {
	var fb *IncorrectFirstByteError
	switch {
	case errors.As(err, &fb),
		errors.Is(err, ErrMissingCRLF),
		errors.Is(err, ErrIncorrectBulkStringLength),
		errors.Is(err, ErrWrongArrayItemFormat),
		errors.Is(err, ErrStringInterpretation),
		errors.Is(err, ErrInvalidInteger):
		return true
	}
	return false
}
