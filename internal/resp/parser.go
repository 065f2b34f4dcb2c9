package resp

import (
	"bytes"

	"respkv/internal/common"
)

// Decode 把一次读取得到的完整字节块解析为 Frame
// 要求 buf 恰好是一帧：不支持半包，也不支持一次读到多帧
func Decode(buf []byte) (Frame, error) {
	if err := checkCRLF(buf); err != nil {
		return nil, err
	}

	body := buf[1:]
	switch buf[0] {
	case SimpleStringByte:
		return decodeSimpleString(body)
	case IntegerByte:
		v, err := decodeInteger(body)
		if err != nil {
			return nil, err
		}
		return Integer(v), nil
	case BulkStringByte:
		return decodeBulkString(body)
	case ArrayByte:
		return decodeArray(body)
	default:
		return nil, &IncorrectFirstByteError{Byte: buf[0]}
	}
}

// 整个 buffer 必须以 \r\n 结尾
func checkCRLF(buf []byte) error {
	n := len(buf)
	if n < 2 || buf[n-2] != CR || buf[n-1] != LF {
		return ErrMissingCRLF
	}
	return nil
}

func decodeSimpleString(buf []byte) (Frame, error) {
	n, err := inputLength(buf)
	if err != nil {
		return nil, err
	}
	return SimpleString(common.CloneBytes(buf[:n])), nil
}

// decodeInteger 读取可选符号位和数字直到第一个 \r
// 不做溢出检查，超出 int64 时按补码回绕
func decodeInteger(buf []byte) (int64, error) {
	n, err := inputLength(buf)
	if err != nil {
		return 0, err
	}

	offset, sign := 0, int64(1)
	if n > 0 {
		switch buf[0] {
		case '+':
			offset = 1
		case '-':
			offset = 1
			sign = -1
		}
	}

	var v int64
	for i := offset; i < n; i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			return 0, ErrInvalidInteger
		}
		v = v*10 + int64(c-'0')
	}
	return v * sign, nil
}

func decodeBulkString(buf []byte) (Frame, error) {
	dataLen, err := decodeInteger(buf)
	if err != nil {
		return nil, err
	}
	// $-1\r\n
	if dataLen == -1 {
		return Null{}, nil
	}
	if dataLen < 0 {
		return nil, ErrIncorrectBulkStringLength
	}

	lf := bytes.IndexByte(buf, LF)
	if lf < 0 {
		return nil, ErrMissingCRLF
	}
	start := lf + 1

	// 数据之后至少还要有一个 \r
	if dataLen >= int64(len(buf)-start) {
		return nil, ErrIncorrectBulkStringLength
	}
	end := start + int(dataLen)

	payload := buf[start:end]
	if bytes.IndexByte(payload, CR) >= 0 || bytes.IndexByte(payload, LF) >= 0 {
		return nil, ErrIncorrectBulkStringLength
	}
	if buf[end] != CR {
		return nil, ErrIncorrectBulkStringLength
	}

	return BulkString(common.CloneBytes(payload)), nil
}

func decodeArray(buf []byte) (Frame, error) {
	count, err := decodeInteger(buf)
	if err != nil {
		return nil, err
	}
	n, err := inputLength(buf)
	if err != nil {
		return nil, err
	}

	items := Array{}
	// 跳过 *<count>\r\n
	itemStart := n + 2
	for i := int64(0); i < count; i++ {
		if itemStart > len(buf) {
			return nil, ErrWrongArrayItemFormat
		}
		slice := buf[itemStart:]

		// 每个元素形如 $<len>\r\n<data>\r\n，由两个 \n 界定
		firstLF := bytes.IndexByte(slice, LF)
		if firstLF < 0 {
			return nil, ErrWrongArrayItemFormat
		}
		secondLF := bytes.IndexByte(slice[firstLF+1:], LF)
		if secondLF < 0 {
			return nil, ErrWrongArrayItemFormat
		}
		itemLen := firstLF + 1 + secondLF + 1

		item, err := Decode(slice[:itemLen])
		if err != nil {
			return nil, err
		}
		bulk, ok := item.(BulkString)
		if !ok {
			return nil, ErrWrongArrayItemFormat
		}
		items = append(items, bulk)
		itemStart += itemLen
	}

	return items, nil
}

// inputLength 返回第一个 \r 之前的字节数
func inputLength(buf []byte) (int, error) {
	n := bytes.IndexByte(buf, CR)
	if n < 0 {
		return 0, ErrMissingCRLF
	}
	return n, nil
}
