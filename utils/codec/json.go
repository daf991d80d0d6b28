// connect的JSON编解码器，用于不依赖protobuf生成代码的Go结构体请求/响应
package codec

import (
	"encoding/json"
	"fmt"
)

// JSON 以encoding/json编解码消息，注册名与connect内置的protojson相同，
// Content-Type为application/json
type JSON struct{}

func (JSON) Name() string {
	return "json"
}

func (JSON) Marshal(message any) ([]byte, error) {
	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal %T: %w", message, err)
	}
	return data, nil
}

func (JSON) Unmarshal(data []byte, message any) error {
	// 空请求体视为零值消息
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, message); err != nil {
		return fmt.Errorf("codec: unmarshal %T: %w", message, err)
	}
	return nil
}
