package physics

import (
	"fmt"
	"strings"
)

// Field 场景参数字段
type Field int

const (
	FieldV0 Field = iota // 接近速度
	FieldD0              // 初始距离
	FieldL               // 路口宽度
	FieldTd              // 反应时间
	FieldAa              // 加速度
	FieldAd              // 减速度
)

// Fields 所有字段，按输入框顺序排列
var Fields = []Field{FieldV0, FieldD0, FieldL, FieldTd, FieldAa, FieldAd}

var fieldNames = map[Field]string{
	FieldV0: "v0",
	FieldD0: "d0",
	FieldL:  "l",
	FieldTd: "td",
	FieldAa: "aa",
	FieldAd: "ad",
}

var fieldUnits = map[Field]string{
	FieldV0: "km/h",
	FieldD0: "m",
	FieldL:  "m",
	FieldTd: "s",
	FieldAa: "m/s²",
	FieldAd: "m/s²",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Unit 界面显示单位（v0以km/h显示）
func (f Field) Unit() string {
	return fieldUnits[f]
}

// ToDisplay 引擎单位 -> 界面单位
func (f Field) ToDisplay(v float64) float64 {
	if f == FieldV0 {
		return MsToKmh(v)
	}
	return v
}

// FromDisplay 界面单位 -> 引擎单位
func (f Field) FromDisplay(v float64) float64 {
	if f == FieldV0 {
		return KmhToMs(v)
	}
	return v
}

// ParseField 根据名称（不区分大小写）查找字段
func ParseField(name string) (Field, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", name)
}

func (f Field) MarshalText() ([]byte, error) {
	if _, ok := fieldNames[f]; !ok {
		return nil, fmt.Errorf("unknown field %d", int(f))
	}
	return []byte(f.String()), nil
}

func (f *Field) UnmarshalText(text []byte) error {
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
