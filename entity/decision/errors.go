package decision

import (
	"fmt"
	"math"

	"github.com/tsinghua-fib-lab/yellowlight-sim/entity/physics"
)

// DomainError 输入超出引擎定义域
// 说明：aa=0或ad=0会让判别式公式除零，引擎拒绝计算而不是输出NaN/Inf
type DomainError struct {
	Field  physics.Field
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("decision: %v=%v out of domain: %s", e.Field, e.Value, e.Reason)
}

// checkDomain 检查 ad < 0 < aa 且所有字段均为有限值
func checkDomain(s physics.PhysicsState) error {
	for _, f := range physics.Fields {
		if v := s.Get(f); math.IsNaN(v) || math.IsInf(v, 0) {
			return &DomainError{Field: f, Value: v, Reason: "not a finite number"}
		}
	}
	if s.Aa <= 0 {
		return &DomainError{Field: physics.FieldAa, Value: s.Aa, Reason: "acceleration must be positive"}
	}
	if s.Ad >= 0 {
		return &DomainError{Field: physics.FieldAd, Value: s.Ad, Reason: "deceleration must be negative"}
	}
	return nil
}
