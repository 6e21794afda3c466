package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// MoneyScale 金额统一保留的小数位
const MoneyScale = 2

// Money 统一金额类型（保留 2 位小数，四舍五入）
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: RoundAmount(amount)}
}

// NewMoneyFromString 从字符串创建金额，解析失败返回错误
func NewMoneyFromString(raw string) (Money, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, err
	}
	return NewMoneyFromDecimal(d), nil
}

// MustMoney 从字符串创建金额，仅用于常量与测试
func MustMoney(raw string) Money {
	return NewMoneyFromDecimal(decimal.RequireFromString(raw))
}

// RoundAmount 金额舍入（half-up）
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyScale)
}

// MulQuantity 计算 单价 × 数量
func (m Money) MulQuantity(quantity int) decimal.Decimal {
	return m.Decimal.Mul(decimal.NewFromInt(int64(quantity)))
}

// MarshalJSON 统一输出 2 位小数的字符串
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 解析金额（字符串或数字）
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.Decimal = RoundAmount(d)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	m.Decimal = RoundAmount(decimal.NewFromFloat(f))
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return RoundAmount(m.Decimal).Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = RoundAmount(m.Decimal)
	return nil
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return RoundAmount(m.Decimal).StringFixed(MoneyScale)
}
