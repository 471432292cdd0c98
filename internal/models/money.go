package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const moneyScale = 2

// Money 金额，精确到分；JSON 与字符串形式固定两位小数
type Money struct {
	decimal.Decimal
}

// ZeroMoney 零金额
func ZeroMoney() Money {
	return Money{Decimal: decimal.Zero}
}

// NewMoneyFromDecimal 四舍五入到分
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(moneyScale)}
}

func NewMoneyFromInt(amount int64) Money {
	return Money{Decimal: decimal.NewFromInt(amount)}
}

// ParseMoney 解析 "6.50" 形式的金额
func ParseMoney(raw string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", raw, err)
	}
	return NewMoneyFromDecimal(d), nil
}

func (m Money) IsPositive() bool {
	return m.Decimal.IsPositive()
}

// Times 单价乘以数量
func (m Money) Times(quantity int) Money {
	return NewMoneyFromDecimal(m.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
}

func (m Money) Plus(other Money) Money {
	return NewMoneyFromDecimal(m.Decimal.Add(other.Decimal))
}

func (m Money) String() string {
	return m.Decimal.StringFixed(moneyScale)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 同时接受 "6.50" 与 6.5
func (m *Money) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "" || raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = s
	}
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value 以 decimal 字符串写入数据库
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(moneyScale).Value()
}

// Scan 兼容驱动返回的字符串、浮点与整数
func (m *Money) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	*m = NewMoneyFromDecimal(d)
	return nil
}
