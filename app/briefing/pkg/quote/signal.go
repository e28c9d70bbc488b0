package quote

import (
	"github.com/shopspring/decimal"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/config"
)

// Signal 展示用的行情信号
type Signal string

const (
	SignalNearTargetJump   Signal = "near_target_jump"
	SignalHighVolatility   Signal = "high_volatility"
	SignalBuildingMomentum Signal = "building_momentum"
)

// Label 页面上显示的文字
func (s Signal) Label() string {
	switch s {
	case SignalNearTargetJump:
		return "🚀 Kurz vor dem Zielsprung"
	case SignalHighVolatility:
		return "⚡ Hohe Volatilität"
	default:
		return "📈 Momentum baut sich auf"
	}
}

// Thresholds 信号阈值，单位为百分比
type Thresholds struct {
	Jump       decimal.Decimal
	Volatility decimal.Decimal
}

// DefaultThresholds 8% 涨幅 / 4% 振幅
func DefaultThresholds() Thresholds {
	return Thresholds{Jump: decimal.NewFromInt(8), Volatility: decimal.NewFromInt(4)}
}

// ThresholdsFromConfig 从配置读取阈值
func ThresholdsFromConfig(cfg config.SignalConfig) Thresholds {
	t := DefaultThresholds()
	if cfg.JumpPercent != 0 {
		t.Jump = decimal.NewFromFloat(cfg.JumpPercent)
	}
	if cfg.VolatilityPercent != 0 {
		t.Volatility = decimal.NewFromFloat(cfg.VolatilityPercent)
	}
	return t
}

// Classify 涨幅优先，其次振幅，否则为蓄势
func (t Thresholds) Classify(s *Snapshot) Signal {
	switch {
	case s.PercentChange.GreaterThan(t.Jump):
		return SignalNearTargetJump
	case s.Volatility.GreaterThan(t.Volatility):
		return SignalHighVolatility
	default:
		return SignalBuildingMomentum
	}
}
