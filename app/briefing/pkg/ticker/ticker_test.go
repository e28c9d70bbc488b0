package ticker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/config"
)

func TestStructured(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"plain", "TICKER: AAPL, MSFT, RHM", []string{"AAPL", "MSFT", "RHM"}},
		{"within text", "MARKT: ruhig\nTICKER:SAP ,  ALV,\nBEGRÜNDUNG: x", []string{"SAP", "ALV"}},
		{"first line wins", "TICKER: A1\nTICKER: B2", []string{"A1"}},
		{"no marker", "Keine Empfehlung heute.", nil},
		{"empty after marker", "TICKER: , ,", nil},
		{"bold marker", "**TICKER:** RHM, SAP, ALV", []string{"RHM", "SAP", "ALV"}},
		{"case insensitive", "- Ticker: RHM, SAP", []string{"RHM", "SAP"}},
		{"mid line", "Empfehlung TICKER: BAS", []string{"BAS"}},
		{"placeholder", "TICKER: N/A", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Structured(tt.text, "TICKER:"))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"RHM", "SAP", "ALV"}, SplitList("RHM, **SAP**\nALV,"))
	assert.Empty(t, SplitList("N/A"))
}

func TestHeuristic(t *testing.T) {
	got := Heuristic("Buy AAPL and RHM now, says FED, not NVDA", []string{"FED"}, 3)
	assert.Equal(t, []string{"AAPL", "RHM", "NVDA"}, got)
}

func TestHeuristic_Rules(t *testing.T) {
	t.Run("dedup keeps first seen order", func(t *testing.T) {
		assert.Equal(t, []string{"SAP", "RHM"}, Heuristic("SAP, RHM, SAP", nil, 5))
	})

	t.Run("limit", func(t *testing.T) {
		assert.Equal(t, []string{"AB", "CD"}, Heuristic("AB CD EF", nil, 2))
	})

	t.Run("letter runs are unicode aware", func(t *testing.T) {
		// ÜBER 不是纯拉丁大写；BMW-Aktie 中的 BMW 是独立字母串
		assert.Equal(t, []string{"BMW"}, Heuristic("ÜBER BMW-Aktie", nil, 3))
	})

	t.Run("length bounds", func(t *testing.T) {
		assert.Equal(t, []string{"ABCDE"}, Heuristic("A ABCDEF ABCDE", nil, 3))
	})

	t.Run("stoplist case insensitive", func(t *testing.T) {
		assert.Empty(t, Heuristic("USA DAX", []string{"usa", "dax"}, 3))
	})

	t.Run("digits split runs", func(t *testing.T) {
		assert.Equal(t, []string{"AB", "CD"}, Heuristic("AB1CD", nil, 3))
	})
}

func TestNew(t *testing.T) {
	s := New(config.TickerConfig{Mode: ModeStructured, Marker: "TICKER:"})
	assert.Equal(t, []string{"SAP"}, s.Extract("TICKER: SAP"))

	h := New(config.TickerConfig{Mode: ModeHeuristic, Stoplist: config.DefaultStoplist, Limit: 4})
	assert.Equal(t, []string{"SAP", "RHM", "ALV", "BAS"}, h.Extract("DAX: SAP RHM USA ALV BAS BMW"))
}
