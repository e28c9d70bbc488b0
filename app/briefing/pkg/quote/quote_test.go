package quote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marali-ops/aktien_checker/app/briefing/pkg/config"
)

const chartOK = `{"chart":{"result":[{
	"meta":{"symbol":"RHM.DE","currency":"EUR","longName":"Rheinmetall AG","shortName":"RHEINMETALL"},
	"timestamp":[1760000000,1760086400,1760172800,1760259200],
	"indicators":{"quote":[{
		"open":[90,95,99,101],
		"high":[91,96,101,112],
		"low":[89,94,98,106],
		"close":[90,95,100,null]
	}]}
}],"error":null}}`

func newYahoo(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestYahooClient_DailyBars(t *testing.T) {
	var gotPath, gotRange string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		_, _ = w.Write([]byte(chartOK))
	}))
	defer srv.Close()

	series, err := NewYahooClient(srv.URL+"/").DailyBars(context.Background(), "RHM.DE", 2)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/RHM.DE", gotPath)
	assert.Equal(t, "5d", gotRange)
	assert.Equal(t, "Rheinmetall AG", series.Name)
	assert.Equal(t, "EUR", series.Currency)

	// 收盘价为 null 的最后一根被跳过
	require.Len(t, series.Bars, 2)
	assert.True(t, series.Bars[0].Close.Equal(decimal.NewFromInt(95)))
	assert.True(t, series.Bars[1].Close.Equal(decimal.NewFromInt(100)))
}

func TestYahooClient_NotFound(t *testing.T) {
	srv := newYahoo(t, http.StatusNotFound, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)

	_, err := NewYahooClient(srv.URL).DailyBars(context.Background(), "XXXX", 2)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestYahooClient_ServerError(t *testing.T) {
	srv := newYahoo(t, http.StatusBadGateway, "upstream down")

	_, err := NewYahooClient(srv.URL).DailyBars(context.Background(), "SAP", 2)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), "502")
}

func TestService_Lookup(t *testing.T) {
	body := `{"chart":{"result":[{
		"meta":{"symbol":"SAP","currency":"EUR","shortName":"SAP SE"},
		"timestamp":[1760086400,1760172800],
		"indicators":{"quote":[{"open":[100,101],"high":[101,112],"low":[99,106],"close":[100,110]}]}
	}],"error":null}}`
	srv := newYahoo(t, http.StatusOK, body)

	res := NewService(NewYahooClient(srv.URL), 2).Lookup(context.Background(), " sap ")
	require.True(t, res.OK())

	snap := res.Snapshot
	assert.Equal(t, "SAP", snap.Symbol)
	assert.Equal(t, "SAP SE", snap.Name)
	assert.Equal(t, "110", snap.Price.String())
	assert.Equal(t, "10.00", snap.PercentChange.StringFixed(2))
	assert.Equal(t, "5.45", snap.Volatility.StringFixed(2))
	assert.Equal(t, int64(1760172800), snap.AsOf.Unix())
}

func TestService_LookupMissingRange(t *testing.T) {
	srv := newYahoo(t, http.StatusOK, `{"chart":{"result":[{
		"meta":{"currency":"EUR"},
		"timestamp":[1760918400,1761004800],
		"indicators":{"quote":[{
			"high":[101,null],
			"low":[99,95],
			"close":[100,104]
		}]}
	}],"error":null}}`)

	res := NewService(NewYahooClient(srv.URL), 2).Lookup(context.Background(), "SAP")
	require.True(t, res.OK())
	assert.Equal(t, "4.00", res.Snapshot.PercentChange.StringFixed(2))
	assert.True(t, res.Snapshot.Volatility.IsZero())
	assert.Equal(t, SignalBuildingMomentum, DefaultThresholds().Classify(res.Snapshot))
}

func TestService_LookupAbsence(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		srv := newYahoo(t, http.StatusOK, `{"chart":{"result":[{"meta":{},"timestamp":[],"indicators":{"quote":[{}]}}],"error":null}}`)
		res := NewService(NewYahooClient(srv.URL), 2).Lookup(context.Background(), "NOPE")
		assert.False(t, res.OK())
		assert.Equal(t, StatusEmpty, res.Status)
	})

	t.Run("zero close", func(t *testing.T) {
		srv := newYahoo(t, http.StatusOK, `{"chart":{"result":[{"meta":{},"timestamp":[1,2],"indicators":{"quote":[{"close":[0,5]}]}}],"error":null}}`)
		res := NewService(NewYahooClient(srv.URL), 2).Lookup(context.Background(), "ZERO")
		assert.Equal(t, StatusEmpty, res.Status)
	})

	t.Run("network error", func(t *testing.T) {
		res := NewService(&fakeProvider{err: errors.New("dial tcp: refused")}, 2).Lookup(context.Background(), "SAP")
		assert.Equal(t, StatusNetworkError, res.Status)
		assert.Nil(t, res.Snapshot)
	})

	t.Run("blank symbol", func(t *testing.T) {
		p := &fakeProvider{}
		res := NewService(p, 2).Lookup(context.Background(), "  ")
		assert.Equal(t, StatusEmpty, res.Status)
		assert.Equal(t, 0, p.calls)
	})
}

func TestPercentSince(t *testing.T) {
	pct, ok := PercentSince(decimal.NewFromInt(100), decimal.NewFromInt(110))
	require.True(t, ok)
	assert.Equal(t, "10.00", pct.StringFixed(2))

	_, ok = PercentSince(decimal.Zero, decimal.NewFromInt(1))
	assert.False(t, ok)
}

func TestThresholds_Classify(t *testing.T) {
	th := DefaultThresholds()
	snap := func(pct, vol float64) *Snapshot {
		return &Snapshot{PercentChange: decimal.NewFromFloat(pct), Volatility: decimal.NewFromFloat(vol)}
	}

	assert.Equal(t, SignalNearTargetJump, th.Classify(snap(8.5, 10)))
	assert.Equal(t, SignalHighVolatility, th.Classify(snap(8, 4.1)))
	assert.Equal(t, SignalBuildingMomentum, th.Classify(snap(2, 4)))

	alt := ThresholdsFromConfig(config.SignalConfig{JumpPercent: 5, VolatilityPercent: 5})
	assert.Equal(t, SignalNearTargetJump, alt.Classify(snap(6, 0)))
	assert.Equal(t, SignalBuildingMomentum, alt.Classify(snap(4, 4.5)))

	assert.Equal(t, "⚡ Hohe Volatilität", SignalHighVolatility.Label())
}

type fakeProvider struct {
	series *Series
	err    error
	calls  int
}

func (f *fakeProvider) DailyBars(_ context.Context, _ string, _ int) (*Series, error) {
	f.calls++
	return f.series, f.err
}
