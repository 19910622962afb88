// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はメトリクス収集のインターフェース。
// サービス層とHTTPミドルウェアから利用する。
type Recorder interface {
	RecordSignup()
	RecordLogin(outcome string)
	RecordResult(wpm int, accuracy float64)
	RecordLeaderboardView(college string)
	RecordHTTPStatus(statusCode int)
}

// ログイン試行の結果ラベル
const (
	LoginSuccess            = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginRejected           = "rejected"
	LoginError              = "error"
)

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	signups          prometheus.Counter
	logins           *prometheus.CounterVec
	results          prometheus.Counter
	wpm              prometheus.Histogram
	accuracy         prometheus.Histogram
	leaderboardViews *prometheus.CounterVec
	httpStatus       *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "typeboard_signups_total",
			Help: "サインアップ成功の合計数",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "typeboard_logins_total",
			Help: "結果別のログイン試行数",
		}, []string{"outcome"}),
		results: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "typeboard_results_submitted_total",
			Help: "記録されたテスト結果の合計数",
		}),
		wpm: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "typeboard_result_wpm",
			Help:    "記録されたテスト結果のwpm分布",
			Buckets: []float64{0, 20, 40, 60, 80, 100, 120, 150, 200},
		}),
		accuracy: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "typeboard_result_accuracy_percent",
			Help:    "記録されたテスト結果の正確率（%）分布",
			Buckets: []float64{50, 70, 80, 90, 95, 98, 100},
		}),
		leaderboardViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "typeboard_leaderboard_views_total",
			Help: "ランキング表示回数（all または college 絞り込み）",
		}, []string{"scope"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "typeboard_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.signups,
		c.logins,
		c.results,
		c.wpm,
		c.accuracy,
		c.leaderboardViews,
		c.httpStatus,
	)

	return c
}

// RecordSignup はサインアップ成功を記録する。
func (c *Collector) RecordSignup() {
	c.signups.Inc()
}

// RecordLogin はログイン試行の結果を記録する。
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordResult はテスト結果の記録と値の分布を記録する。
// 値の範囲検証は行わないため、異常値もそのまま観測される。
func (c *Collector) RecordResult(wpm int, accuracy float64) {
	c.results.Inc()
	c.wpm.Observe(float64(wpm))
	c.accuracy.Observe(accuracy)
}

// RecordLeaderboardView はランキング表示を記録する。
// カレッジ名はラベルのカーディナリティを抑えるため scope に丸める。
func (c *Collector) RecordLeaderboardView(college string) {
	scope := "college"
	if college == "" || college == "all" {
		scope = "all"
	}
	c.leaderboardViews.WithLabelValues(scope).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// SetupMetricsRoute はPrometheusスクレイプ用のHTTPハンドラーを返す。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop は何も記録しないRecorder。テストやメトリクス無効時に使う。
type Nop struct{}

func (Nop) RecordSignup() {}
func (Nop) RecordLogin(string) {}
func (Nop) RecordResult(int, float64) {}
func (Nop) RecordLeaderboardView(string) {}
func (Nop) RecordHTTPStatus(int) {}

// compile-time interface checks
var _ Recorder = (*Collector)(nil)
var _ Recorder = Nop{}
