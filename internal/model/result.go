package model

import "time"

// TestResult は1回分のタイピングテスト結果を表す。作成後は変更しない。
type TestResult struct {
	ID       int64
	UserID   int64
	WPM      int
	Accuracy float64
	RawWPM   int
	TestDate time.Time
}

// LeaderboardEntry はランキング1行分の集計結果。
// テスト結果が0件のユーザーは BestWPM=0, AvgAccuracy=0, TestsTaken=0 となる。
type LeaderboardEntry struct {
	Name        string
	College     string
	BestWPM     int
	AvgAccuracy float64
	TestsTaken  int
}

// CollegeAll はカレッジで絞り込まないことを示すフィルタ値。
const CollegeAll = "all"
