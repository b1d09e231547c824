package constant

// Language 言語。
type Language string

const (
	LanguageEn Language = "en" // 英語。
	LanguageJa Language = "ja" // 日本語。
)

// 容態ラベル。重症度スコアから導出される。
type Condition string

const (
	ConditionRecovering Condition = "Recovering"
	ConditionStable     Condition = "Stable"
	ConditionSerious    Condition = "Serious"
	ConditionCritical   Condition = "Critical"
)

var (
	Conditions = []Condition{
		ConditionRecovering,
		ConditionStable,
		ConditionSerious,
		ConditionCritical,
	}
)

// 予定の状態。
type ScheduleStatus string

const (
	ScheduleStatusUpcoming  ScheduleStatus = "upcoming"
	ScheduleStatusCompleted ScheduleStatus = "completed"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

var (
	ScheduleStatuses = []ScheduleStatus{
		ScheduleStatusUpcoming,
		ScheduleStatusCompleted,
		ScheduleStatusCancelled,
	}
)
