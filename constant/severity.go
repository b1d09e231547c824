package constant

// 重症度スコア関連。
const (
	SeverityBase int = 3
	SeverityMax  int = 10

	SeverityCriticalThreshold int = 8
	SeveritySeriousThreshold  int = 5
	SeverityStableThreshold   int = 3
)

// バイタル毎の閾値。いずれも境界値自体は正常範囲に含まれる。
const (
	HeartRateUpperLimit   float64 = 120
	HeartRateLowerLimit   float64 = 50
	Spo2CriticalLimit     float64 = 90
	Spo2WarningLimit      float64 = 94
	RespRateUpperLimit    float64 = 25
	RespRateLowerLimit    float64 = 10
	TemperatureUpperLimit float64 = 39
	TemperatureLowerLimit float64 = 35
	SystolicUpperLimit    float64 = 180
	SystolicLowerLimit    float64 = 90
	DiastolicUpperLimit   float64 = 110
)

// バイタル値の有無を調べる。
// 生体情報として0はあり得ないため、0は未計測として扱う。
func hasVital(v *float64) bool {
	return v != nil && *v != 0
}

// DeriveSeverity バイタルサインから重症度スコアを導出する。
// 各引数はnilの場合未計測を表す。基礎点に閾値超過分を加算し、上限で打ち切る。
// SpO2の二段階のみ排他で、他の加算は互いに独立。
func DeriveSeverity(heartRate, spo2, respRate, temperature, systolic, diastolic *float64) int {
	score := SeverityBase

	if hasVital(heartRate) && (*heartRate > HeartRateUpperLimit || *heartRate < HeartRateLowerLimit) {
		score += 2
	}

	if hasVital(spo2) && *spo2 < Spo2CriticalLimit {
		score += 3
	} else if hasVital(spo2) && *spo2 < Spo2WarningLimit {
		score += 1
	}

	if hasVital(respRate) && (*respRate > RespRateUpperLimit || *respRate < RespRateLowerLimit) {
		score += 2
	}

	if hasVital(temperature) && (*temperature > TemperatureUpperLimit || *temperature < TemperatureLowerLimit) {
		score += 1
	}

	if hasVital(systolic) && (*systolic > SystolicUpperLimit || *systolic < SystolicLowerLimit) {
		score += 2
	}

	if hasVital(diastolic) && *diastolic > DiastolicUpperLimit {
		score += 1
	}

	if score > SeverityMax {
		score = SeverityMax
	}

	return score
}

// DeriveCondition 重症度スコアから容態ラベルを導出する。
func DeriveCondition(score int) Condition {
	switch {
	case score >= SeverityCriticalThreshold:
		return ConditionCritical
	case score >= SeveritySeriousThreshold:
		return ConditionSerious
	case score >= SeverityStableThreshold:
		return ConditionStable
	default:
		return ConditionRecovering
	}
}
