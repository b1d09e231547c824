package service

import (
	"github.com/sirupsen/logrus"
)

// Service 各サービス共通の基盤。ロガーは呼び出し側から注入される。
type Service struct {
	Log *logrus.Entry
}

// 注入されていない場合、標準のロガーを返す。
func (s *Service) logger() *logrus.Entry {
	if s == nil || s.Log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}

	return s.Log
}
