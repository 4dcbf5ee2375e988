package pkg

import (
	goaway "github.com/TwiN/go-away"
)

// ModerationFilter 内容审核：命中词库返回 true。
// 默认词库之外可以通过配置追加违禁词。
type ModerationFilter struct {
	detector *goaway.ProfanityDetector
}

func NewModerationFilter(extraWords []string) *ModerationFilter {
	profanities := goaway.DefaultProfanities
	if len(extraWords) > 0 {
		profanities = append(append([]string{}, goaway.DefaultProfanities...), extraWords...)
	}
	detector := goaway.NewProfanityDetector().WithCustomDictionary(
		profanities,
		goaway.DefaultFalsePositives,
		goaway.DefaultFalseNegatives,
	)
	return &ModerationFilter{detector: detector}
}

// Check 返回文本是否包含违禁内容。
func (f *ModerationFilter) Check(text string) bool {
	return f.detector.IsProfane(text)
}
