package evaluation

import (
	"idea-incubation-system/internal/model"
)

// Summary 第二阶段评分汇总
type Summary struct {
	Count int               `json:"count"` // 已评分的管理员数
	Mean  *float64          `json:"mean"`  // 平均分，无人评分时为 null
	Marks []model.PhaseMark `json:"marks"` // 按可见性过滤后的明细
}

// Summarize 汇总评分并按身份过滤明细
// 超级管理员可见全部评分，普通管理员只能看到自己的
// 只读聚合，评分写入只在 idea 模块
func Summarize(marks []model.PhaseMark, viewerUID string, viewerSuperAdmin bool) Summary {
	count := 0
	sum := 0
	for _, m := range marks {
		if m.Mark != nil {
			count++
			sum += *m.Mark
		}
	}

	var mean *float64
	if count > 0 {
		v := float64(sum) / float64(count)
		mean = &v
	}

	visible := make([]model.PhaseMark, 0, len(marks))
	for _, m := range marks {
		if viewerSuperAdmin || m.AdminUID == viewerUID {
			visible = append(visible, m)
		}
	}

	return Summary{Count: count, Mean: mean, Marks: visible}
}
