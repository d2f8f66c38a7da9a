package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"idea-incubation-system/internal/global/database"
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"
	"idea-incubation-system/tools"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// dashboardCacheKey 仪表盘统计的 Redis 缓存键
const dashboardCacheKey = "stats:dashboard"

// dashboardCacheTTL 缓存时长，仪表盘允许一分钟以内的延迟
const dashboardCacheTTL = time.Minute

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type phaseCount struct {
	Phase string `json:"phase"`
	Count int64  `json:"count"`
}

type dashboard struct {
	Total    int64         `json:"total"`
	ByStatus []statusCount `json:"by_status"`
	ByPhase  []phaseCount  `json:"by_phase"`
}

// Dashboard 管理端仪表盘：申报总数、按状态与按阶段的分布
// 结果缓存在 Redis，过期后重新聚合
func Dashboard(c *gin.Context) {
	ctx := context.Background()

	if cached, err := database.RDB.Get(ctx, dashboardCacheKey).Result(); err == nil {
		var d dashboard
		if json.Unmarshal([]byte(cached), &d) == nil {
			response.Success(c, d)
			return
		}
	}

	var d dashboard
	if err := database.DB.Model(&model.Idea{}).Count(&d.Total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := database.DB.Model(&model.Idea{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&d.ByStatus).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := database.DB.Model(&model.Idea{}).
		Select("program_phase as phase, count(*) as count").
		Where("program_phase <> ''").
		Group("program_phase").
		Scan(&d.ByPhase).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if b, err := json.Marshal(d); err == nil {
		if err := database.RDB.Set(ctx, dashboardCacheKey, b, dashboardCacheTTL).Err(); err != nil {
			log.Warn("仪表盘缓存写入失败", "error", err)
		}
	}

	response.Success(c, d)
}

// markRow 评分导出行
type markRow struct {
	IdeaID    uint   `excel:"创意ID"`
	Title     string `excel:"创意名称"`
	AdminName string `excel:"评审"`
	Mark      int    `excel:"评分"`
	MarkedAt  string `excel:"评分时间"`
}

// ExportMarks 导出第二阶段全部评分到 Excel
func ExportMarks(c *gin.Context) {
	var rows []markRow
	err := database.DB.Model(&model.PhaseMark{}).
		Select("phase_mark.idea_id, idea.title, phase_mark.admin_name, phase_mark.mark, DATE_FORMAT(phase_mark.marked_at, '%Y-%m-%d %H:%i') as marked_at").
		Joins("JOIN idea ON idea.id = phase_mark.idea_id").
		Where("idea.program_phase = ? AND phase_mark.mark IS NOT NULL", model.Phase2).
		Order("phase_mark.idea_id, phase_mark.admin_name").
		Scan(&rows).Error
	if err != nil {
		log.Error("查询评分导出数据失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	writeExcel(c, "marks.xlsx", "评分", rows)
}

// fundingRow 资金使用导出行
type fundingRow struct {
	IdeaID            uint   `excel:"创意ID"`
	Title             string `excel:"创意名称"`
	Source            string `excel:"资金来源"`
	Total             int64  `excel:"总额"`
	Number            int    `excel:"期数"`
	Amount            int64  `excel:"金额"`
	UtilizationStatus string `excel:"使用审核状态"`
}

// ExportFunding 导出孵化中创意的资金分期与使用审核状态
func ExportFunding(c *gin.Context) {
	var rows []fundingRow
	err := database.DB.Model(&model.Sanction{}).
		Select("sanction.idea_id, idea.title, idea.funding_source as source, idea.total_funding as total, sanction.number, sanction.amount, sanction.utilization_status").
		Joins("JOIN idea ON idea.id = sanction.idea_id").
		Where("idea.program_phase = ?", model.PhaseIncubated).
		Order("sanction.idea_id, sanction.number").
		Scan(&rows).Error
	if err != nil {
		log.Error("查询资金导出数据失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	writeExcel(c, "funding.xlsx", "资金", rows)
}

// writeExcel 生成 Excel 并写入响应
func writeExcel(c *gin.Context, filename, sheet string, data any) {
	f := excelize.NewFile()
	defer f.Close()

	if err := tools.ExportToExcel(f, sheet, data); err != nil {
		log.Error("生成 Excel 失败", "error", err)
		response.Fail(c, response.ErrServer.WithOrigin(err))
		return
	}
	f.DeleteSheet("Sheet1")

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if err := f.Write(c.Writer); err != nil {
		log.Error("Excel 写入响应失败", "error", err)
	}
}
