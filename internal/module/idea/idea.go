package idea

import (
	"strconv"

	"idea-incubation-system/internal/global/database"
	"idea-incubation-system/internal/global/jwt"
	"idea-incubation-system/internal/global/proofstore"
	"idea-incubation-system/internal/global/response"
	"idea-incubation-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// TeamMemberReq 结构化团队成员
type TeamMemberReq struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Institute        string `json:"institute"`
	Department       string `json:"department"`
	EnrollmentNumber string `json:"enrollment_number"`
}

// IdeaSubmitReq 定义创意申报请求的结构体
type IdeaSubmitReq struct {
	Title            string          `json:"title" binding:"required"`   // 创意名称
	Problem          string          `json:"problem" binding:"required"` // 要解决的问题
	Solution         string          `json:"solution" binding:"required"`
	Uniqueness       string          `json:"uniqueness"`
	DevelopmentStage string          `json:"development_stage"`
	TeamMembersText  string          `json:"team_members_text"`
	TeamMembers      []TeamMemberReq `json:"team_members"` // 结构化成员，可选
	Email            string          `json:"email"`
	PresentationURL  string          `json:"presentation_url"`
}

// SubmitIdea 申报人提交创意
func SubmitIdea(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req IdeaSubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创意申报请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	idea := model.Idea{
		ApplicantUID:     payload.UID,
		ApplicantName:    payload.NickName,
		ApplicantEmail:   req.Email,
		Title:            req.Title,
		Problem:          req.Problem,
		Solution:         req.Solution,
		Uniqueness:       req.Uniqueness,
		DevelopmentStage: req.DevelopmentStage,
		TeamMembersText:  req.TeamMembersText,
		PresentationURL:  req.PresentationURL,
		Status:           model.StatusSubmitted,
	}
	for i, m := range req.TeamMembers {
		idea.TeamMembers = append(idea.TeamMembers, model.TeamMember{
			Name:             m.Name,
			Email:            m.Email,
			Phone:            m.Phone,
			Institute:        m.Institute,
			Department:       m.Department,
			EnrollmentNumber: m.EnrollmentNumber,
			Position:         i,
		})
	}

	if err := database.DB.Create(&idea).Error; err != nil {
		log.Error("创意申报入库失败", "error", err, "title", req.Title)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("创意申报成功",
		"idea_id", idea.ID,
		"applicant_uid", payload.UID,
	)

	response.Success(c, gin.H{
		"idea_id": idea.ID,
	})
}

// UpdateIdea 申报人修改并重新提交创意
// 仅 SUBMITTED 和被退回（ARCHIVED_BY_ADMIN）的创意可编辑，重新提交后状态回到 SUBMITTED
func UpdateIdea(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("创意ID格式错误"))
		return
	}

	var req IdeaSubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创意修改请求失败", "error", err, "id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 权限与可编辑状态要在事务内对最新行校验，防止与管理员流转并发时覆盖
	updated, bizErr := Mutate(database.DB, uint(id), func(tx *gorm.DB, fresh *model.Idea) *response.Error {
		if fresh.ApplicantUID != payload.UID {
			log.Warn("无权限修改创意", "id", id, "applicant_uid", fresh.ApplicantUID, "uid", payload.UID)
			return response.ErrForbidden.WithTips("只有申报人本人可以修改")
		}
		if !fresh.Editable() {
			return response.ErrInvalidTransition.WithTips("当前状态不可编辑")
		}

		fresh.Title = req.Title
		fresh.Problem = req.Problem
		fresh.Solution = req.Solution
		fresh.Uniqueness = req.Uniqueness
		fresh.DevelopmentStage = req.DevelopmentStage
		fresh.TeamMembersText = req.TeamMembersText
		fresh.ApplicantEmail = req.Email
		if req.PresentationURL != "" {
			fresh.PresentationURL = req.PresentationURL
		}
		// 重新提交：退回的创意回到 SUBMITTED
		fresh.Status = model.StatusSubmitted

		// 结构化成员整表替换
		if err := tx.Where("idea_id = ?", fresh.ID).Delete(&model.TeamMember{}).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		for i, m := range req.TeamMembers {
			member := model.TeamMember{
				IdeaID:           fresh.ID,
				Name:             m.Name,
				Email:            m.Email,
				Phone:            m.Phone,
				Institute:        m.Institute,
				Department:       m.Department,
				EnrollmentNumber: m.EnrollmentNumber,
				Position:         i,
			}
			if err := tx.Create(&member).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
		}
		return nil
	})
	if bizErr != nil {
		log.Warn("修改创意失败", "id", id, "error", bizErr.Error())
		response.Fail(c, bizErr)
		return
	}

	log.Info("创意修改并重新提交成功", "id", updated.ID)
	response.Success(c)
}

// GetIdea 获取创意详情，申报人本人或管理员可见
func GetIdea(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	id := c.Param("id")
	if id == "" {
		response.Fail(c, response.ErrInvalidRequest.WithTips("创意ID不能为空"))
		return
	}

	var idea model.Idea
	err := database.DB.
		Preload("TeamMembers").
		Preload("Sanctions").
		Preload("Sanctions.Expenses").
		First(&idea, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("创意不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if idea.ApplicantUID != payload.UID && payload.Role < model.RoleAdminFaculty {
		response.Fail(c, response.ErrForbidden)
		return
	}

	response.Success(c, idea)
}

// ListMyIdeas 申报人查看自己的全部申报
func ListMyIdeas(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var ideas []model.Idea
	if err := database.DB.
		Where("applicant_uid = ?", payload.UID).
		Order("created_at DESC").
		Find(&ideas).Error; err != nil {
		log.Error("获取申报列表失败", "error", err, "uid", payload.UID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, ideas)
}

// ListIdeasReq 管理端创意列表查询参数
type ListIdeasReq struct {
	Status   string `form:"status"`    // 按状态筛选
	Phase    string `form:"phase"`     // 按阶段筛选
	CohortID uint   `form:"cohort_id"` // 按批次筛选
	Title    string `form:"title"`     // 名称模糊查询
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ListIdeas 管理端获取创意列表
func ListIdeas(c *gin.Context) {
	var req ListIdeasReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	query := database.DB.Model(&model.Idea{})
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Phase != "" {
		query = query.Where("program_phase = ?", req.Phase)
	}
	if req.CohortID != 0 {
		query = query.Where("cohort_id = ?", req.CohortID)
	}
	if req.Title != "" {
		query = query.Where("title LIKE ?", "%"+req.Title+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var ideas []model.Idea
	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&ideas).Error; err != nil {
		log.Error("获取创意列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, map[string]any{
		"ideas":       ideas,
		"total":       total,
		"page":        req.Page,
		"page_size":   req.PageSize,
		"total_pages": (total + int64(req.PageSize) - 1) / int64(req.PageSize),
	})
}

// PresentationUploadURLReq 路演材料上传请求
type PresentationUploadURLReq struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
}

// PresentationUploadURL 生成路演材料的预签名直传 URL
func PresentationUploadURL(c *gin.Context) {
	var req PresentationUploadURLReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	store := proofstore.New("presentation")
	resp, err := store.GeneratePresignedUploadURL(c.Request.Context(), proofstore.PresignedUploadRequest{
		Filename:    req.Filename,
		ContentType: req.ContentType,
	})
	if err != nil {
		log.Error("生成路演材料上传 URL 失败", "error", err)
		response.Fail(c, response.ErrServer.WithOrigin(err))
		return
	}

	response.Success(c, resp)
}
