package response

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// 通用错误
var (
	ErrInvalidRequest  = newError(40001, "请求参数错误")
	ErrAlreadyExists   = newError(40002, "资源已存在")
	ErrInvalidPassword = newError(40003, "密码错误")
	ErrTokenInvalid    = newError(40101, "登录凭证无效")
	ErrUnauthorized    = newError(40102, "未登录或登录已过期")
	ErrForbidden       = newError(40301, "没有操作权限")
	ErrNotFound        = newError(40401, "资源不存在")
	ErrDatabase        = newError(50001, "数据库错误")
	ErrServer          = newError(50002, "服务器内部错误")
)

// 孵化工作流错误
var (
	ErrInvalidTransition        = newError(42001, "非法的状态流转")
	ErrIncompletePhaseDetails   = newError(42002, "阶段会议信息不完整")
	ErrWrongPhase               = newError(42003, "当前阶段不允许该操作")
	ErrInvalidMark              = newError(42004, "评分必须在 0 到 100 之间")
	ErrAmountMismatch           = newError(42005, "两期拨款金额之和必须等于总额且均为正数")
	ErrMissingSource            = newError(42006, "资金来源不能为空")
	ErrPriorSanctionNotApproved = newError(42007, "第一期资金使用未通过审核")
	ErrRemarksRequired          = newError(42008, "审核意见不能为空")
	ErrCohortFull               = newError(42009, "批次名额已满")
	ErrConcurrentModification   = newError(42010, "数据已被其他操作修改，请重试")
)

// ResponseBody 统一响应体
type ResponseBody struct {
	Code int32  `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// Success 返回成功响应，data 可选
func Success(c *gin.Context, data ...any) {
	body := ResponseBody{Code: 200, Msg: "success"}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.Set(ResponseContextKey, body)
	c.JSON(http.StatusOK, body)
}

// Fail 返回失败响应，非 *Error 的错误统一按服务器内部错误处理
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrServer.WithOrigin(err)
	}
	body := ResponseBody{Code: e.Code, Msg: e.Message}
	if e.Origin != "" && gin.Mode() == gin.DebugMode {
		body.Data = gin.H{"origin": e.Origin}
	}
	c.Set(ErrorContextKey, e)
	c.Set(ResponseContextKey, body)
	c.JSON(http.StatusOK, body)
}

// Recovery 捕获 handler panic，记录堆栈并返回统一错误
// 用法：defer response.Recovery(c)
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		debug.PrintStack()
		Fail(c, ErrServer.WithTips("服务异常，请稍后重试"))
		c.Abort()
	}
}
