package service

import "errors"

// ── 业务错误 ──
// Handler 层据此映射 HTTP 状态码

var (
	ErrNotFound           = errors.New("资源不存在")
	ErrForbidden          = errors.New("无权访问该资源")
	ErrEmailTaken         = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInvalidToken       = errors.New("token 无效")
	ErrWeeklyNeedsDays    = errors.New("weekly 提醒必须指定至少一个星期")
	ErrInvalidDate        = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrInvalidStatus      = errors.New("不允许的状态变更")
	ErrCardDataRequired   = errors.New("银行卡支付必须提供卡信息")
)
