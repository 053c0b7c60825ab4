package scheduler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pilltrack/backend/internal/model"
)

// ── 触发器展开的校验错误 ──

var (
	ErrInvalidTime      = errors.New("提醒时间格式无效，应为 HH:MM")
	ErrWeeklyNoDays     = errors.New("weekly 提醒必须指定至少一个星期几")
	ErrInvalidWeekday   = errors.New("星期几取值必须在 0-6 之间（0=周日）")
	ErrUnknownFrequency = errors.New("未知的提醒频率")
)

// Trigger 具体触发器描述符：每天（或每周指定日）在 Hour:Minute 重复触发。
// Weekday 为 nil 表示每天触发；非 nil 时取值 0=周日 .. 6=周六。
type Trigger struct {
	Hour    int
	Minute  int
	Weekday *int
}

// CronSpec 生成对应的 cron 表达式（分 时 日 月 周）
func (t Trigger) CronSpec() string {
	dow := "*"
	if t.Weekday != nil {
		dow = strconv.Itoa(*t.Weekday)
	}
	return fmt.Sprintf("%d %d * * %s", t.Minute, t.Hour, dow)
}

// parseClock 解析 HH:MM 为 (hour, minute)
func parseClock(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidTime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, ErrInvalidTime
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidTime
	}
	return hour, minute, nil
}

// Expand 将一条提醒规则展开为具体触发器集合。
//
// 展开规则：
//   - daily:       单个触发器 {hour, minute}，每天重复
//   - twice_daily: 固定 ±12 小时拆成早晚两个触发器（早 = hour<12 ? hour : hour-12，
//     晚 = hour>=12 ? hour : hour+12，分钟相同）。第二次服药时间不可单独配置，
//     属于已知的简化实现
//   - weekly:      days_of_week 中每个星期几一个触发器 {hour, minute, weekday}
//
// 纯函数，不触达任何外部状态；校验失败时返回错误且不产生任何触发器。
func Expand(r *model.Reminder) ([]Trigger, error) {
	hour, minute, err := parseClock(r.Time)
	if err != nil {
		return nil, err
	}

	switch r.Frequency {
	case model.FrequencyDaily:
		return []Trigger{{Hour: hour, Minute: minute}}, nil

	case model.FrequencyTwiceDaily:
		morning := hour
		if hour >= 12 {
			morning = hour - 12
		}
		evening := hour
		if hour < 12 {
			evening = hour + 12
		}
		return []Trigger{
			{Hour: morning, Minute: minute},
			{Hour: evening, Minute: minute},
		}, nil

	case model.FrequencyWeekly:
		if len(r.DaysOfWeek) == 0 {
			return nil, ErrWeeklyNoDays
		}
		triggers := make([]Trigger, 0, len(r.DaysOfWeek))
		for _, day := range r.DaysOfWeek {
			if day < 0 || day > 6 {
				return nil, ErrInvalidWeekday
			}
			d := day
			triggers = append(triggers, Trigger{Hour: hour, Minute: minute, Weekday: &d})
		}
		return triggers, nil

	default:
		return nil, ErrUnknownFrequency
	}
}
