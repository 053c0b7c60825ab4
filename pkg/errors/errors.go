package errors

import "errors"

// ErrPermissionDenied 通知后端未授予权限：调度操作应降级为空操作而非报错
var ErrPermissionDenied = errors.New("通知权限未授予")
