package errno

// code=200 请求成功
// code=4xx 客户端请求错误
// code=5xx 服务器端错误
// code=2xxxx 业务处理错误码

type Errno struct {
	Code    int
	Message string
}

// Error 实现error接口
func (e *Errno) Error() string {
	return e.Message
}

var (
	OK = &Errno{Code: 200, Message: "Success"}

	ErrParameterInvalid = &Errno{Code: 400, Message: "Invalid parameter"}
	ErrNotFound         = &Errno{Code: 404, Message: "Not found"}

	ErrInternalServer = &Errno{Code: 500, Message: "Internal server error"}
	ErrUnknown        = &Errno{Code: 510, Message: "Unknown error"}

	// 业务错误码
	ErrTaskURLRequired      = &Errno{Code: 20001, Message: "Task URL is required"}
	ErrTaskIDRequired       = &Errno{Code: 20002, Message: "Task ID is required"}
	ErrDownloadIDRequired   = &Errno{Code: 20003, Message: "Download ID is required"}
	ErrClipIDRequired       = &Errno{Code: 20004, Message: "Clip ID is required"}
	ErrInvalidTaskMode      = &Errno{Code: 20005, Message: "Invalid task mode"}
	ErrConfirmationRequired = &Errno{Code: 20006, Message: "Destructive command requires explicit confirmation"}
	ErrSettingsInvalid      = &Errno{Code: 20007, Message: "Invalid upscale settings"}
	ErrUnknownViewTab       = &Errno{Code: 20008, Message: "Unknown view tab"}

	// 后端通信错误码
	ErrBackendUnreachable = &Errno{Code: 20101, Message: "Pipeline backend is unreachable"}
	ErrBackendRejected    = &Errno{Code: 20102, Message: "Pipeline backend rejected the command"}
)
