package util

import (
	libconstants "github.com/filswan/go-swan-lib/constants"
)

type BasicResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func CreateSuccessResponse(_data interface{}) BasicResponse {
	return BasicResponse{
		Status: libconstants.SWAN_API_STATUS_SUCCESS,
		Data:   _data,
		Code:   SuccessCode,
	}
}

func CreateErrorResponse(code int, errMsg ...string) BasicResponse {
	var msg string
	if len(errMsg) == 0 {
		msg = codeMsg[code]
	} else {
		msg = errMsg[0]
	}
	return BasicResponse{
		Status:  libconstants.SWAN_API_STATUS_FAIL,
		Code:    code,
		Message: msg,
	}
}

const (
	SuccessCode = 200
	JsonError   = 400

	ValidationErrorCode = 7001
	CapacityErrorCode   = 7002
	TransferErrorCode   = 7003
	NotFoundErrorCode   = 7004
	ConflictErrorCode   = 7005
)

var codeMsg = map[int]string{
	JsonError: "An error occurred while converting to json",

	ValidationErrorCode: "The request contains missing or invalid fields",
	CapacityErrorCode:   "The resource cannot satisfy the requested capacity",
	TransferErrorCode:   "An error occurred while transferring the payment",
	NotFoundErrorCode:   "The requested record does not exist",
	ConflictErrorCode:   "The task is not in a state that allows this operation",
}
