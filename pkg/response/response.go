package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorItem is one entry of an error body. Param names the offending input
// field when there is one.
type ErrorItem struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

type ErrorBody struct {
	Errors    []ErrorItem `json:"errors"`
	RequestID string      `json:"request_id,omitempty"`
}

// MessageBody is used for plain acknowledgements such as account deletion.
type MessageBody struct {
	Msg string `json:"msg"`
}

// JSON writes data as the whole response body.
func JSON(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func Message(ctx *gin.Context, status int, msg string) {
	ctx.JSON(status, MessageBody{Msg: msg})
}

// Error aborts the request with an error body carrying the request id.
func Error(ctx *gin.Context, status int, items ...ErrorItem) {
	if items == nil {
		items = []ErrorItem{}
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{
		Errors:    items,
		RequestID: ctx.GetString("request_id"),
	})
}

// Fail is Error with a single message.
func Fail(ctx *gin.Context, status int, msg string) {
	Error(ctx, status, ErrorItem{Msg: msg})
}
