package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Result values carried in the "result" field of every JSON reply.
const (
	ResultSuccess   = "success"
	ResultFail      = "fail"
	ResultNoContent = "no content"
)

// Body is the flat JSON envelope: {"result": ..., <extra fields>}.
type Body map[string]any

func build(result string, fields Body) Body {
	b := Body{"result": result}
	for k, v := range fields {
		b[k] = v
	}
	return b
}

// Success writes {"result": "success", ...fields} with status 200.
func Success(ctx *gin.Context, fields Body) {
	ctx.JSON(http.StatusOK, build(ResultSuccess, fields))
}

// Fail writes {"result": "fail", ...fields} with status 200.
// Domain-level failures (bad credentials, taken ids) are not HTTP errors.
func Fail(ctx *gin.Context, fields Body) {
	ctx.JSON(http.StatusOK, build(ResultFail, fields))
}

// NoContent writes {"result": "no content"} with status 200.
func NoContent(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, build(ResultNoContent, nil))
}

// Error builds a failure body for an HTTP error status, tagged with the request id.
func Error(ctx *gin.Context, status int, message string) (int, Body) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	b := build(ResultFail, Body{"message": message})
	if rid := ctx.GetString("request_id"); rid != "" {
		b["request_id"] = rid
	}
	return status, b
}

// WriteError writes an error body without aborting the chain.
func WriteError(ctx *gin.Context, status int, message string) {
	ctx.JSON(Error(ctx, status, message))
}

// AbortError writes an error body and stops the handler chain.
func AbortError(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(Error(ctx, status, message))
}
