package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sweet-shop-api/internal/domain"
	resp "sweet-shop-api/internal/transport/http/response"
)

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // 自己从 c.Param 取
)

// AErr 携带业务码的错误，配合 resp.Error(int, msg)
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error   { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: resp.CodeUnauthorized, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// mapDomainErr 领域哨兵错误 → 业务码；未识别的一律 500
func mapDomainErr(err error) *AErr {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrNegativeStock):
		return &AErr{Code: resp.CodeBadRequest, Msg: err.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return &AErr{Code: resp.CodeUnauthorized, Msg: err.Error()}
	case errors.Is(err, domain.ErrSweetNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrAccountNotFound):
		return &AErr{Code: resp.CodeNotFound, Msg: err.Error()}
	default:
		return &AErr{Code: resp.CodeServerError, Msg: err.Error(), Err: err}
	}
}

// Action 一行注册一个接口：I 入参，O 出参。
// 鉴权与角色由分组中间件（AuthJWT + RequireRole）统一处理，
// 事务由仓储层自理，这里只管绑定、执行、错误映射。
type Action[I any, O any] struct {
	Method  string // GET / POST / PUT / DELETE
	Path    string
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, error)
}

type EZ struct{ g *gin.RouterGroup }

func newEZ(g *gin.RouterGroup) EZ { return EZ{g: g} }

func register[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default:
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			var ae *AErr
			if !errors.As(err, &ae) {
				ae = mapDomainErr(err)
			}
			c.JSON(http.StatusOK, resp.Error(ae.Code, ae.Error()))
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}
