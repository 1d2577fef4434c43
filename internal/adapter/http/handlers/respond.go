package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"devflow/internal/adapter/http/middleware"
	"devflow/internal/core/domain"
	"devflow/pkg/apierrors"
)

func respondError(c *gin.Context, code int, msgKey string) {
	c.AbortWithStatusJSON(code, apierrors.CreateError(code, msgKey, middleware.GetLang(c)))
}

func respondMessage(c *gin.Context, code int, msgKey string) {
	c.JSON(code, gin.H{"message": apierrors.Localize(msgKey, middleware.GetLang(c))})
}

// caller returns the identity resolved by the session gate. Handlers never
// reach persistence without one.
func caller(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, apierrors.MsgUnauthorized)
	}
	return identity, ok
}

// bindJSONWithRaw binds the body into obj and also returns its top-level
// fields, so partial updates can tell an absent field from an explicit null.
func bindJSONWithRaw(c *gin.Context, obj any) (map[string]json.RawMessage, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if err := binding.JSON.BindBody(body, obj); err != nil {
		return nil, err
	}
	return raw, nil
}
