package goviewset

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// makeActionHandler builds the request handler for a declared action method.
// Each handler is independent: the manager is instantiated per request and no
// state is shared across invocations.
//
// Preconditions are enforced at call time with panics. They are developer
// errors, not runtime conditions: a viewset without a manager factory or a
// manager that does not declare the named action should never reach
// production. gin's recovery middleware turns them into server errors.
func (v *Viewset[T]) makeActionHandler(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v.factory == nil {
			panic(fmt.Errorf("viewset must provide a manager factory to instantiate the manager"))
		}

		payload, ok := bindPayload(c)
		if !ok {
			return
		}

		mgr := v.factory(ManagerContext{
			Request: c.Request,
			Params:  pathParams(c),
		})
		if mgr == nil {
			panic(fmt.Errorf("manager factory returned no manager for action '%s'", name))
		}

		action, declared := mgr.ActionMethods()[name]
		if !declared || action.Handle == nil {
			panic(fmt.Errorf("manager does not implement declared action '%s'", name))
		}

		resp, err := action.Handle(c.Request.Context(), payload, c.Param("pk"), action.Extra)
		if err != nil {
			// No local recovery: surface the failure to the framework's
			// generic error handling.
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// No response returned back, assume everything is fine.
		if len(resp) == 0 {
			c.JSON(http.StatusOK, resp)
			return
		}

		code, known := CodeForStatus(resp.Status())
		if !known {
			panic(fmt.Errorf("%w '%s', closest known: '%s'", ErrUnknownStatus, resp.Status(), closestStatus(resp.Status())))
		}

		c.JSON(code, resp)
	}
}

// bindPayload decodes the JSON request body. An absent or empty body yields a
// nil payload; a malformed body is answered with a bad request.
func bindPayload(c *gin.Context) (Payload, bool) {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil, true
	}

	var payload Payload
	err := c.ShouldBindJSON(&payload)
	if err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	return payload, true
}

func pathParams(c *gin.Context) map[string]string {
	if len(c.Params) == 0 {
		return nil
	}

	params := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}

	return params
}
