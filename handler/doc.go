// Package handler provides typed HTTP handlers with JSON responses.
//
// A HandlerFunc receives a Context and a request value already bound from
// the HTTP request, and returns a Response:
//
//	type signupRequest struct {
//		Email string `json:"email"`
//	}
//
//	func signup(ctx handler.Context, req signupRequest) handler.Response {
//		sub, err := svc.Signup(ctx, req.Email)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.JSON(sub, handler.WithJSONStatus(http.StatusCreated))
//	}
//
//	r.Post("/", handler.Wrap(signup,
//		handler.WithBinder[handler.Context, signupRequest](binder.BindJSON()),
//		handler.WithErrorHandler[handler.Context, signupRequest](errorHandler),
//	))
//
// Errors from binding, from handler.Error, and from rendering all reach the
// ErrorHandler. NewErrorHandler renders them as
//
//	{"success": false, "error": "...", "code": "...", "details": ...}
//
// using, in order: module ErrorMappers, HTTPError values found in the chain,
// validator.ValidationErrors (400 with per-field details), binder errors
// (400/413/415), and finally a generic 500.
package handler
