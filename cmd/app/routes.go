package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// identity
	router.HandlerFunc(http.MethodPost, "/v1/auth/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/auth/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/auth/logout", app.requireAuthUser(app.logoutUserHandler))
	router.HandlerFunc(http.MethodGet, "/v1/auth/profile", app.requireAuthUser(app.getProfileHandler))
	router.HandlerFunc(http.MethodPut, "/v1/auth/profile", app.requireAuthUser(app.updateProfileHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/auth/profile", app.requireAuthUser(app.updateProfileHandler))

	// categories
	router.HandlerFunc(http.MethodGet, "/v1/categories", app.listCategoriesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/categories", app.requireAuthUser(app.createCategoryHandler))
	router.HandlerFunc(http.MethodGet, "/v1/categories/:id", app.getCategoryHandler)
	router.HandlerFunc(http.MethodPut, "/v1/categories/:id", app.requireAuthUser(app.updateCategoryHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/categories/:id", app.requireAuthUser(app.updateCategoryHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/categories/:id", app.requireAuthUser(app.deleteCategoryHandler))

	// tags
	router.HandlerFunc(http.MethodGet, "/v1/tags", app.listTagsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/tags", app.requireAuthUser(app.createTagHandler))
	router.HandlerFunc(http.MethodGet, "/v1/tags/:id", app.getTagHandler)
	router.HandlerFunc(http.MethodPut, "/v1/tags/:id", app.requireAuthUser(app.updateTagHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/tags/:id", app.requireAuthUser(app.updateTagHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/tags/:id", app.requireAuthUser(app.deleteTagHandler))

	// articles
	router.HandlerFunc(http.MethodGet, "/v1/articles", app.listArticlesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/articles", app.requireAuthUser(app.createArticleHandler))
	router.HandlerFunc(http.MethodGet, "/v1/articles/:id", app.getArticleHandler)
	router.HandlerFunc(http.MethodPut, "/v1/articles/:id", app.requireAuthUser(app.updateArticleHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/articles/:id", app.requireAuthUser(app.updateArticleHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/articles/:id", app.requireAuthUser(app.deleteArticleHandler))

	// comments
	router.HandlerFunc(http.MethodGet, "/v1/comments", app.listCommentsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/comments", app.requireAuthUser(app.createCommentHandler))
	router.HandlerFunc(http.MethodGet, "/v1/comments/:id", app.getCommentHandler)
	router.HandlerFunc(http.MethodPut, "/v1/comments/:id", app.requireAuthUser(app.updateCommentHandler))
	router.HandlerFunc(http.MethodPatch, "/v1/comments/:id", app.requireAuthUser(app.updateCommentHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/comments/:id", app.requireAuthUser(app.deleteCommentHandler))

	// public search
	router.HandlerFunc(http.MethodGet, "/v1/search", app.searchHandler)

	return app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router))))
}
