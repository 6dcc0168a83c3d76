package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/sushihentaime/inkwell/internal/articleservice"
	"github.com/sushihentaime/inkwell/internal/common"
)

func (app *application) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := app.readLimitOffsetParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	params := r.URL.Query()
	articles, err := app.articleService.GetArticles(r.Context(), params.Get("search"), params.Get("ordering"), limit, offset)
	if err != nil {
		switch {
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if articles == nil {
		articles = []articleservice.Article{}
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"count": len(articles), "results": articles}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) createArticleHandler(w http.ResponseWriter, r *http.Request) {
	var input articleservice.CreateArticleRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)
	input.AuthorID = user.ID

	article, err := app.articleService.CreateArticle(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, articleservice.ErrDuplicateSlug):
			app.failedValidationErrorResponse(w, r, map[string]string{"title": "an article with this title already exists"})
		case errors.Is(err, articleservice.ErrCategoryForeignKey):
			app.failedValidationErrorResponse(w, r, map[string]string{"category_id": "this category does not exist"})
		case errors.Is(err, articleservice.ErrTagForeignKey):
			app.failedValidationErrorResponse(w, r, map[string]string{"tag_ids": "one or more tags do not exist"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"article": article}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getArticleHandler(w http.ResponseWriter, r *http.Request) {
	// httprouter cannot register a static /v1/articles/search next to the
	// /v1/articles/:id wildcard, so the literal segment is dispatched here.
	params := httprouter.ParamsFromContext(r.Context())
	if params.ByName("id") == "search" {
		app.searchArticlesByTextHandler(w, r)
		return
	}

	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	article, err := app.articleService.ViewArticle(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, articleservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) updateArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	existing, err := app.articleService.GetArticleByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, articleservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if existing.Author.ID != user.ID {
		app.forbiddenErrorResponse(w, r)
		return
	}

	var input articleservice.UpdateArticleRequest
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	input.ID = id
	input.AuthorID = user.ID

	article, err := app.articleService.UpdateArticle(r.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, articleservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, articleservice.ErrDuplicateSlug):
			app.failedValidationErrorResponse(w, r, map[string]string{"title": "an article with this title already exists"})
		case errors.Is(err, articleservice.ErrCategoryForeignKey):
			app.failedValidationErrorResponse(w, r, map[string]string{"category_id": "this category does not exist"})
		case errors.Is(err, articleservice.ErrTagForeignKey):
			app.failedValidationErrorResponse(w, r, map[string]string{"tag_ids": "one or more tags do not exist"})
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) deleteArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	user := app.getUserContext(r)

	existing, err := app.articleService.GetArticleByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, articleservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if existing.Author.ID != user.ID {
		app.forbiddenErrorResponse(w, r)
		return
	}

	err = app.articleService.DeleteArticle(r.Context(), id, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, articleservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "article deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

// searchArticlesByTextHandler serves GET /v1/articles/search?q=, a
// substring match over title, content and excerpt. Unlike /v1/search it
// covers drafts too, same as the list endpoint.
func (app *application) searchArticlesByTextHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		app.failedValidationErrorResponse(w, r, map[string]string{"q": "must be provided"})
		return
	}

	limit, offset, err := app.readLimitOffsetParams(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	articles, err := app.articleService.GetArticles(r.Context(), query, "", limit, offset)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if articles == nil {
		articles = []articleservice.Article{}
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"count": len(articles), "results": articles}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
