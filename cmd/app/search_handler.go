package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/inkwell/internal/articleservice"
	"github.com/sushihentaime/inkwell/internal/common"
)

// searchHandler serves GET /v1/search over published articles. An id
// parameter short-circuits the text filters.
func (app *application) searchHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readOptionalIDQuery(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	params := r.URL.Query()
	req := articleservice.SearchRequest{
		ID:       id,
		Query:    params.Get("q"),
		Category: params.Get("category"),
		Tag:      params.Get("tag"),
	}

	articles, err := app.articleService.SearchArticles(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, articleservice.ErrRecordNotFound):
			app.writeErrorResponse(w, r, http.StatusNotFound, "no articles matched your search")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"count": len(articles), "results": articles}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
